package commands

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
)

// BulkAssignItemResult reports the outcome for one pairing of the batch.
// Results keep the submission order of the request items.
type BulkAssignItemResult struct {
	ParcelID kernel.UUID
	DriverID kernel.UUID
	Success  bool
	Message  string
}

// BulkAssignResult summarizes a bulk assignment run.
type BulkAssignResult struct {
	SuccessCount int
	FailedCount  int
	Results      []BulkAssignItemResult
}

// BulkAssignDriversCommandHandler fans a batch out to the single-assignment
// handler, one transaction per item. A failed item is recorded in the result
// and the batch moves on; nothing already committed is rolled back.
type BulkAssignDriversCommandHandler struct {
	assignHandler AssignDriverCommandHandler
}

// NewBulkAssignDriversCommandHandler creates a handler for bulk assignment.
func NewBulkAssignDriversCommandHandler(assignHandler AssignDriverCommandHandler) BulkAssignDriversCommandHandler {
	return BulkAssignDriversCommandHandler{
		assignHandler: assignHandler,
	}
}

// Handle processes the bulk assignment command.
// The returned error covers only command-level problems; per-item failures
// are reported inside BulkAssignResult.
func (h BulkAssignDriversCommandHandler) Handle(
	ctx context.Context,
	cmd BulkAssignDriversCommand,
) (BulkAssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkAssignResult{}, err
	}

	result := BulkAssignResult{
		Results: make([]BulkAssignItemResult, 0, len(cmd.Items())),
	}

	for _, item := range cmd.Items() {
		itemResult := BulkAssignItemResult{
			ParcelID: item.ParcelID,
			DriverID: item.DriverID,
		}

		assignCmd, err := NewAssignDriverCommand(item.ParcelID, item.DriverID, cmd.ActorID(), item.Notes)
		if err == nil {
			_, err = h.assignHandler.Handle(ctx, assignCmd)
		}

		if err != nil {
			itemResult.Message = err.Error()
			result.FailedCount++
		} else {
			itemResult.Success = true
			result.SuccessCount++
		}

		result.Results = append(result.Results, itemResult)
	}

	return result, nil
}
