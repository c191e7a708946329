package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// ErrTrackingNumberGenerationExhausted is returned when the generator could
// not produce an unused tracking number within the retry budget. With the
// timestamp+random format a collision is already vanishingly unlikely, so
// hitting the budget almost certainly means the uniqueness probe is broken.
var ErrTrackingNumberGenerationExhausted = errors.New("tracking number generation exhausted retries")

const (
	// trackingNumberPrefix is the fixed prefix of every tracking number.
	trackingNumberPrefix = "TRK"

	// timestampDigits is how many low-order digits of the epoch-millisecond
	// timestamp are embedded in the tracking number.
	timestampDigits = 8

	// suffixLength is the length of the random base-36 suffix.
	suffixLength = 6

	// maxGenerationAttempts bounds the collision retry loop.
	maxGenerationAttempts = 10
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// TrackingNumberProbe is the narrow persistence view the generator needs:
// a read-only existence check against already issued tracking numbers.
type TrackingNumberProbe interface {
	// TrackingNumberExists reports whether the tracking number is already in use.
	TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error)
}

// TrackingNumberGenerator is a domain service that produces globally unique,
// human-facing parcel identifiers.
//
// Format: a fixed prefix, the low-order 8 digits of the current
// epoch-millisecond timestamp, and a 6-character random base-36 suffix in
// upper case, e.g. "TRK83279412X7Q0ZD".
//
// Every candidate is checked against persisted tracking numbers through the
// probe; on a collision the generator retries with a fresh candidate, up to a
// fixed bound, and fails with ErrTrackingNumberGenerationExhausted beyond it.
//
// Example usage:
//
//	generator := services.NewTrackingNumberGenerator(parcelRepo)
//	trackingNumber, err := generator.Generate(ctx)
//	if errors.Is(err, services.ErrTrackingNumberGenerationExhausted) {
//	    // persistence probe is misbehaving; surface as a server error
//	}
type TrackingNumberGenerator struct {
	probe TrackingNumberProbe
}

// NewTrackingNumberGenerator creates a generator backed by the given
// uniqueness probe.
func NewTrackingNumberGenerator(probe TrackingNumberProbe) TrackingNumberGenerator {
	return TrackingNumberGenerator{probe: probe}
}

// Generate produces a tracking number that is not yet in use.
//
// Each attempt performs one read-only probe against the persistence layer;
// no state is mutated. The retry loop is bounded: an infinite regeneration
// loop is an unacceptable failure mode even though collisions are negligible.
func (g TrackingNumberGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		candidate := newCandidate(time.Now())

		exists, err := g.probe.TrackingNumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", ErrTrackingNumberGenerationExhausted
}

// newCandidate builds a single tracking number candidate from the given time.
func newCandidate(now time.Time) string {
	timestampPart := now.UnixMilli() % 1_0000_0000

	var suffix strings.Builder
	suffix.Grow(suffixLength)
	for range suffixLength {
		suffix.WriteByte(base36Alphabet[rand.IntN(len(base36Alphabet))]) //nolint:gosec // not security sensitive
	}

	return fmt.Sprintf("%s%0*d%s", trackingNumberPrefix, timestampDigits, timestampPart, suffix.String())
}
