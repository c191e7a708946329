// Package services contains stateless domain services that implement business
// logic spanning outside a single aggregate.
//
// The package currently holds the TrackingNumberGenerator, which produces
// globally unique tracking numbers by probing the persistence layer through a
// narrow consumer-side interface. Keeping the generator here rather than in
// the application layer lets the format and the retry policy be tested
// without any infrastructure.
package services
