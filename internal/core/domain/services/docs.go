// Package services provides domain services for rules that span more than
// one aggregate or are pure policy.
//
// The package includes:
//   - EarningCalculator: the rider earning policy applied on delivery
//   - RiderAssigner: binds a parcel to an active rider
package services
