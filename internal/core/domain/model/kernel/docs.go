// Package kernel provides the shared value objects of the parcel domain.
//
// The package includes:
//   - UUID: identifiers for parcels, riders, ledger entries and cashout batches
//   - Money: exact, cent-precision amounts backed by shopspring/decimal
//   - Region: case-insensitive delivery area names
//   - Email: normalized addresses used as owner, rider and user keys
//
// All values are immutable and safe for concurrent use.
package kernel
