package ports

// Store hands out the repositories of the entity store.
//
// Writes made through different repositories are independent: there is no
// transaction spanning collections. Multi-step operations are therefore
// written as a sequence of conditional, retry-safe writes, and report which
// step failed when one does.
type Store interface {
	Parcels() ParcelRepository
	Riders() RiderRepository
	Payments() PaymentHistoryRepository
	Cashouts() CashoutLedger
	Users() UserDirectory
	Tracking() TrackingLog
}
