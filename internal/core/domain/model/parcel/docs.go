// Package parcel holds the Parcel aggregate and the three status axes it
// coordinates.
//
// The package includes:
//   - Parcel: the aggregate root with intake data, rider binding, timestamps
//     and the optimistic lock version
//   - Status: the ordered lifecycle stage (pending, rider_assigned, in_transit, delivered)
//   - PaymentStatus: unpaid, paid, cashed_out
//   - DeliveryStatus: not_collected, collected, in_transit, delivered
//
// Key business rules:
//   - No axis moves backwards; a repeated transition to the current state is a no-op
//   - Stages after pending require an assigned rider
//   - The rider earning is computed exactly once, on delivery, from the snapshot being written
//   - Collected means pickup from the sender and never implies delivery
//
// Status names are parsed case-insensitively with hyphens and spaces folded
// to underscores, so legacy spellings such as "In-Transit" or "Not Collected"
// map onto the canonical values.
package parcel
