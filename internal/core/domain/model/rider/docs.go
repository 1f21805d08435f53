// Package rider models delivery riders: their application lifecycle
// (pending, active, inactive) and their availability (idle, in_delivery).
//
// Only active riders whose email matches the request can take parcels. A
// rider is in_delivery while at least one parcel it carries is in transit;
// delivery completion and the reconciliation job release it back to idle.
package rider
