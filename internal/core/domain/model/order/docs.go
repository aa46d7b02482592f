// Package order contains the Order aggregate and its supporting value objects.
//
// The aggregate enforces the order lifecycle invariants: orders are created in
// Pending status with at least one item, the item list is immutable after
// creation, the identifier is assigned once by the store, and status changes
// follow the transition table defined on Status (Pending -> Confirmed or
// Cancelled, Confirmed -> Cancelled, Cancelled terminal).
//
// All construction goes through NewOrder (fresh orders) or RestoreOrder
// (rehydration from persistence); direct struct initialization fails Validate.
package order
