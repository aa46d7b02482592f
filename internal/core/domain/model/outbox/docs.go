// Package outbox models the transactional outbox for order announcements.
//
// An order write and its corresponding announcement are persisted in one
// transaction; a background dispatcher hands pending messages to the broker
// and marks them delivered afterwards. Delivery is therefore at-least-once:
// a crash between publish and mark-delivered produces a duplicate, never a
// lost announcement.
package outbox
