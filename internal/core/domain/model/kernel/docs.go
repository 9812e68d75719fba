// Package kernel holds the value objects shared by every aggregate of the hawker domain.
// Today that is UUID, the identifier of orders, order items, stalls, menu items and users.
package kernel
