// Package event provides a small synchronous bus carrying composition
// and reconciliation events, so hosts can observe what the reconciler
// decided without hooking the document model.
//
// Delivery is synchronous and in subscription order; the bus never
// spawns goroutines. Publishing with no subscribers is free, which
// keeps the bus safe to wire unconditionally.
package event
