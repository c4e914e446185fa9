// Package native abstracts the host rendering surface the reconciler
// observes: native nodes and their text content, selection anchors,
// frame-boundary scheduling, and the platform policy flag.
//
// Everything here is a capability the embedding host supplies. The
// package ships small adapters (ResolverFunc, SchedulerFunc), a fixed
// text node (StaticNode) and a ManualScheduler for hosts and tests that
// pump frames explicitly.
package native
