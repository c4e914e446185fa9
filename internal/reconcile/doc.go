// Package reconcile translates native input notifications into minimal
// document model mutations.
//
// The Reconciler is a small state machine over two notification paths.
// BeforeInput handles text the host is about to commit, combining it
// with any pending composition text on Android. Input runs after the
// surface has already mutated: it resolves the affected leaf, compares
// the observed text against the model's, and decides between a single
// backward deletion and a full range replacement by inspecting a
// character-level diff of the two strings.
//
// Every decided action is expressed as a Correction and applied by the
// Applicator; corrections are the only way the package mutates a model.
// Both paths always report the notification as handled: the host must
// suppress its default processing for anything delivered here, whether
// or not a mutation resulted.
package reconcile
