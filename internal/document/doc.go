// Package document defines the model-space types and capability
// interfaces the reconciler uses to talk to a host editor's document
// model.
//
// The reconciler never owns a document. It reads node structure through
// Reader, the current selection through SelectionReader, and mutates
// text through Writer. A host binds these interfaces to its own model;
// the memmodel package provides an in-memory reference implementation
// for tests and tooling.
//
// Offsets throughout are rune counts, not byte offsets.
package document
