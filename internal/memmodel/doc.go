// Package memmodel provides an in-memory block/leaf document model
// implementing the document capability interfaces.
//
// It backs the package tests and the trace replay tool; embedding hosts
// bind the reconciler to their own model instead. The model follows the
// host contract the reconciler assumes: notifications arrive serially,
// so the model is not safe for concurrent use.
package memmodel
