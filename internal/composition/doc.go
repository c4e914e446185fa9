// Package composition tracks the IME composition lifecycle for one
// editor attachment.
//
// Android soft keyboards deliver the composition-end notification
// before the input notification that carries the committed text. The
// Tracker bridges that gap: it buffers the committed string as pending
// text for the next notification to consume, and defers clearing the
// composing flag to the next frame boundary, guarded by a generation
// counter so a reset scheduled for an old composition never clobbers a
// newer one.
package composition
