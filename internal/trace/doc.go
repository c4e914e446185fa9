// Package trace decodes recorded input-event traces and replays them
// against an in-memory document through the reconciler. A trace is a
// JSON file capturing an initial document, a selection, and a sequence
// of native notifications; replaying it reproduces the model mutations
// the reconciler would have made in the live editor.
package trace
