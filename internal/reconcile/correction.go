package reconcile

import "github.com/dshills/imeflow/internal/document"

// CorrectionKind identifies the action decided for one notification.
type CorrectionKind uint8

const (
	// CorrectionNone means the notification required no mutation.
	CorrectionNone CorrectionKind = iota

	// CorrectionInsertTrailing inserts text at the current selection.
	CorrectionInsertTrailing

	// CorrectionDeleteBackward places the selection and removes
	// characters before it.
	CorrectionDeleteBackward

	// CorrectionReplaceRange replaces a leaf's range with the observed
	// text and repositions the cursor.
	CorrectionReplaceRange
)

// String returns the correction kind name.
func (k CorrectionKind) String() string {
	switch k {
	case CorrectionNone:
		return "none"
	case CorrectionInsertTrailing:
		return "insert-trailing"
	case CorrectionDeleteBackward:
		return "delete-backward"
	case CorrectionReplaceRange:
		return "replace-range"
	default:
		return "unknown"
	}
}

// Correction is the reconciler's decided action. It is the only input
// the Applicator consumes.
type Correction struct {
	// Kind selects which of the remaining fields apply.
	Kind CorrectionKind

	// Text is the insertion or replacement text.
	Text string

	// Count is the number of characters for CorrectionDeleteBackward.
	Count int

	// Range is the replacement range for CorrectionReplaceRange.
	Range document.Range

	// Marks are the formatting marks preserved across a replacement.
	Marks document.MarkSet

	// Selection is the selection to establish for delete and replace
	// corrections.
	Selection document.Range
}

// Result reports how a notification was handled. Handled is always
// true: the host must not run its default behavior for a notification
// delivered to the reconciler, even when no mutation resulted.
type Result struct {
	Handled    bool
	Correction Correction
}

// handled wraps a correction in the always-handled result.
func handled(c Correction) Result {
	return Result{Handled: true, Correction: c}
}
