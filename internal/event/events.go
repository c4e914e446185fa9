package event

// Composition and reconciliation topics.
const (
	// TopicCompositionStarted is published when a composition begins.
	TopicCompositionStarted Topic = "ime.composition.started"

	// TopicCompositionEnded is published when a composition ends.
	TopicCompositionEnded Topic = "ime.composition.ended"

	// TopicCompositionReset is published when a deferred lifecycle
	// reset runs, whether or not it took effect.
	TopicCompositionReset Topic = "ime.composition.reset"

	// TopicTextInserted is published after a before-input insertion.
	TopicTextInserted Topic = "ime.reconcile.inserted"

	// TopicCorrectionApplied is published after an input notification
	// produced a model mutation.
	TopicCorrectionApplied Topic = "ime.reconcile.corrected"

	// TopicReconcileSkipped is published when an input notification
	// was absorbed without mutating the model.
	TopicReconcileSkipped Topic = "ime.reconcile.skipped"
)

// CompositionStarted reports a new composition.
type CompositionStarted struct {
	// Generation is the composition generation after the start.
	Generation uint64
}

// CompositionEnded reports the end of a composition.
type CompositionEnded struct {
	// Generation is the generation captured for the deferred reset.
	Generation uint64

	// Data is the native payload delivered with the notification.
	Data string

	// Buffered reports whether Data was stored as pending text.
	Buffered bool
}

// CompositionReset reports a deferred lifecycle reset firing.
type CompositionReset struct {
	// Generation is the generation the reset was scheduled for.
	Generation uint64

	// Stale reports whether a newer composition made the reset a no-op.
	Stale bool
}

// TextInserted reports a before-input insertion.
type TextInserted struct {
	// Text is the inserted string, pending text included.
	Text string
}

// CorrectionApplied reports a reconciliation mutation.
type CorrectionApplied struct {
	// Kind is the correction kind name.
	Kind string

	// Text is the insert or replacement text, if any.
	Text string

	// Count is the character count for backward deletions.
	Count int

	// NodeKey is the affected node, if the correction targets one.
	NodeKey string
}

// ReconcileSkipped reports an input notification absorbed without a
// mutation.
type ReconcileSkipped struct {
	// Reason names the branch that absorbed the notification.
	Reason string
}
