package reconcile

import (
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dshills/imeflow/internal/composition"
	"github.com/dshills/imeflow/internal/document"
	"github.com/dshills/imeflow/internal/event"
	"github.com/dshills/imeflow/internal/native"
	"github.com/dshills/imeflow/internal/textdiff"
)

// Reconciler is the central input state machine. It consumes native
// notifications, consults the composition tracker, and emits
// corrections against the bound document model.
type Reconciler struct {
	platform   native.Platform
	tracker    *composition.Tracker
	resolver   native.Resolver
	editor     document.Editor
	applicator *Applicator
	bus        *event.Bus
	logger     *slog.Logger
}

// Option configures a Reconciler during creation.
type Option func(*Reconciler)

// WithPlatform selects the reconciliation policy. The default is the
// pass-through policy.
func WithPlatform(p native.Platform) Option {
	return func(r *Reconciler) {
		r.platform = p
	}
}

// WithLogger sets the reconciler's logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithBus publishes reconciliation events to bus.
func WithBus(bus *event.Bus) Option {
	return func(r *Reconciler) {
		r.bus = bus
	}
}

// New creates a reconciler bound to an editor, a point resolver and a
// composition tracker.
func New(editor document.Editor, resolver native.Resolver, tracker *composition.Tracker, opts ...Option) *Reconciler {
	r := &Reconciler{
		platform: native.PlatformDefault,
		tracker:  tracker,
		resolver: resolver,
		editor:   editor,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.applicator = NewApplicator(editor, r.bus, r.logger)
	return r
}

// Platform returns the active reconciliation policy.
func (r *Reconciler) Platform() native.Platform {
	return r.platform
}

// BeforeInput handles a text-entry notification before the surface
// mutates. On the default platform the data passes straight through as
// a single insertion. On Android any pending composition text is
// prepended and consumed, so a composition commit and the keystroke
// that follows it land as one coherent insertion.
func (r *Reconciler) BeforeInput(data string) Result {
	text := data
	if r.platform.Android() {
		if pending := r.tracker.ConsumePending(); pending != "" {
			text = pending + data
			r.logger.Debug("combined pending text", "pending", pending, "data", data)
		}
	}

	if text == "" {
		return handled(Correction{Kind: CorrectionNone})
	}

	cor := Correction{Kind: CorrectionInsertTrailing, Text: text}
	r.applicator.Apply(cor)
	return handled(cor)
}

// Input reconciles the surface with the model after a native mutation.
// It resolves the anchor to a model point, locates the affected leaf,
// and corrects the model to match the observed text. Aborting without
// a mutation is always preferred over applying a wrong one.
func (r *Reconciler) Input(anchor native.Anchor) Result {
	if anchor.Node == nil {
		return r.skip("nil-node")
	}

	point, ok := r.resolver.ResolvePoint(anchor)
	if !ok {
		// Expected during transient surface states.
		return r.skip("unresolvable-point")
	}

	node, ok := r.editor.Descendant(point.Key)
	if !ok {
		return r.skip("missing-node")
	}
	block, ok := r.editor.ClosestBlock(point.Key)
	if !ok {
		return r.skip("missing-block")
	}

	leaves := node.Leaves()
	if len(leaves) == 0 {
		return r.skip("empty-node")
	}

	leaf, leafStart, leafEnd, leafIndex := locateLeaf(leaves, point.Offset)

	observed := anchor.Node.TextContent()
	observed = r.stripPaddingNewline(observed, node, block, leaves, leafIndex)

	modelText := leaf.Text
	if observed == modelText {
		return r.skip("equal-text")
	}

	if r.platform.Android() {
		if cor, ok := r.backspaceCorrection(modelText, observed, point.Key, leafStart); ok {
			r.applicator.Apply(cor)
			return handled(cor)
		}
	}

	cor, ok := r.replaceCorrection(observed, modelText, point.Key, leafStart, leafEnd, leaf.Marks)
	if !ok {
		return r.skip("no-selection")
	}
	r.applicator.Apply(cor)
	return handled(cor)
}

// locateLeaf finds the leaf whose offset range contains offset,
// returning the leaf with its start/end rune range within the node and
// its index. When no leaf's cumulative length reaches the offset the
// last leaf is used.
func locateLeaf(leaves []document.Leaf, offset int) (document.Leaf, int, int, int) {
	start, end := 0, 0
	for i, lf := range leaves {
		start = end
		end += lf.Len()
		if end >= offset {
			return lf, start, end, i
		}
	}
	// Past the last leaf; start/end already span it.
	return leaves[len(leaves)-1], start, end, len(leaves) - 1
}

// stripPaddingNewline removes exactly one trailing newline from the
// observed text when the affected leaf is the last leaf of the block's
// last text node. The rendering layer pads a visually-collapsed
// trailing newline there; the model never stores it.
func (r *Reconciler) stripPaddingNewline(observed string, node document.TextNode, block document.BlockNode, leaves []document.Leaf, leafIndex int) string {
	if leafIndex != len(leaves)-1 {
		return observed
	}
	last, ok := block.LastText()
	if !ok || last.Key() != node.Key() {
		return observed
	}
	if strings.HasSuffix(observed, "\n") {
		return observed[:len(observed)-1]
	}
	return observed
}

// backspaceCorrection recognizes the one diff shape treated specially
// on Android: an unchanged prefix followed by the removal of exactly
// one character. A full-range replace for a plain backspace redraws
// more than the changed character and can drift the selection, so that
// shape becomes a targeted backward deletion instead. Every other
// shape, including a diff with fewer than two runs, falls through to
// the replace path.
func (r *Reconciler) backspaceCorrection(modelText, observed string, key document.NodeKey, leafStart int) (Correction, bool) {
	runs := textdiff.Runs(modelText, observed)
	if len(runs) < 2 {
		return Correction{}, false
	}
	if runs[0].Kind != textdiff.Unchanged || runs[1].Kind != textdiff.Removed || runs[1].Count != 1 {
		return Correction{}, false
	}

	caret := document.Point{Key: key, Offset: leafStart + runs[0].Count}
	return Correction{
		Kind:      CorrectionDeleteBackward,
		Count:     1,
		Selection: document.Collapsed(caret),
	}, true
}

// replaceCorrection builds the general full-replacement correction:
// the leaf's range is replaced with the observed text, marks preserved,
// and the cursor lands at the old selection end shifted by the length
// difference.
func (r *Reconciler) replaceCorrection(observed, modelText string, key document.NodeKey, leafStart, leafEnd int, marks document.MarkSet) (Correction, bool) {
	sel, ok := r.editor.Selection()
	if !ok {
		return Correction{}, false
	}

	delta := utf8.RuneCountInString(observed) - utf8.RuneCountInString(modelText)
	cursor := sel.CollapsedToEnd().MovedForward(delta)

	return Correction{
		Kind: CorrectionReplaceRange,
		Text: observed,
		Range: document.Range{
			Anchor: document.Point{Key: key, Offset: leafStart},
			Focus:  document.Point{Key: key, Offset: leafEnd},
		},
		Marks:     marks.Clone(),
		Selection: cursor,
	}, true
}

// skip absorbs a notification without mutating the model.
func (r *Reconciler) skip(reason string) Result {
	r.logger.Debug("reconciliation skipped", "reason", reason)
	if r.bus != nil {
		r.bus.Publish(event.TopicReconcileSkipped, event.ReconcileSkipped{Reason: reason})
	}
	return handled(Correction{Kind: CorrectionNone})
}
