package trace

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tidwall/sjson"

	"github.com/dshills/imeflow/internal/composition"
	"github.com/dshills/imeflow/internal/document"
	"github.com/dshills/imeflow/internal/event"
	"github.com/dshills/imeflow/internal/memmodel"
	"github.com/dshills/imeflow/internal/native"
	"github.com/dshills/imeflow/internal/reconcile"
)

// Result is the outcome of replaying a trace: the final document state
// and counts of what the reconciler decided along the way.
type Result struct {
	// Texts maps each text node key to its final text.
	Texts map[string]string

	// Selection is the final selection, valid when HasSelection is set.
	Selection    document.Range
	HasSelection bool

	// Corrections counts applied corrections by kind name.
	Corrections map[string]int

	// Skips counts absorbed input notifications by reason.
	Skips map[string]int

	// Events is the number of trace events replayed.
	Events int
}

// Replay builds the trace's initial document and feeds its events
// through a reconciler under the given platform policy. Frame events
// pump the deferred composition resets.
func Replay(tr *Trace, platform native.Platform, log *slog.Logger) (*Result, error) {
	if tr == nil {
		return nil, fmt.Errorf("%w: nil trace", ErrInvalidTrace)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	doc := buildDocument(tr)
	if tr.Selection != nil {
		doc.Select(document.Range{
			Anchor: document.Point{Key: document.NodeKey(tr.Selection.Anchor.Key), Offset: tr.Selection.Anchor.Offset},
			Focus:  document.Point{Key: document.NodeKey(tr.Selection.Focus.Key), Offset: tr.Selection.Focus.Offset},
		})
	}

	res := &Result{
		Texts:       make(map[string]string),
		Corrections: make(map[string]int),
		Skips:       make(map[string]int),
	}

	bus := event.NewBus()
	bus.Subscribe(event.TopicReconcileSkipped, func(_ event.Topic, payload any) {
		if s, ok := payload.(event.ReconcileSkipped); ok {
			res.Skips[s.Reason]++
		}
	})

	scheduler := native.NewManualScheduler()
	tracker := composition.NewTracker(scheduler,
		composition.WithLogger(log),
		composition.WithBus(bus))

	resolver := native.ResolverFunc(func(a native.Anchor) (document.Point, bool) {
		n, ok := a.Node.(*replayNode)
		if !ok {
			return document.Point{}, false
		}
		if _, ok := doc.Descendant(n.key); !ok {
			return document.Point{}, false
		}
		return document.Point{Key: n.key, Offset: a.Offset}, true
	})

	rec := reconcile.New(doc, resolver, tracker,
		reconcile.WithPlatform(platform),
		reconcile.WithLogger(log),
		reconcile.WithBus(bus))

	for i, ev := range tr.Events {
		switch ev.Kind {
		case KindCompositionStart:
			tracker.CompositionStart()
		case KindCompositionEnd:
			tracker.CompositionEnd(ev.Data)
		case KindBeforeInput:
			r := rec.BeforeInput(ev.Data)
			record(res, r)
		case KindInput:
			anchor := native.Anchor{
				Node:   &replayNode{key: document.NodeKey(ev.Key), text: ev.Observed},
				Offset: ev.Offset,
			}
			r := rec.Input(anchor)
			record(res, r)
		case KindFrame:
			scheduler.Flush()
		default:
			return nil, fmt.Errorf("event %d: %w: %q", i, ErrUnknownEventKind, ev.Kind)
		}
		res.Events++
	}

	// Run any resets still queued past the last recorded frame.
	scheduler.Flush()

	for _, b := range doc.Blocks() {
		for _, t := range b.Texts() {
			res.Texts[string(t.Key())] = t.Text()
		}
	}
	res.Selection, res.HasSelection = doc.Selection()
	return res, nil
}

// record tallies a reconciler decision.
func record(res *Result, r reconcile.Result) {
	kind := r.Correction.Kind
	if kind == reconcile.CorrectionNone {
		return
	}
	res.Corrections[kind.String()]++
}

// buildDocument materializes the trace's initial document.
func buildDocument(tr *Trace) *memmodel.Document {
	doc := memmodel.New()
	for _, bs := range tr.Blocks {
		block := doc.AddBlock(document.NodeKey(bs.Key))
		for _, ts := range bs.Texts {
			leaves := make([]document.Leaf, 0, len(ts.Leaves))
			for _, ls := range ts.Leaves {
				var marks document.MarkSet
				for _, m := range ls.Marks {
					marks = append(marks, document.Mark(m))
				}
				leaves = append(leaves, document.Leaf{Text: ls.Text, Marks: marks})
			}
			if len(leaves) == 0 {
				leaves = []document.Leaf{{}}
			}
			block.AddText(document.NodeKey(ts.Key), leaves...)
		}
	}
	return doc
}

// replayNode is the surface node stand-in used during replay: the
// recorded observed text plus the model key the anchor resolves to.
type replayNode struct {
	key  document.NodeKey
	text string
}

// TextContent implements native.Node.
func (n *replayNode) TextContent() string {
	return n.text
}

// Summary renders the result as JSON.
func (r *Result) Summary() (string, error) {
	out := "{}"
	var err error

	if out, err = sjson.Set(out, "events", r.Events); err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	for kind, n := range r.Corrections {
		if out, err = sjson.Set(out, "corrections."+kind, n); err != nil {
			return "", fmt.Errorf("encode summary: %w", err)
		}
	}
	for reason, n := range r.Skips {
		if out, err = sjson.Set(out, "skips."+reason, n); err != nil {
			return "", fmt.Errorf("encode summary: %w", err)
		}
	}
	for key, text := range r.Texts {
		if out, err = sjson.Set(out, "texts."+key, text); err != nil {
			return "", fmt.Errorf("encode summary: %w", err)
		}
	}
	if r.HasSelection {
		end := r.Selection.End()
		if out, err = sjson.Set(out, "selection.key", string(end.Key)); err != nil {
			return "", fmt.Errorf("encode summary: %w", err)
		}
		if out, err = sjson.Set(out, "selection.offset", end.Offset); err != nil {
			return "", fmt.Errorf("encode summary: %w", err)
		}
	}
	return out, nil
}
