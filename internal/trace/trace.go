package trace

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Errors returned by trace decoding.
var (
	// ErrInvalidTrace indicates the trace JSON is malformed or missing
	// required fields.
	ErrInvalidTrace = errors.New("invalid trace")

	// ErrUnknownEventKind indicates an event with an unrecognized kind.
	ErrUnknownEventKind = errors.New("unknown event kind")
)

// Event kinds appearing in a trace.
const (
	// KindCompositionStart records a composition beginning.
	KindCompositionStart = "compositionstart"

	// KindCompositionEnd records a composition ending; Data carries the
	// native payload.
	KindCompositionEnd = "compositionend"

	// KindBeforeInput records a text-entry notification; Data carries
	// the entered text.
	KindBeforeInput = "beforeinput"

	// KindInput records a post-mutation notification; Key and Offset
	// locate the anchor and Observed is the surface text.
	KindInput = "input"

	// KindFrame records a frame boundary; deferred work runs here.
	KindFrame = "frame"
)

// Event is one recorded native notification.
type Event struct {
	// Kind is one of the Kind constants.
	Kind string

	// Data is the payload for composition-end and before-input events.
	Data string

	// Key is the anchor node key for input events.
	Key string

	// Offset is the anchor rune offset for input events.
	Offset int

	// Observed is the surface text content for input events.
	Observed string
}

// LeafSpec describes one leaf of the initial document.
type LeafSpec struct {
	Text  string
	Marks []string
}

// TextSpec describes one text node of the initial document.
type TextSpec struct {
	Key    string
	Leaves []LeafSpec
}

// BlockSpec describes one block of the initial document.
type BlockSpec struct {
	Key   string
	Texts []TextSpec
}

// PointSpec describes one end of the initial selection.
type PointSpec struct {
	Key    string
	Offset int
}

// SelectionSpec describes the initial selection.
type SelectionSpec struct {
	Anchor PointSpec
	Focus  PointSpec
}

// Trace is a decoded trace: the initial document, the optional initial
// selection, and the event sequence.
type Trace struct {
	Blocks    []BlockSpec
	Selection *SelectionSpec
	Events    []Event
}

// Decode parses a trace from JSON.
func Decode(data []byte) (*Trace, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidTrace)
	}
	root := gjson.ParseBytes(data)

	doc := root.Get("document.blocks")
	if !doc.Exists() || !doc.IsArray() {
		return nil, fmt.Errorf("%w: missing document.blocks", ErrInvalidTrace)
	}

	tr := &Trace{}
	for _, b := range doc.Array() {
		block, err := decodeBlock(b)
		if err != nil {
			return nil, err
		}
		tr.Blocks = append(tr.Blocks, block)
	}

	if sel := root.Get("selection"); sel.Exists() {
		s, err := decodeSelection(sel)
		if err != nil {
			return nil, err
		}
		tr.Selection = &s
	}

	events := root.Get("events")
	if events.Exists() && !events.IsArray() {
		return nil, fmt.Errorf("%w: events must be an array", ErrInvalidTrace)
	}
	for i, e := range events.Array() {
		ev, err := decodeEvent(e)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		tr.Events = append(tr.Events, ev)
	}
	return tr, nil
}

func decodeBlock(b gjson.Result) (BlockSpec, error) {
	key := b.Get("key").String()
	if key == "" {
		return BlockSpec{}, fmt.Errorf("%w: block without key", ErrInvalidTrace)
	}
	block := BlockSpec{Key: key}
	for _, t := range b.Get("texts").Array() {
		tkey := t.Get("key").String()
		if tkey == "" {
			return BlockSpec{}, fmt.Errorf("%w: text node without key in block %q", ErrInvalidTrace, key)
		}
		text := TextSpec{Key: tkey}
		for _, lf := range t.Get("leaves").Array() {
			leaf := LeafSpec{Text: lf.Get("text").String()}
			for _, m := range lf.Get("marks").Array() {
				leaf.Marks = append(leaf.Marks, m.String())
			}
			text.Leaves = append(text.Leaves, leaf)
		}
		block.Texts = append(block.Texts, text)
	}
	return block, nil
}

func decodeSelection(sel gjson.Result) (SelectionSpec, error) {
	anchor := sel.Get("anchor")
	focus := sel.Get("focus")
	if !anchor.Exists() {
		return SelectionSpec{}, fmt.Errorf("%w: selection without anchor", ErrInvalidTrace)
	}
	s := SelectionSpec{
		Anchor: PointSpec{
			Key:    anchor.Get("key").String(),
			Offset: int(anchor.Get("offset").Int()),
		},
	}
	if focus.Exists() {
		s.Focus = PointSpec{
			Key:    focus.Get("key").String(),
			Offset: int(focus.Get("offset").Int()),
		}
	} else {
		s.Focus = s.Anchor
	}
	if s.Anchor.Key == "" {
		return SelectionSpec{}, fmt.Errorf("%w: selection anchor without key", ErrInvalidTrace)
	}
	return s, nil
}

func decodeEvent(e gjson.Result) (Event, error) {
	kind := e.Get("kind").String()
	ev := Event{Kind: kind}

	switch kind {
	case KindCompositionStart, KindFrame:
	case KindCompositionEnd, KindBeforeInput:
		ev.Data = e.Get("data").String()
	case KindInput:
		ev.Key = e.Get("key").String()
		ev.Offset = int(e.Get("offset").Int())
		ev.Observed = e.Get("observed").String()
		if ev.Key == "" {
			return Event{}, fmt.Errorf("%w: input event without key", ErrInvalidTrace)
		}
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownEventKind, kind)
	}
	return ev, nil
}
