package reconcile

import (
	"io"
	"log/slog"

	"github.com/dshills/imeflow/internal/document"
	"github.com/dshills/imeflow/internal/event"
)

// Applicator applies decided corrections to a document model.
type Applicator struct {
	writer document.Writer
	bus    *event.Bus
	logger *slog.Logger
}

// NewApplicator creates an applicator writing through w.
func NewApplicator(w document.Writer, bus *event.Bus, logger *slog.Logger) *Applicator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Applicator{writer: w, bus: bus, logger: logger}
}

// Apply performs the correction's model mutation. CorrectionNone is a
// no-op.
func (a *Applicator) Apply(c Correction) {
	switch c.Kind {
	case CorrectionNone:
		return

	case CorrectionInsertTrailing:
		a.writer.InsertText(c.Text)
		a.logger.Debug("inserted text", "text", c.Text)
		if a.bus != nil {
			a.bus.Publish(event.TopicTextInserted, event.TextInserted{Text: c.Text})
		}

	case CorrectionDeleteBackward:
		a.writer.Select(c.Selection)
		a.writer.DeleteBackward(c.Count)
		a.logger.Debug("deleted backward",
			"count", c.Count,
			"node", string(c.Selection.Anchor.Key),
			"offset", c.Selection.Anchor.Offset)
		a.publishCorrection(c, c.Selection.Anchor.Key)

	case CorrectionReplaceRange:
		a.writer.ReplaceText(c.Range, c.Text, c.Marks, c.Selection)
		a.logger.Debug("replaced range",
			"node", string(c.Range.Anchor.Key),
			"start", c.Range.Anchor.Offset,
			"end", c.Range.Focus.Offset,
			"text", c.Text)
		a.publishCorrection(c, c.Range.Anchor.Key)
	}
}

func (a *Applicator) publishCorrection(c Correction, key document.NodeKey) {
	if a.bus == nil {
		return
	}
	a.bus.Publish(event.TopicCorrectionApplied, event.CorrectionApplied{
		Kind:    c.Kind.String(),
		Text:    c.Text,
		Count:   c.Count,
		NodeKey: string(key),
	})
}
