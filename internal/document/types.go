package document

import "unicode/utf8"

// NodeKey uniquely identifies a node in the document model.
type NodeKey string

// Point is a model-space coordinate: a node key plus a rune offset
// within that node's text.
type Point struct {
	// Key identifies the node the point lies in.
	Key NodeKey

	// Offset is the rune offset within the node's text.
	Offset int
}

// Range is a pair of points. Anchor is where a selection started and
// Focus where it currently ends; they are equal for a caret.
type Range struct {
	Anchor Point
	Focus  Point
}

// Collapsed returns a range with both ends at p.
func Collapsed(p Point) Range {
	return Range{Anchor: p, Focus: p}
}

// IsCollapsed reports whether the range is a caret.
func (r Range) IsCollapsed() bool {
	return r.Anchor == r.Focus
}

// End returns the trailing point of the range. When both points share a
// node key the greater offset wins; across nodes the focus is taken as
// the end, matching forward-oriented native selections.
func (r Range) End() Point {
	if r.Anchor.Key == r.Focus.Key && r.Anchor.Offset > r.Focus.Offset {
		return r.Anchor
	}
	return r.Focus
}

// CollapsedToEnd returns the range collapsed to its end point.
func (r Range) CollapsedToEnd() Range {
	return Collapsed(r.End())
}

// MovedForward returns the range with both offsets shifted by n runes.
// Negative n moves backward; offsets never go below zero.
func (r Range) MovedForward(n int) Range {
	r.Anchor.Offset = clampOffset(r.Anchor.Offset + n)
	r.Focus.Offset = clampOffset(r.Focus.Offset + n)
	return r
}

func clampOffset(off int) int {
	if off < 0 {
		return 0
	}
	return off
}

// Mark is a formatting attribute applied to a leaf (bold, italic, ...).
type Mark string

// MarkSet is an ordered set of formatting marks.
type MarkSet []Mark

// Contains reports whether the set holds mark.
func (m MarkSet) Contains(mark Mark) bool {
	for _, mk := range m {
		if mk == mark {
			return true
		}
	}
	return false
}

// Equal reports whether two mark sets hold the same marks in the same
// order.
func (m MarkSet) Equal(other MarkSet) bool {
	if len(m) != len(other) {
		return false
	}
	for i, mk := range m {
		if mk != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (m MarkSet) Clone() MarkSet {
	if m == nil {
		return nil
	}
	out := make(MarkSet, len(m))
	copy(out, m)
	return out
}

// Leaf is a contiguous run of text sharing a uniform mark set.
type Leaf struct {
	Text  string
	Marks MarkSet
}

// Len returns the leaf's text length in runes.
func (l Leaf) Len() int {
	return utf8.RuneCountInString(l.Text)
}
