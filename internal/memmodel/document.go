package memmodel

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/imeflow/internal/document"
)

// Document is an in-memory document: an ordered list of blocks, each
// holding text nodes made of leaves, plus a selection.
type Document struct {
	blocks  []*Block
	texts   map[document.NodeKey]*Text
	parents map[document.NodeKey]*Block

	sel    document.Range
	hasSel bool
}

// New creates an empty document.
func New() *Document {
	return &Document{
		texts:   make(map[document.NodeKey]*Text),
		parents: make(map[document.NodeKey]*Block),
	}
}

// AddBlock appends a block with the given key.
func (d *Document) AddBlock(key document.NodeKey) *Block {
	b := &Block{key: key, doc: d}
	d.blocks = append(d.blocks, b)
	return b
}

// Blocks returns the document's blocks in order.
func (d *Document) Blocks() []*Block {
	return d.blocks
}

// Block is a block-level node holding text nodes.
type Block struct {
	key   document.NodeKey
	texts []*Text
	doc   *Document
}

// AddText appends a text node with the given leaves to the block.
func (b *Block) AddText(key document.NodeKey, leaves ...document.Leaf) *Text {
	copied := make([]document.Leaf, len(leaves))
	for i, lf := range leaves {
		copied[i] = document.Leaf{Text: lf.Text, Marks: lf.Marks.Clone()}
	}
	t := &Text{key: key, leaves: copied}
	b.texts = append(b.texts, t)
	b.doc.texts[key] = t
	b.doc.parents[key] = b
	return t
}

// Key implements document.BlockNode.
func (b *Block) Key() document.NodeKey {
	return b.key
}

// LastText implements document.BlockNode.
func (b *Block) LastText() (document.TextNode, bool) {
	if len(b.texts) == 0 {
		return nil, false
	}
	return b.texts[len(b.texts)-1], true
}

// Texts returns the block's text nodes in order.
func (b *Block) Texts() []*Text {
	return b.texts
}

// Text is a text node: an ordered sequence of leaves.
type Text struct {
	key    document.NodeKey
	leaves []document.Leaf
}

// Key implements document.TextNode.
func (t *Text) Key() document.NodeKey {
	return t.key
}

// Leaves implements document.TextNode. The returned slice is a
// snapshot; mutating it does not change the node.
func (t *Text) Leaves() []document.Leaf {
	out := make([]document.Leaf, len(t.leaves))
	copy(out, t.leaves)
	return out
}

// Text implements document.TextNode.
func (t *Text) Text() string {
	var sb strings.Builder
	for _, lf := range t.leaves {
		sb.WriteString(lf.Text)
	}
	return sb.String()
}

// Len returns the node's text length in runes.
func (t *Text) Len() int {
	n := 0
	for _, lf := range t.leaves {
		n += lf.Len()
	}
	return n
}

// Descendant implements document.Reader.
func (d *Document) Descendant(key document.NodeKey) (document.TextNode, bool) {
	t, ok := d.texts[key]
	if !ok {
		return nil, false
	}
	return t, true
}

// ClosestBlock implements document.Reader. It accepts either a text
// node key or a block key.
func (d *Document) ClosestBlock(key document.NodeKey) (document.BlockNode, bool) {
	if b, ok := d.parents[key]; ok {
		return b, true
	}
	for _, b := range d.blocks {
		if b.key == key {
			return b, true
		}
	}
	return nil, false
}

// Selection implements document.SelectionReader.
func (d *Document) Selection() (document.Range, bool) {
	return d.sel, d.hasSel
}

// Select implements document.Writer.
func (d *Document) Select(r document.Range) {
	d.sel = r
	d.hasSel = true
}

// InsertText implements document.Writer. Text is inserted at the
// selection's end point, inheriting the marks of the leaf it lands in,
// and the selection collapses past the insertion.
func (d *Document) InsertText(text string) {
	if text == "" || !d.hasSel {
		return
	}
	p := d.sel.End()
	t, ok := d.texts[p.Key]
	if !ok {
		return
	}

	off := clamp(p.Offset, 0, t.Len())
	marks := marksAt(t.leaves, off)
	t.leaves = spliceLeaves(t.leaves, off, off, text, marks)

	d.Select(document.Collapsed(document.Point{
		Key:    p.Key,
		Offset: off + utf8.RuneCountInString(text),
	}))
}

// DeleteBackward implements document.Writer. It removes up to count
// runes before the selection's end point, never crossing the node
// start.
func (d *Document) DeleteBackward(count int) {
	if count <= 0 || !d.hasSel {
		return
	}
	p := d.sel.End()
	t, ok := d.texts[p.Key]
	if !ok {
		return
	}

	off := clamp(p.Offset, 0, t.Len())
	n := count
	if n > off {
		n = off
	}
	if n > 0 {
		t.leaves = spliceLeaves(t.leaves, off-n, off, "", nil)
	}

	d.Select(document.Collapsed(document.Point{Key: p.Key, Offset: off - n}))
}

// ReplaceText implements document.Writer. The range's rune span on the
// anchor's node is replaced with text carrying marks, and the selection
// moves to sel. The whole update is atomic with respect to observers.
func (d *Document) ReplaceText(r document.Range, text string, marks document.MarkSet, sel document.Range) {
	t, ok := d.texts[r.Anchor.Key]
	if !ok {
		return
	}

	start, end := r.Anchor.Offset, r.Focus.Offset
	if start > end {
		start, end = end, start
	}
	total := t.Len()
	start = clamp(start, 0, total)
	end = clamp(end, 0, total)

	t.leaves = spliceLeaves(t.leaves, start, end, text, marks)
	d.Select(sel)
}

// spliceLeaves replaces the rune span [start, end) of the leaf sequence
// with text carrying marks. Pieces of partially covered leaves keep
// their own marks; adjacent pieces with equal marks merge. The result
// always contains at least one leaf so the node stays addressable.
func spliceLeaves(leaves []document.Leaf, start, end int, text string, marks document.MarkSet) []document.Leaf {
	var out []document.Leaf
	inserted := false
	insert := func() {
		if text != "" {
			out = appendLeaf(out, document.Leaf{Text: text, Marks: marks.Clone()})
		}
		inserted = true
	}

	pos := 0
	for _, lf := range leaves {
		n := lf.Len()
		lfStart, lfEnd := pos, pos+n
		pos = lfEnd

		if lfStart < start {
			hi := min(start, lfEnd)
			out = appendLeaf(out, document.Leaf{
				Text:  runeSlice(lf.Text, 0, hi-lfStart),
				Marks: lf.Marks.Clone(),
			})
		}
		if !inserted && lfEnd >= start {
			insert()
		}
		if lfEnd > end {
			lo := max(end, lfStart)
			out = appendLeaf(out, document.Leaf{
				Text:  runeSlice(lf.Text, lo-lfStart, n),
				Marks: lf.Marks.Clone(),
			})
		}
	}
	if !inserted {
		insert()
	}

	if len(out) == 0 {
		keep := marks.Clone()
		if keep == nil && len(leaves) > 0 {
			keep = leaves[0].Marks.Clone()
		}
		out = []document.Leaf{{Text: "", Marks: keep}}
	}
	return out
}

// appendLeaf appends a non-empty leaf, merging into the previous leaf
// when the mark sets match.
func appendLeaf(out []document.Leaf, lf document.Leaf) []document.Leaf {
	if lf.Text == "" {
		return out
	}
	if n := len(out); n > 0 && out[n-1].Marks.Equal(lf.Marks) {
		out[n-1].Text += lf.Text
		return out
	}
	return append(out, lf)
}

// marksAt returns the marks of the leaf containing the given offset,
// falling back to the last leaf.
func marksAt(leaves []document.Leaf, off int) document.MarkSet {
	end := 0
	for _, lf := range leaves {
		end += lf.Len()
		if end >= off {
			return lf.Marks
		}
	}
	if len(leaves) > 0 {
		return leaves[len(leaves)-1].Marks
	}
	return nil
}

// runeSlice returns s[lo:hi] in rune coordinates.
func runeSlice(s string, lo, hi int) string {
	runes := []rune(s)
	if lo < 0 {
		lo = 0
	}
	if hi > len(runes) {
		hi = len(runes)
	}
	if lo >= hi {
		return ""
	}
	return string(runes[lo:hi])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
