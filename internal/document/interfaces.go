package document

// TextNode is a read view of a text node: an ordered sequence of leaves.
type TextNode interface {
	// Key returns the node's key.
	Key() NodeKey

	// Leaves returns the node's leaves in document order.
	Leaves() []Leaf

	// Text returns the node's full text, the concatenation of its
	// leaves.
	Text() string
}

// BlockNode is a read view of a block-level node.
type BlockNode interface {
	// Key returns the block's key.
	Key() NodeKey

	// LastText returns the block's last text node, if it has one.
	LastText() (TextNode, bool)
}

// Reader exposes the read accessors the reconciler needs from a
// document model.
type Reader interface {
	// Descendant returns the text node with the given key.
	Descendant(key NodeKey) (TextNode, bool)

	// ClosestBlock returns the closest block ancestor of the node with
	// the given key.
	ClosestBlock(key NodeKey) (BlockNode, bool)
}

// SelectionReader reports the model's current selection.
type SelectionReader interface {
	// Selection returns the current selection, if one exists.
	Selection() (Range, bool)
}

// Writer exposes the mutation operations the reconciler needs. Each
// method is one logically-atomic model update: the model must not
// expose intermediate selection or text state to observers.
type Writer interface {
	// InsertText inserts text at the current selection.
	InsertText(text string)

	// Select replaces the current selection.
	Select(r Range)

	// DeleteBackward removes count runes before the selection's end
	// point, moving the selection back accordingly.
	DeleteBackward(count int)

	// ReplaceText replaces the text in r with text carrying marks and
	// sets the selection to sel, as a single atomic update.
	ReplaceText(r Range, text string, marks MarkSet, sel Range)
}

// Editor combines the full capability surface the reconciler binds to.
type Editor interface {
	Reader
	SelectionReader
	Writer
}
