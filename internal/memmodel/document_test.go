package memmodel

import (
	"testing"

	"github.com/dshills/imeflow/internal/document"
)

func buildDoc() (*Document, *Text) {
	doc := New()
	b := doc.AddBlock("b1")
	t := b.AddText("t1", document.Leaf{Text: "hello world"})
	return doc, t
}

func TestDocument_Accessors(t *testing.T) {
	doc, _ := buildDoc()

	node, ok := doc.Descendant("t1")
	if !ok {
		t.Fatal("Descendant(t1) not found")
	}
	if node.Text() != "hello world" {
		t.Errorf("Text() = %q", node.Text())
	}

	block, ok := doc.ClosestBlock("t1")
	if !ok {
		t.Fatal("ClosestBlock(t1) not found")
	}
	if block.Key() != "b1" {
		t.Errorf("block key = %q", block.Key())
	}

	last, ok := block.LastText()
	if !ok || last.Key() != "t1" {
		t.Errorf("LastText() = %v, %v", last, ok)
	}

	if _, ok := doc.Descendant("nope"); ok {
		t.Error("expected miss for unknown key")
	}
	if _, ok := doc.ClosestBlock("nope"); ok {
		t.Error("expected miss for unknown block")
	}
}

func TestDocument_ClosestBlockByBlockKey(t *testing.T) {
	doc, _ := buildDoc()
	block, ok := doc.ClosestBlock("b1")
	if !ok || block.Key() != "b1" {
		t.Errorf("ClosestBlock(b1) = %v, %v", block, ok)
	}
}

func TestDocument_InsertText(t *testing.T) {
	doc, node := buildDoc()
	doc.Select(document.Collapsed(document.Point{Key: "t1", Offset: 5}))

	doc.InsertText(",")
	if node.Text() != "hello, world" {
		t.Errorf("Text() = %q", node.Text())
	}

	sel, ok := doc.Selection()
	if !ok {
		t.Fatal("expected selection")
	}
	if !sel.IsCollapsed() || sel.Focus.Offset != 6 {
		t.Errorf("selection = %v", sel)
	}
}

func TestDocument_InsertTextWithoutSelection(t *testing.T) {
	doc, node := buildDoc()
	doc.InsertText("x")
	if node.Text() != "hello world" {
		t.Errorf("insert without selection mutated text: %q", node.Text())
	}
}

func TestDocument_InsertInheritsMarks(t *testing.T) {
	doc := New()
	b := doc.AddBlock("b1")
	node := b.AddText("t1",
		document.Leaf{Text: "plain "},
		document.Leaf{Text: "bold", Marks: document.MarkSet{"bold"}},
	)

	// Insert inside the bold leaf.
	doc.Select(document.Collapsed(document.Point{Key: "t1", Offset: 8}))
	doc.InsertText("er")

	if node.Text() != "plain boerld" {
		t.Errorf("Text() = %q", node.Text())
	}
	leaves := node.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("expected marks to merge into 2 leaves, got %d: %v", len(leaves), leaves)
	}
	if leaves[1].Text != "boerld" || !leaves[1].Marks.Contains("bold") {
		t.Errorf("bold leaf = %+v", leaves[1])
	}
}

func TestDocument_DeleteBackward(t *testing.T) {
	doc, node := buildDoc()
	doc.Select(document.Collapsed(document.Point{Key: "t1", Offset: 7}))

	doc.DeleteBackward(1)
	if node.Text() != "hello orld" {
		t.Errorf("Text() = %q", node.Text())
	}
	sel, _ := doc.Selection()
	if sel.Focus.Offset != 6 {
		t.Errorf("selection offset = %d, want 6", sel.Focus.Offset)
	}
}

func TestDocument_DeleteBackwardClampsAtStart(t *testing.T) {
	doc, node := buildDoc()
	doc.Select(document.Collapsed(document.Point{Key: "t1", Offset: 2}))

	doc.DeleteBackward(10)
	if node.Text() != "llo world" {
		t.Errorf("Text() = %q", node.Text())
	}
	sel, _ := doc.Selection()
	if sel.Focus.Offset != 0 {
		t.Errorf("selection offset = %d, want 0", sel.Focus.Offset)
	}
}

func TestDocument_ReplaceText(t *testing.T) {
	doc, node := buildDoc()
	doc.Select(document.Collapsed(document.Point{Key: "t1", Offset: 11}))

	r := document.Range{
		Anchor: document.Point{Key: "t1", Offset: 0},
		Focus:  document.Point{Key: "t1", Offset: 11},
	}
	sel := document.Collapsed(document.Point{Key: "t1", Offset: 12})
	doc.ReplaceText(r, "hello worlds", nil, sel)

	if node.Text() != "hello worlds" {
		t.Errorf("Text() = %q", node.Text())
	}
	got, _ := doc.Selection()
	if got != sel {
		t.Errorf("selection = %v, want %v", got, sel)
	}
}

func TestDocument_ReplaceTextPreservesMarks(t *testing.T) {
	doc := New()
	b := doc.AddBlock("b1")
	node := b.AddText("t1", document.Leaf{Text: "teh", Marks: document.MarkSet{"italic"}})
	doc.Select(document.Collapsed(document.Point{Key: "t1", Offset: 3}))

	r := document.Range{
		Anchor: document.Point{Key: "t1", Offset: 0},
		Focus:  document.Point{Key: "t1", Offset: 3},
	}
	doc.ReplaceText(r, "the", document.MarkSet{"italic"},
		document.Collapsed(document.Point{Key: "t1", Offset: 3}))

	leaves := node.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("expected 1 leaf, got %d", len(leaves))
	}
	if leaves[0].Text != "the" || !leaves[0].Marks.Contains("italic") {
		t.Errorf("leaf = %+v", leaves[0])
	}
}

func TestDocument_ReplacePartialLeafRange(t *testing.T) {
	doc, node := buildDoc()
	doc.Select(document.Collapsed(document.Point{Key: "t1", Offset: 5}))

	r := document.Range{
		Anchor: document.Point{Key: "t1", Offset: 6},
		Focus:  document.Point{Key: "t1", Offset: 11},
	}
	doc.ReplaceText(r, "there", nil,
		document.Collapsed(document.Point{Key: "t1", Offset: 11}))

	if node.Text() != "hello there" {
		t.Errorf("Text() = %q", node.Text())
	}
}

func TestDocument_ReplaceToEmptyKeepsLeaf(t *testing.T) {
	doc, node := buildDoc()
	doc.Select(document.Collapsed(document.Point{Key: "t1", Offset: 0}))

	r := document.Range{
		Anchor: document.Point{Key: "t1", Offset: 0},
		Focus:  document.Point{Key: "t1", Offset: 11},
	}
	doc.ReplaceText(r, "", nil, document.Collapsed(document.Point{Key: "t1", Offset: 0}))

	if node.Text() != "" {
		t.Errorf("Text() = %q, want empty", node.Text())
	}
	if len(node.Leaves()) != 1 {
		t.Errorf("expected one empty leaf, got %v", node.Leaves())
	}
}

func TestDocument_UnicodeOffsets(t *testing.T) {
	doc := New()
	b := doc.AddBlock("b1")
	node := b.AddText("t1", document.Leaf{Text: "héllo"})
	doc.Select(document.Collapsed(document.Point{Key: "t1", Offset: 2}))

	doc.InsertText("x")
	if node.Text() != "héxllo" {
		t.Errorf("Text() = %q", node.Text())
	}
}
