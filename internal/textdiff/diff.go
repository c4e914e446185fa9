// Package textdiff computes character-level edit scripts between two
// strings as ordered runs of unchanged, added and removed text.
//
// The underlying diff comes from github.com/aymanbagabas/go-udiff; this
// package only reshapes its edits into the run form the reconciler
// inspects. Run counts are rune counts.
package textdiff

import (
	"unicode/utf8"

	udiff "github.com/aymanbagabas/go-udiff"
)

// Kind classifies a run within an edit script.
type Kind uint8

const (
	// Unchanged marks text present in both strings.
	Unchanged Kind = iota

	// Added marks text present only in the new string.
	Added

	// Removed marks text present only in the old string.
	Removed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Run is one segment of a character-level edit script.
type Run struct {
	// Kind classifies the segment.
	Kind Kind

	// Count is the segment length in runes.
	Count int

	// Text is the literal segment text.
	Text string
}

// Runs computes the edit script turning oldText into newText. Equal
// strings yield a single unchanged run (or no runs when both are
// empty). Adjacent segments of the same kind are merged, so a plain
// backspace always surfaces as unchanged-prefix, removed(1), optional
// unchanged suffix.
func Runs(oldText, newText string) []Run {
	if oldText == newText {
		if oldText == "" {
			return nil
		}
		return []Run{{Kind: Unchanged, Count: utf8.RuneCountInString(oldText), Text: oldText}}
	}

	edits := udiff.Strings(oldText, newText)

	runs := make([]Run, 0, len(edits)*2+1)
	pos := 0
	for _, e := range edits {
		if e.Start > pos {
			runs = appendRun(runs, Unchanged, oldText[pos:e.Start])
		}
		if e.End > e.Start {
			runs = appendRun(runs, Removed, oldText[e.Start:e.End])
		}
		if e.New != "" {
			runs = appendRun(runs, Added, e.New)
		}
		pos = e.End
	}
	if pos < len(oldText) {
		runs = appendRun(runs, Unchanged, oldText[pos:])
	}

	return runs
}

// appendRun appends text as a run of kind k, merging into the previous
// run when the kinds match.
func appendRun(runs []Run, k Kind, text string) []Run {
	if text == "" {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].Kind == k {
		runs[n-1].Text += text
		runs[n-1].Count += utf8.RuneCountInString(text)
		return runs
	}
	return append(runs, Run{Kind: k, Count: utf8.RuneCountInString(text), Text: text})
}
