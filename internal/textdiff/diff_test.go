package textdiff

import (
	"strings"
	"testing"
)

// rebuild applies an edit script back to the old string and returns the
// reconstructed new string, verifying the unchanged/removed runs cover
// the old string exactly.
func rebuild(t *testing.T, oldText string, runs []Run) string {
	t.Helper()

	var oldParts, newParts strings.Builder
	for _, r := range runs {
		switch r.Kind {
		case Unchanged:
			oldParts.WriteString(r.Text)
			newParts.WriteString(r.Text)
		case Removed:
			oldParts.WriteString(r.Text)
		case Added:
			newParts.WriteString(r.Text)
		}
	}
	if oldParts.String() != oldText {
		t.Fatalf("runs do not cover old text: got %q, want %q", oldParts.String(), oldText)
	}
	return newParts.String()
}

func TestRuns_Equal(t *testing.T) {
	runs := Runs("hello", "hello")
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Kind != Unchanged || runs[0].Count != 5 {
		t.Errorf("unexpected run: %+v", runs[0])
	}
}

func TestRuns_BothEmpty(t *testing.T) {
	if runs := Runs("", ""); len(runs) != 0 {
		t.Errorf("expected no runs, got %v", runs)
	}
}

func TestRuns_SingleBackspace(t *testing.T) {
	runs := Runs("hello world", "hello orld")
	if len(runs) < 2 {
		t.Fatalf("expected at least 2 runs, got %v", runs)
	}
	if runs[0].Kind != Unchanged || runs[0].Count != 6 {
		t.Errorf("run[0] = %+v, want unchanged count 6", runs[0])
	}
	if runs[1].Kind != Removed || runs[1].Count != 1 || runs[1].Text != "w" {
		t.Errorf("run[1] = %+v, want removed %q", runs[1], "w")
	}
	if got := rebuild(t, "hello world", runs); got != "hello orld" {
		t.Errorf("rebuilt %q", got)
	}
}

func TestRuns_MultiDelete(t *testing.T) {
	runs := Runs("hello world", "hello")
	if runs[0].Kind != Unchanged || runs[0].Count != 5 {
		t.Errorf("run[0] = %+v", runs[0])
	}
	// The removed tail must not surface as a count-1 removal.
	if runs[1].Kind != Removed || runs[1].Count != 6 {
		t.Errorf("run[1] = %+v, want removed count 6", runs[1])
	}
	if got := rebuild(t, "hello world", runs); got != "hello" {
		t.Errorf("rebuilt %q", got)
	}
}

func TestRuns_TrailingInsert(t *testing.T) {
	runs := Runs("teh", "teh ")
	if got := rebuild(t, "teh", runs); got != "teh " {
		t.Errorf("rebuilt %q", got)
	}
	last := runs[len(runs)-1]
	if last.Kind != Added || last.Text != " " {
		t.Errorf("last run = %+v", last)
	}
}

func TestRuns_Replacement(t *testing.T) {
	runs := Runs("teh quick", "the quick")
	if got := rebuild(t, "teh quick", runs); got != "the quick" {
		t.Errorf("rebuilt %q", got)
	}
}

func TestRuns_FromEmpty(t *testing.T) {
	runs := Runs("", "abc")
	if len(runs) != 1 || runs[0].Kind != Added || runs[0].Count != 3 {
		t.Errorf("runs = %v", runs)
	}
}

func TestRuns_ToEmpty(t *testing.T) {
	runs := Runs("abc", "")
	if len(runs) != 1 || runs[0].Kind != Removed || runs[0].Count != 3 {
		t.Errorf("runs = %v", runs)
	}
}

func TestRuns_RuneCounts(t *testing.T) {
	runs := Runs("héllo", "héllos")
	var total int
	for _, r := range runs {
		if r.Kind != Added {
			total += r.Count
		}
	}
	if total != 5 {
		t.Errorf("old side rune count = %d, want 5", total)
	}
	if got := rebuild(t, "héllo", runs); got != "héllos" {
		t.Errorf("rebuilt %q", got)
	}
}

func TestRuns_MergesAdjacentKinds(t *testing.T) {
	for _, tt := range []struct{ oldText, newText string }{
		{"hello world", "hxllo wyrld"},
		{"aaaa", "abab"},
		{"the quick brown fox", "the slow brown dog"},
	} {
		runs := Runs(tt.oldText, tt.newText)
		for i := 1; i < len(runs); i++ {
			if runs[i].Kind == runs[i-1].Kind {
				t.Errorf("Runs(%q, %q) has adjacent %v runs: %v", tt.oldText, tt.newText, runs[i].Kind, runs)
			}
		}
		if got := rebuild(t, tt.oldText, runs); got != tt.newText {
			t.Errorf("rebuilt %q, want %q", got, tt.newText)
		}
	}
}
