package chunker

import (
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/document"
)

func testPages() []document.Page {
	return []document.Page{
		{Number: 1, Text: "An introduction to modern physics."},
		{Number: 2, Text: ""},
		{Number: 3, Text: "Albert Einstein developed the theory of relativity in 1905."},
		{Number: 4, Text: "Quantum mechanics arrived later. Einstein disliked its randomness."},
	}
}

func TestSearch_FindsKeyword(t *testing.T) {
	matches := Search(testPages(), "relativity")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Page != 3 {
		t.Errorf("expected page 3, got %d", matches[0].Page)
	}
	if matches[0].Keyword != "relativity" {
		t.Errorf("expected keyword preserved, got %q", matches[0].Keyword)
	}
	if !strings.Contains(matches[0].Context, "relativity") {
		t.Errorf("expected context to contain the keyword, got %q", matches[0].Context)
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	lower := Search(testPages(), "einstein")
	upper := Search(testPages(), "EINSTEIN")
	if len(lower) != 2 || len(upper) != 2 {
		t.Fatalf("expected 2 matches each, got %d and %d", len(lower), len(upper))
	}
	for i := range lower {
		if lower[i].Page != upper[i].Page {
			t.Errorf("match %d: pages differ (%d vs %d)", i, lower[i].Page, upper[i].Page)
		}
		if lower[i].Context != upper[i].Context {
			t.Errorf("match %d: contexts differ", i)
		}
	}
}

func TestSearch_FirstOccurrencePerPage(t *testing.T) {
	pages := []document.Page{
		{Number: 1, Text: "alpha beta alpha gamma alpha"},
	}
	matches := Search(pages, "alpha")
	if len(matches) != 1 {
		t.Fatalf("expected a single match for the page, got %d", len(matches))
	}
}

func TestSearch_NoMatch(t *testing.T) {
	matches := Search(testPages(), "thermodynamics")
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestSearch_EmptyKeywordMatchesNonEmptyPages(t *testing.T) {
	matches := Search(testPages(), "")
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches (empty pages skipped), got %d", len(matches))
	}
	wantPages := []int{1, 3, 4}
	for i, m := range matches {
		if m.Page != wantPages[i] {
			t.Errorf("match %d: expected page %d, got %d", i, wantPages[i], m.Page)
		}
	}
}

func TestSearch_ContextWindowClamped(t *testing.T) {
	text := strings.Repeat("a", 150) + "needle" + strings.Repeat("b", 150)
	matches := Search([]document.Page{{Number: 1, Text: text}}, "needle")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	ctx := matches[0].Context
	want := searchContext + len("needle") + searchContext
	if len(ctx) != want {
		t.Errorf("expected %d bytes of context, got %d", want, len(ctx))
	}
	if !strings.Contains(ctx, "needle") {
		t.Errorf("context missing keyword: %q", ctx)
	}
}

func TestSearch_ContextClampedAtPageEdges(t *testing.T) {
	matches := Search([]document.Page{{Number: 1, Text: "needle at start"}}, "needle")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Context != "needle at start" {
		t.Errorf("expected whole short page as context, got %q", matches[0].Context)
	}
}

func TestSearch_ContextTrimmed(t *testing.T) {
	text := "   needle surrounded by spaces   "
	matches := Search([]document.Page{{Number: 1, Text: text}}, "needle")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if got := matches[0].Context; got != strings.TrimSpace(got) {
		t.Errorf("expected trimmed context, got %q", got)
	}
}

func TestSearch_NoPages(t *testing.T) {
	if matches := Search(nil, "anything"); len(matches) != 0 {
		t.Errorf("expected no matches on empty input, got %d", len(matches))
	}
}
