package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/chunker"
	"github.com/quizforge/quizforge/internal/document"
)

func testEngine(t *testing.T, data string) *Engine {
	t.Helper()
	store, err := document.NewStoreFromBytes("doc.txt", []byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return New(store)
}

func TestEngine_TextChunksNormalizesFirst(t *testing.T) {
	// Page boundaries become spaces after normalization.
	eng := testEngine(t, "first page\fsecond page")
	chunks, err := eng.TextChunks(DefaultChunkSize, DefaultOverlap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "first page second page" {
		t.Errorf("expected normalized text, got %q", chunks[0])
	}
}

func TestEngine_TextChunksInvalidParams(t *testing.T) {
	eng := testEngine(t, "some text")
	_, err := eng.TextChunks(100, 100)
	var paramErr *chunker.InvalidParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("expected *InvalidParameterError, got %T", err)
	}
}

func TestEngine_SearchTextPrimesStore(t *testing.T) {
	eng := testEngine(t, "nothing here\fthe keyword lives on page two")
	matches, err := eng.SearchText("keyword")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Page != 2 {
		t.Errorf("expected page 2, got %d", matches[0].Page)
	}
}

func TestEngine_SearchUsesRawPageText(t *testing.T) {
	// The searchable text keeps its whitespace; normalization only
	// applies to chunking.
	eng := testEngine(t, "spaced    out    keyword")
	matches, err := eng.SearchText("out    key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected raw-text match, got %d matches", len(matches))
	}
	if !strings.Contains(matches[0].Context, "spaced    out") {
		t.Errorf("expected raw context, got %q", matches[0].Context)
	}
}

func TestEngine_PageText(t *testing.T) {
	eng := testEngine(t, "one\ftwo\fthree")
	text, err := eng.PageText(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "three" {
		t.Errorf("expected page 3 text, got %q", text)
	}
	if text, _ := eng.PageText(9); text != "" {
		t.Errorf("expected empty text for missing page, got %q", text)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	eng, err := Open("testdata/does-not-exist.txt")
	if err != nil {
		// Unsupported extension errors surface here; a missing file of a
		// supported type only fails at extraction time.
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := eng.TotalPages(); err == nil {
		t.Fatal("expected extraction error for missing file")
	}
}
