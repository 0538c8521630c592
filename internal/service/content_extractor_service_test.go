package service

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
)

func TestExtractReturnsTrimmedBody(t *testing.T) {
	repo := newFakeContentRepo()
	repo.Create(&model.ContentSource{
		ID:         "doc1",
		SourceType: model.SourceTypeDocument,
		Body:       "  The mitochondria is the powerhouse of the cell.\n",
	})
	svc := NewContentExtractorService(repo)

	got, err := svc.Extract(model.SourceTypeDocument, "doc1")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "The mitochondria is the powerhouse of the cell." {
		t.Fatalf("unexpected extracted text %q", got)
	}
}

func TestExtractUnknownSource(t *testing.T) {
	svc := NewContentExtractorService(newFakeContentRepo())
	_, err := svc.Extract(model.SourceTypeVideo, "missing")
	if !errors.Is(err, ErrContentUnavailable) {
		t.Fatalf("expected ErrContentUnavailable, got %v", err)
	}
}

func TestExtractEmptyBody(t *testing.T) {
	repo := newFakeContentRepo()
	repo.Create(&model.ContentSource{ID: "doc1", SourceType: model.SourceTypeDocument, Body: "   \n\t "})
	svc := NewContentExtractorService(repo)

	_, err := svc.Extract(model.SourceTypeDocument, "doc1")
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

func TestExtractTruncatesLongBodies(t *testing.T) {
	repo := newFakeContentRepo()
	repo.Create(&model.ContentSource{
		ID:         "doc1",
		SourceType: model.SourceTypeDocument,
		Body:       strings.Repeat("a", maxContentChars+500),
	})
	svc := NewContentExtractorService(repo)

	got, err := svc.Extract(model.SourceTypeDocument, "doc1")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.HasSuffix(got, truncationMarker) {
		t.Fatalf("expected truncation marker suffix")
	}
	if len(got) != maxContentChars+len(truncationMarker) {
		t.Fatalf("expected bounded length %d, got %d", maxContentChars+len(truncationMarker), len(got))
	}
}

func TestExtractTruncationKeepsRunesIntact(t *testing.T) {
	repo := newFakeContentRepo()
	// The 3-byte runes are offset by one byte so the byte limit lands
	// inside a rune.
	repo.Create(&model.ContentSource{
		ID:         "doc1",
		SourceType: model.SourceTypeDocument,
		Body:       "a" + strings.Repeat("世", maxContentChars),
	})
	svc := NewContentExtractorService(repo)

	got, err := svc.Extract(model.SourceTypeDocument, "doc1")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncated content contains a split rune")
	}
	if len(got) > maxContentChars+len(truncationMarker) {
		t.Fatalf("truncated content exceeds the limit: %d bytes", len(got))
	}
	if !strings.HasSuffix(got, truncationMarker) {
		t.Fatalf("expected truncation marker suffix")
	}
}
