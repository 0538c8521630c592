package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/repository"
	"gorm.io/gorm"
)

const (
	// maxContentChars caps how much source text is fed into a generation
	// prompt. Longer bodies are cut and marked.
	maxContentChars  = 6000
	truncationMarker = "... [content truncated]"
)

// ContentExtractorService normalizes a source reference (document body,
// video transcript, course body) into bounded plain text.
type ContentExtractorService interface {
	Extract(sourceType, sourceID string) (string, error)
}

type contentExtractorService struct {
	contentRepo repository.ContentSourceRepository
}

func NewContentExtractorService(contentRepo repository.ContentSourceRepository) ContentExtractorService {
	return &contentExtractorService{contentRepo: contentRepo}
}

func (s *contentExtractorService) Extract(sourceType, sourceID string) (string, error) {
	source, err := s.contentRepo.FindByTypeAndID(sourceType, sourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("source_type", sourceType).Str("source_id", sourceID).Msg("Content source not found")
			return "", fmt.Errorf("%w: %s/%s", ErrContentUnavailable, sourceType, sourceID)
		}
		return "", fmt.Errorf("failed to resolve content source %s/%s: %w", sourceType, sourceID, err)
	}

	text := strings.TrimSpace(source.Body)
	if text == "" {
		return "", fmt.Errorf("%w: %s/%s", ErrEmptyContent, sourceType, sourceID)
	}

	if len(text) > maxContentChars {
		text = cutAtRuneBoundary(text, maxContentChars) + truncationMarker
		log.Info().Str("source_id", sourceID).Int("limit", maxContentChars).Msg("Source content truncated for generation")
	}
	return text, nil
}

// cutAtRuneBoundary caps s at limit bytes, backing up so a multibyte rune
// is never split.
func cutAtRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
