package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/config"
	"google.golang.org/api/option"
)

// CompletionService is the single gateway to the external text-completion
// capability. Every call is bounded by a timeout and retried at most once;
// callers fall back to their deterministic defaults on error.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

type geminiCompletionService struct {
	model     *genai.GenerativeModel
	modelName string
	timeout   time.Duration
	retries   int
}

func NewGeminiCompletionService(cfg *config.Config) (CompletionService, error) {
	svc := &geminiCompletionService{
		modelName: cfg.GeminiModel,
		timeout:   time.Duration(cfg.Generation.TimeoutSeconds) * time.Second,
		retries:   cfg.Generation.MaxRetries,
	}
	if svc.retries > 1 {
		svc.retries = 1
	}

	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. CompletionService will be non-functional.")
		return svc, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	svc.model = client.GenerativeModel(cfg.GeminiModel)
	return svc, nil
}

func (s *geminiCompletionService) ModelName() string {
	return s.modelName
}

func (s *geminiCompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.model == nil {
		return "", fmt.Errorf("%w: client not initialized", ErrCompletionUnavailable)
	}
	return completeWithRetry(ctx, s.retries, 2*time.Second, func() (string, error) {
		return s.completeOnce(ctx, prompt)
	})
}

// completeWithRetry runs call up to retries+1 times. The backoff wait is
// interruptible: a cancelled context surfaces immediately instead of
// sleeping out the backoff.
func completeWithRetry(ctx context.Context, retries int, backoff time.Duration, call func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", ErrCompletionUnavailable, ctx.Err())
		}
		if attempt > 0 {
			log.Warn().Err(lastErr).Int("attempt", attempt).Msg("Completion call retrying")
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrCompletionUnavailable, ctx.Err())
			case <-time.After(backoff):
			}
		}

		text, err := call()
		if err == nil {
			return text, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("%w: %v", ErrCompletionUnavailable, lastErr)
}

func (s *geminiCompletionService) completeOnce(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no content")
	}

	fullText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullText += string(txt)
		}
	}
	if fullText == "" {
		return "", fmt.Errorf("model returned no text content")
	}
	return fullText, nil
}
