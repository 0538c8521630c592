package service

import "errors"

var (
	// ErrContentUnavailable means the source reference could not be resolved.
	ErrContentUnavailable = errors.New("content unavailable")

	// ErrEmptyContent means extraction yielded only whitespace. Hard failure:
	// an empty source must never silently become an empty quiz.
	ErrEmptyContent = errors.New("extracted content is empty")

	// ErrCompletionUnavailable means the text-completion capability could not
	// be reached at all (transport, auth, rate limit, exhausted retries).
	ErrCompletionUnavailable = errors.New("completion capability unavailable")

	// ErrRecommendationFinal rejects transitions out of a terminal state.
	ErrRecommendationFinal = errors.New("recommendation already in terminal state")
)
