package llm

import (
	"context"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RankedLabel is one candidate label together with its score, as returned by a
// zero-shot classification call. Scores are normalized to sum to 1.
type RankedLabel struct {
	Label string
	Score float64
}

// ZeroShotClient scores a text against candidate labels the model has never
// been trained on, best label first.
type ZeroShotClient interface {
	ClassifyZeroShot(ctx context.Context, text string, labels []string, hypothesisTemplate string) ([]RankedLabel, error)
}
