// Package genre holds the classification cascade and the batch processor
// that applies it to a spreadsheet of book titles.
package genre

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/samducker/bookgenre/internal/llm"
)

type Genre string

const (
	GenreFiction    Genre = "fiction"
	GenreNonFiction Genre = "non-fiction"
	GenreUnknown    Genre = "unknown"
	GenreError      Genre = "error"
)

// Source records which tier of the cascade produced a result.
type Source string

const (
	SourceRuleFormat  Source = "rule:format"
	SourceRuleSubject Source = "rule:subject"
	SourceRulePhrase  Source = "rule:phrase"
	SourceRuleTheme   Source = "rule:theme"
	SourceModel       Source = "model"
	SourceNone        Source = "none"
)

type Result struct {
	Genre      Genre
	Confidence float64
	Source     Source
}

// ruleConfidence is the fixed high-confidence score for any keyword hit.
const ruleConfidence = 0.95

const hypothesisTemplate = "This is a {}."

var candidateLabels = []string{
	"practical or educational book that teaches something specific",
	"creative story for entertainment",
}

// Classifier runs titles through the keyword tiers and, when none match,
// falls back to a zero-shot model.
type Classifier struct {
	Model     llm.ZeroShotClient
	Rules     RuleTables
	Threshold float64
}

func NewClassifier(model llm.ZeroShotClient, rules RuleTables, threshold float64) *Classifier {
	return &Classifier{
		Model:     model,
		Rules:     rules,
		Threshold: threshold,
	}
}

// Classify returns exactly one result per call. Keyword tiers are checked in
// fixed priority order and the first hit wins; only when no tier matches does
// the model see the title. A model score below the threshold comes back as
// "unknown", and a model failure as "error" with zero confidence.
func (c *Classifier) Classify(ctx context.Context, title string) Result {
	return c.ClassifyWithThreshold(ctx, title, c.Threshold)
}

// ClassifyWithThreshold runs the same cascade with a per-call confidence
// threshold instead of the configured one. Keyword hits are unaffected; only
// the model fallback's accept/unknown cut changes.
func (c *Classifier) ClassifyWithThreshold(ctx context.Context, title string, threshold float64) Result {
	lower := strings.ToLower(title)

	if word, ok := matchKeyword(lower, c.Rules.FormatNonFiction); ok {
		log.Printf("Format indicator found (non-fiction): %q", word)
		return Result{Genre: GenreNonFiction, Confidence: ruleConfidence, Source: SourceRuleFormat}
	}
	if word, ok := matchKeyword(lower, c.Rules.FormatFiction); ok {
		log.Printf("Format indicator found (fiction): %q", word)
		return Result{Genre: GenreFiction, Confidence: ruleConfidence, Source: SourceRuleFormat}
	}
	if word, ok := matchKeyword(lower, c.Rules.NonFictionSubjects); ok {
		log.Printf("Subject matter indicator found (non-fiction): %q", word)
		return Result{Genre: GenreNonFiction, Confidence: ruleConfidence, Source: SourceRuleSubject}
	}
	if word, ok := matchKeyword(lower, c.Rules.InstructionalPhrases); ok {
		log.Printf("Instructional phrase found: %q", word)
		return Result{Genre: GenreNonFiction, Confidence: ruleConfidence, Source: SourceRulePhrase}
	}
	if word, ok := matchKeyword(lower, c.Rules.FictionThemes); ok {
		log.Printf("Fiction theme found: %q", word)
		return Result{Genre: GenreFiction, Confidence: ruleConfidence, Source: SourceRuleTheme}
	}

	return c.classifyWithModel(ctx, title, threshold)
}

func (c *Classifier) classifyWithModel(ctx context.Context, title string, threshold float64) Result {
	input := fmt.Sprintf(
		"Book title: '%s'. "+
			"Analyze this title carefully. "+
			"Question: Does this sound more like: "+
			"1) A practical, educational, or informative book that teaches something specific, or "+
			"2) A creative story meant for entertainment? "+
			"Note: Most non-fiction titles are straightforward and describe their content directly.",
		title,
	)

	ranked, err := c.Model.ClassifyZeroShot(ctx, input, candidateLabels, hypothesisTemplate)
	if err != nil || len(ranked) == 0 {
		log.Printf("Error classifying title %q: %v", title, err)
		return Result{Genre: GenreError, Confidence: 0, Source: SourceNone}
	}

	top := ranked[0]
	genre := GenreFiction
	if strings.Contains(top.Label, "practical") {
		genre = GenreNonFiction
	}

	if top.Score < threshold {
		return Result{Genre: GenreUnknown, Confidence: top.Score, Source: SourceModel}
	}
	return Result{Genre: genre, Confidence: top.Score, Source: SourceModel}
}

func matchKeyword(lowerTitle string, keywords []string) (string, bool) {
	for _, word := range keywords {
		if strings.Contains(lowerTitle, word) {
			return word, true
		}
	}
	return "", false
}
