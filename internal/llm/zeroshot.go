package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ZeroShotClassifier implements ZeroShotClient on top of any LLMClient by
// asking the model to score each candidate hypothesis and emit JSON.
type ZeroShotClassifier struct {
	LLM LLMClient
}

func NewZeroShotClassifier(client LLMClient) *ZeroShotClassifier {
	return &ZeroShotClassifier{LLM: client}
}

type zeroShotResponse struct {
	Scores []float64 `json:"scores"`
}

func (z *ZeroShotClassifier) ClassifyZeroShot(ctx context.Context, text string, labels []string, hypothesisTemplate string) ([]RankedLabel, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no candidate labels provided")
	}

	hypotheses := ""
	for i, label := range labels {
		hypothesis := strings.Replace(hypothesisTemplate, "{}", label, 1)
		hypotheses += fmt.Sprintf("[%d] %s\n", i, hypothesis)
	}

	prompt := fmt.Sprintf(`You are a zero-shot text classification system.

Text:
%s

Hypotheses:
%s
For each hypothesis, estimate the probability that it is true of the text.
The probabilities must sum to 1.
Return a JSON object with key "scores": a list of floats, one per hypothesis, in the order given.
Example: {"scores": [0.8, 0.2]}
Do not output any other text.`, text, hypotheses)

	response, err := z.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("zero-shot generation failed: %w", err)
	}

	result, err := parseScores(response)
	if err != nil {
		return nil, err
	}
	if len(result.Scores) != len(labels) {
		return nil, fmt.Errorf("expected %d scores, got %d", len(labels), len(result.Scores))
	}

	total := 0.0
	for _, s := range result.Scores {
		if s < 0 {
			return nil, fmt.Errorf("negative score in response: %v", result.Scores)
		}
		total += s
	}

	ranked := make([]RankedLabel, len(labels))
	for i, label := range labels {
		score := result.Scores[i]
		if total > 0 {
			score = score / total
		}
		ranked[i] = RankedLabel{Label: label, Score: score}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked, nil
}

// parseScores unmarshals the score object, tolerating markdown fences or
// extra prose around the JSON.
func parseScores(response string) (zeroShotResponse, error) {
	jsonStr := response
	start := -1
	end := -1

	for i, c := range jsonStr {
		if c == '{' {
			start = i
			break
		}
	}
	for i := len(jsonStr) - 1; i >= 0; i-- {
		if c := jsonStr[i]; c == '}' {
			end = i + 1
			break
		}
	}

	if start == -1 || end == -1 || start >= end {
		return zeroShotResponse{}, fmt.Errorf("no JSON object found in response")
	}
	jsonStr = jsonStr[start:end]

	var result zeroShotResponse
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zeroShotResponse{}, fmt.Errorf("failed to unmarshal scores: %w\nResponse: %s", err, response)
	}
	return result, nil
}
