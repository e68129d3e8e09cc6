package genre

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samducker/bookgenre/internal/llm"
	"github.com/samducker/bookgenre/internal/sheets"
)

func newTestProcessor(gateway Gateway, model *MockZeroShot) *Processor {
	classifier := NewClassifier(model, DefaultRules(), 0.6)
	p := NewProcessor(gateway, classifier, 10, 2, 0, "F")
	p.Sleep = func(time.Duration) {}
	return p
}

func titlesAt(startRow int, texts ...string) []sheets.Title {
	titles := make([]sheets.Title, len(texts))
	for i, text := range texts {
		titles[i] = sheets.Title{Text: text, Row: startRow + i, Column: "A"}
	}
	return titles
}

func TestRunWritesGenres(t *testing.T) {
	gateway := &MockGateway{
		Titles: titlesAt(2, "How to Cook Everything", "The Last Dragon"),
	}
	p := newTestProcessor(gateway, &MockZeroShot{})

	summary, err := p.Run(context.Background(), "Sheet1!A2:A")

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Updated)
	assert.Zero(t, summary.Skipped)
	assert.Zero(t, summary.Failed)
	assert.NotEmpty(t, summary.RunID)

	written := gateway.written()
	require.Len(t, written, 2)
	assert.Equal(t, sheets.Update{Range: "Sheet1!F2", Value: "non-fiction"}, written[0])
	assert.Equal(t, sheets.Update{Range: "Sheet1!F3", Value: "fiction"}, written[1])
}

func TestRunSkipsExistingGenres(t *testing.T) {
	gateway := &MockGateway{
		Titles: titlesAt(2, "How to Cook Everything", "The Last Dragon"),
		Cells: map[string]string{
			"Sheet1!F2": "non-fiction",
			"Sheet1!F3": "Fiction",
		},
	}
	model := &MockZeroShot{}
	p := newTestProcessor(gateway, model)

	summary, err := p.Run(context.Background(), "Sheet1!A2:A")

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Skipped)
	assert.Zero(t, summary.Processed)
	assert.Empty(t, gateway.Writes, "already-tagged rows must not be rewritten")
	assert.Zero(t, model.Calls)
}

func TestRunReclassifiesUnknown(t *testing.T) {
	// A cell holding "unknown" is fair game for another pass.
	gateway := &MockGateway{
		Titles: titlesAt(2, "The Lord of the Rings"),
		Cells:  map[string]string{"Sheet1!F2": "unknown"},
	}
	model := &MockZeroShot{Ranked: modelAnswer(candidateLabels[1], 0.8)}
	p := newTestProcessor(gateway, model)

	summary, err := p.Run(context.Background(), "Sheet1!A2:A")

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	require.Len(t, gateway.written(), 1)
	assert.Equal(t, "fiction", gateway.written()[0].Value)
}

func TestRunRetriesUnknownThenAcceptsIt(t *testing.T) {
	// Two attempts allowed, model stays under threshold both times:
	// "unknown" is written as the final label.
	gateway := &MockGateway{Titles: titlesAt(2, "Ulysses")}
	model := &MockZeroShot{Ranked: modelAnswer(candidateLabels[1], 0.4)}
	p := newTestProcessor(gateway, model)

	summary, err := p.Run(context.Background(), "Sheet1!A2:A")

	require.NoError(t, err)
	assert.Equal(t, 2, model.Calls, "exactly max_retries attempts")
	require.Len(t, gateway.written(), 1)
	assert.Equal(t, "unknown", gateway.written()[0].Value)
	assert.Equal(t, 1, summary.Updated)
}

func TestRunRetryRecoversConfidentLabel(t *testing.T) {
	gateway := &MockGateway{Titles: titlesAt(2, "Ulysses")}
	model := &MockZeroShot{Queue: [][]llm.RankedLabel{
		modelAnswer(candidateLabels[1], 0.4),
		modelAnswer(candidateLabels[1], 0.85),
	}}
	p := newTestProcessor(gateway, model)

	_, err := p.Run(context.Background(), "Sheet1!A2:A")

	require.NoError(t, err)
	assert.Equal(t, 2, model.Calls)
	require.Len(t, gateway.written(), 1)
	assert.Equal(t, "fiction", gateway.written()[0].Value)
}

func TestRunErrorRowSkippedNotRetried(t *testing.T) {
	gateway := &MockGateway{
		Titles: titlesAt(2, "Ulysses", "The Last Dragon"),
	}
	model := &MockZeroShot{Err: errors.New("inference failed")}
	p := newTestProcessor(gateway, model)

	summary, err := p.Run(context.Background(), "Sheet1!A2:A")

	require.NoError(t, err)
	assert.Equal(t, 1, model.Calls, "errors are not retried")
	assert.Equal(t, 1, summary.Failed)
	// The rule-tagged title still goes through.
	require.Len(t, gateway.written(), 1)
	assert.Equal(t, "Sheet1!F3", gateway.written()[0].Range)
	assert.Equal(t, 1, summary.Updated)
}

func TestRunCellReadFailureSkipsRowOnly(t *testing.T) {
	gateway := &MockGateway{
		Titles:   titlesAt(2, "How to Cook Everything", "The Last Dragon"),
		CellErrs: map[string]error{"Sheet1!F2": errors.New("http 500")},
	}
	p := newTestProcessor(gateway, &MockZeroShot{})

	summary, err := p.Run(context.Background(), "Sheet1!A2:A")

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Updated)
	require.Len(t, gateway.written(), 1)
	assert.Equal(t, "Sheet1!F3", gateway.written()[0].Range)
}

func TestRunFlushesInBatches(t *testing.T) {
	texts := make([]string, 12)
	for i := range texts {
		texts[i] = fmt.Sprintf("The Last Dragon %d", i)
	}
	gateway := &MockGateway{Titles: titlesAt(2, texts...)}
	p := newTestProcessor(gateway, &MockZeroShot{})

	summary, err := p.Run(context.Background(), "Sheet1!A2:A")

	require.NoError(t, err)
	require.Len(t, gateway.Writes, 2, "one full batch plus the remainder")
	assert.Len(t, gateway.Writes[0], 10)
	assert.Len(t, gateway.Writes[1], 2)
	assert.Equal(t, 12, summary.Updated)
}

func TestRunWriteFailureCountsRowsFailed(t *testing.T) {
	gateway := &MockGateway{
		Titles:   titlesAt(2, "The Last Dragon", "How to Cook Everything"),
		WriteErr: errors.New("quota exceeded"),
	}
	p := newTestProcessor(gateway, &MockZeroShot{})

	summary, err := p.Run(context.Background(), "Sheet1!A2:A")

	require.NoError(t, err)
	assert.Zero(t, summary.Updated)
	assert.Equal(t, 2, summary.Failed)
}

func TestRunReadTitlesFailureIsFatal(t *testing.T) {
	gateway := &MockGateway{TitlesErr: errors.New("permission denied")}
	p := newTestProcessor(gateway, &MockZeroShot{})

	_, err := p.Run(context.Background(), "Sheet1!A2:A")

	assert.Error(t, err)
}

func TestRunEmptySheet(t *testing.T) {
	gateway := &MockGateway{}
	p := newTestProcessor(gateway, &MockZeroShot{})

	summary, err := p.Run(context.Background(), "Sheet1!A2:A")

	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Empty(t, gateway.Writes)
}

func TestRunPacesEveryAttempt(t *testing.T) {
	gateway := &MockGateway{Titles: titlesAt(2, "Ulysses")}
	model := &MockZeroShot{Ranked: modelAnswer(candidateLabels[1], 0.4)}
	classifier := NewClassifier(model, DefaultRules(), 0.6)
	p := NewProcessor(gateway, classifier, 10, 2, time.Second, "F")

	var slept []time.Duration
	p.Sleep = func(d time.Duration) { slept = append(slept, d) }

	_, err := p.Run(context.Background(), "Sheet1!A2:A")

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, slept)
}
