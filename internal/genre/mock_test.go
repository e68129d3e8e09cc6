package genre

import (
	"context"

	"github.com/samducker/bookgenre/internal/llm"
	"github.com/samducker/bookgenre/internal/sheets"
)

type MockZeroShot struct {
	Ranked []llm.RankedLabel
	Queue  [][]llm.RankedLabel
	Err    error
	Calls  int
	Texts  []string
}

func (m *MockZeroShot) ClassifyZeroShot(ctx context.Context, text string, labels []string, hypothesisTemplate string) ([]llm.RankedLabel, error) {
	m.Calls++
	m.Texts = append(m.Texts, text)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Queue) > 0 {
		ranked := m.Queue[0]
		m.Queue = m.Queue[1:]
		return ranked, nil
	}
	return m.Ranked, nil
}

// modelAnswer builds a ranked response where the named label wins.
func modelAnswer(topLabel string, score float64) []llm.RankedLabel {
	other := candidateLabels[0]
	if other == topLabel {
		other = candidateLabels[1]
	}
	return []llm.RankedLabel{
		{Label: topLabel, Score: score},
		{Label: other, Score: 1 - score},
	}
}

type MockGateway struct {
	Titles    []sheets.Title
	TitlesErr error
	Cells     map[string]string
	CellErrs  map[string]error
	Writes    [][]sheets.Update
	WriteErr  error
}

func (m *MockGateway) ReadTitles(ctx context.Context, readRange string) ([]sheets.Title, error) {
	if m.TitlesErr != nil {
		return nil, m.TitlesErr
	}
	return m.Titles, nil
}

func (m *MockGateway) ReadCell(ctx context.Context, cellRange string) (string, error) {
	if err, ok := m.CellErrs[cellRange]; ok {
		return "", err
	}
	return m.Cells[cellRange], nil
}

func (m *MockGateway) Write(ctx context.Context, updates []sheets.Update) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	copied := make([]sheets.Update, len(updates))
	copy(copied, updates)
	m.Writes = append(m.Writes, copied)
	return nil
}

func (m *MockGateway) written() []sheets.Update {
	var all []sheets.Update
	for _, batch := range m.Writes {
		all = append(all, batch...)
	}
	return all
}
