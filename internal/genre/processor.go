package genre

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samducker/bookgenre/internal/sheets"
)

// Gateway is the spreadsheet surface the processor needs. The real
// implementation lives in internal/sheets; tests substitute a mock.
type Gateway interface {
	ReadTitles(ctx context.Context, readRange string) ([]sheets.Title, error)
	ReadCell(ctx context.Context, cellRange string) (string, error)
	Write(ctx context.Context, updates []sheets.Update) error
}

// Summary reports the outcome of one batch run.
type Summary struct {
	RunID     string `json:"run_id"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Updated   int    `json:"updated"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

// Processor walks a column of titles, classifies the untagged ones and
// batch-writes genres back. Processing is strictly sequential; the only
// scheduling concern is the pacing delay before each classification attempt.
type Processor struct {
	Gateway     Gateway
	Classifier  *Classifier
	BatchSize   int
	MaxRetries  int
	Pace        time.Duration
	GenreColumn string

	// Sleep defaults to time.Sleep; tests replace it to avoid real delays.
	Sleep func(time.Duration)
}

func NewProcessor(gateway Gateway, classifier *Classifier, batchSize, maxRetries int, pace time.Duration, genreColumn string) *Processor {
	return &Processor{
		Gateway:     gateway,
		Classifier:  classifier,
		BatchSize:   batchSize,
		MaxRetries:  maxRetries,
		Pace:        pace,
		GenreColumn: genreColumn,
		Sleep:       time.Sleep,
	}
}

// Run processes every title in readRange. Row-level failures are logged and
// skipped; only a failure to read the title column at all is returned as an
// error.
func (p *Processor) Run(ctx context.Context, readRange string) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}

	titles, err := p.Gateway.ReadTitles(ctx, readRange)
	if err != nil {
		return summary, fmt.Errorf("failed to read titles: %w", err)
	}
	if len(titles) == 0 {
		log.Println("No books found to process")
		return summary, nil
	}
	summary.Total = len(titles)

	sheetName, _, _, err := sheets.ParseRangeStart(readRange)
	if err != nil {
		return summary, err
	}

	log.Printf("Processing %d books...", len(titles))

	var batch []sheets.Update
	for _, title := range titles {
		genreRange := fmt.Sprintf("%s!%s%d", sheetName, p.GenreColumn, title.Row)

		log.Printf("Processing: %q", title.Text)

		existing, err := p.Gateway.ReadCell(ctx, genreRange)
		if err != nil {
			log.Printf("Error checking genre for %q: %v", title.Text, err)
			summary.Failed++
			continue
		}
		if strings.TrimSpace(existing) != "" && !strings.EqualFold(existing, string(GenreUnknown)) {
			log.Printf("Skipping - genre exists: %q", existing)
			summary.Skipped++
			continue
		}

		result := p.classifyWithRetry(ctx, title.Text)
		summary.Processed++

		if result.Genre == GenreError {
			summary.Failed++
		} else {
			log.Printf("Classified as: %s (confidence: %.2f)", result.Genre, result.Confidence)
			batch = append(batch, sheets.Update{Range: genreRange, Value: string(result.Genre)})
			if len(batch) >= p.BatchSize {
				p.flush(ctx, batch, &summary)
				batch = nil
			}
		}

		if summary.Processed%10 == 0 {
			log.Printf("Progress: %d/%d books", summary.Processed, len(titles))
		}
	}

	if len(batch) > 0 {
		p.flush(ctx, batch, &summary)
	}

	log.Printf("Complete: %d processed, %d updated", summary.Processed, summary.Updated)
	return summary, nil
}

// classifyWithRetry attempts classification up to MaxRetries times, pacing
// before every attempt. Only "unknown" is retried; after the last attempt it
// is accepted as the final label. "error" is terminal on first occurrence.
func (p *Processor) classifyWithRetry(ctx context.Context, title string) Result {
	attempts := p.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var result Result
	for attempt := 1; attempt <= attempts; attempt++ {
		p.sleep(p.Pace)
		result = p.Classifier.Classify(ctx, title)
		if result.Genre != GenreUnknown {
			return result
		}
		if attempt < attempts {
			log.Printf("Result unknown for %q, retrying (%d/%d)", title, attempt, attempts-1)
		}
	}
	return result
}

func (p *Processor) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (p *Processor) flush(ctx context.Context, batch []sheets.Update, summary *Summary) {
	if err := p.Gateway.Write(ctx, batch); err != nil {
		log.Printf("Error writing batch of %d genres: %v", len(batch), err)
		summary.Failed += len(batch)
		return
	}
	summary.Updated += len(batch)
}
