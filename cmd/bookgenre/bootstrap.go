package main

import (
	"context"
	"fmt"
	"time"

	"github.com/samducker/bookgenre/internal/config"
	"github.com/samducker/bookgenre/internal/genre"
	"github.com/samducker/bookgenre/internal/llm"
	"github.com/samducker/bookgenre/internal/sheets"
)

func buildClassifier(ctx context.Context, cfg *config.Config) (*genre.Classifier, error) {
	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genre classifier: %w", err)
	}

	model := llm.NewZeroShotClassifier(client)
	rules := genre.RulesFromConfig(cfg.Rules)
	return genre.NewClassifier(model, rules, cfg.Classify.ConfidenceThreshold), nil
}

func buildProcessor(ctx context.Context, cfg *config.Config, classifier *genre.Classifier) (*genre.Processor, error) {
	if err := cfg.ValidateSheets(); err != nil {
		return nil, err
	}

	gateway, err := sheets.NewService(ctx, cfg.Sheets.CredentialsPath, cfg.Sheets.SpreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets service: %w", err)
	}

	pace := time.Duration(cfg.Classify.PacingSeconds * float64(time.Second))
	return genre.NewProcessor(
		gateway,
		classifier,
		cfg.Classify.BatchSize,
		cfg.Classify.MaxRetries,
		pace,
		cfg.Sheets.GenreColumn,
	), nil
}
