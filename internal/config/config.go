package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type SheetsConfig struct {
	CredentialsPath string `toml:"credentials_path"`
	SpreadsheetID   string `toml:"spreadsheet_id"`
	ReadRange       string `toml:"read_range"`
	GenreColumn     string `toml:"genre_column"`
}

type ClassifyConfig struct {
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	MaxRetries          int     `toml:"max_retries"`
	BatchSize           int     `toml:"batch_size"`
	PacingSeconds       float64 `toml:"pacing_seconds"`
}

// RulesConfig optionally replaces one or more keyword tiers wholesale.
// An absent or empty list keeps the built-in vocabulary for that tier.
type RulesConfig struct {
	FormatNonFiction     []string `toml:"format_non_fiction"`
	FormatFiction        []string `toml:"format_fiction"`
	NonFictionSubjects   []string `toml:"non_fiction_subjects"`
	InstructionalPhrases []string `toml:"instructional_phrases"`
	FictionThemes        []string `toml:"fiction_themes"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Sheets   SheetsConfig   `toml:"sheets"`
	Classify ClassifyConfig `toml:"classify"`
	Rules    RulesConfig    `toml:"rules"`
}

func defaults() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Sheets: SheetsConfig{
			CredentialsPath: "credentials.json",
			ReadRange:       "Sheet1!A2:A",
			GenreColumn:     "F",
		},
		Classify: ClassifyConfig{
			ConfidenceThreshold: 0.6,
			MaxRetries:          2,
			BatchSize:           10,
			PacingSeconds:       1,
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional TOML file, then environment variables on top.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("GOOGLE_CREDENTIALS_PATH"); v != "" {
		cfg.Sheets.CredentialsPath = v
	}
	if v := os.Getenv("SPREADSHEET_ID"); v != "" {
		cfg.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("SHEET_RANGE"); v != "" {
		cfg.Sheets.ReadRange = v
	}
	if v := os.Getenv("GENRE_COLUMN"); v != "" {
		cfg.Sheets.GenreColumn = v
	}
	if v := os.Getenv("CONFIDENCE_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid CONFIDENCE_THRESHOLD %q: %w", v, err)
		}
		cfg.Classify.ConfidenceThreshold = f
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Classify.ConfidenceThreshold < 0 || c.Classify.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold %v must be within [0, 1]", c.Classify.ConfidenceThreshold)
	}
	if c.Classify.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1")
	}
	if c.Classify.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1")
	}
	return nil
}

// ValidateSheets is checked by commands that touch the spreadsheet; a pure
// classification run does not need it.
func (c *Config) ValidateSheets() error {
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("missing required environment variable: SPREADSHEET_ID")
	}
	if !strings.Contains(c.Sheets.ReadRange, "!") {
		return fmt.Errorf("SHEET_RANGE %q must be in 'Sheet!A1' notation", c.Sheets.ReadRange)
	}
	if c.Sheets.GenreColumn == "" {
		return fmt.Errorf("genre column must not be empty")
	}
	return nil
}
