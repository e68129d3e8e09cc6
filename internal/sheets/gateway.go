// Package sheets wraps the Google Sheets v4 API as the spreadsheet gateway:
// reading a column of titles with their row coordinates and batch-writing
// genre values back.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Title is one non-empty spreadsheet cell with its coordinates.
type Title struct {
	Text   string
	Row    int
	Column string
}

// Update targets a single cell in A1 notation with a value to write.
type Update struct {
	Range string
	Value string
}

type Service struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

func NewService(ctx context.Context, credentialsPath string, spreadsheetID string) (*Service, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Service{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// ReadTitles reads the given range and returns one Title per non-empty row,
// with row numbers anchored at the range's starting cell.
func (s *Service) ReadTitles(ctx context.Context, readRange string) ([]Title, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %q: %w", readRange, err)
	}

	_, column, startRow, err := ParseRangeStart(readRange)
	if err != nil {
		return nil, err
	}

	var titles []Title
	for idx, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		text := cellString(row[0])
		if text == "" {
			continue
		}
		titles = append(titles, Title{
			Text:   text,
			Row:    startRow + idx,
			Column: column,
		})
	}
	return titles, nil
}

// ReadCell returns the value of a single cell, or "" when the cell is empty.
func (s *Service) ReadCell(ctx context.Context, cellRange string) (string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, cellRange).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to read cell %q: %w", cellRange, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return cellString(resp.Values[0][0]), nil
}

// cellString renders a cell value from the API's untyped JSON form.
func cellString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Write sends all updates in a single batch call.
func (s *Service) Write(ctx context.Context, updates []Update) error {
	if len(updates) == 0 {
		return nil
	}
	_, err := s.svc.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, batchBody(updates)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to batch-write %d values: %w", len(updates), err)
	}
	return nil
}

func batchBody(updates []Update) *sheetsapi.BatchUpdateValuesRequest {
	data := make([]*sheetsapi.ValueRange, len(updates))
	for i, u := range updates {
		data[i] = &sheetsapi.ValueRange{
			Range:  u.Range,
			Values: [][]interface{}{{u.Value}},
		}
	}
	return &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
}

// ParseRangeStart extracts the sheet name, starting column letter and starting
// row from an A1 range like "Sheet1!A2:A". A cell reference without a row
// digit anchors at row 1.
func ParseRangeStart(readRange string) (sheet string, column string, startRow int, err error) {
	parts := strings.SplitN(readRange, "!", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", 0, fmt.Errorf("range %q missing sheet name separator '!'", readRange)
	}
	sheet = parts[0]

	cell := strings.SplitN(parts[1], ":", 2)[0]
	i := 0
	for i < len(cell) && unicode.IsLetter(rune(cell[i])) {
		i++
	}
	if i == 0 {
		return "", "", 0, fmt.Errorf("range %q has no column letter", readRange)
	}
	column = strings.ToUpper(cell[:i])

	startRow = 1
	if digits := cell[i:]; digits != "" {
		startRow, err = strconv.Atoi(digits)
		if err != nil || startRow < 1 {
			return "", "", 0, fmt.Errorf("range %q has invalid row %q", readRange, digits)
		}
	}
	return sheet, column, startRow, nil
}
