package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"
)

// Location is a one-based row and column in a source file.
type Location struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Edit is a single text replacement of a fix.
type Edit struct {
	Content     string   `json:"content"`
	Location    Location `json:"location"`
	EndLocation Location `json:"end_location"`
}

// Fix is the fix ruff suggests for a diagnostic.
type Fix struct {
	Applicability string  `json:"applicability"`
	Edits         []Edit  `json:"edits"`
	Message       *string `json:"message"`
}

// Diagnostic is one entry of 'ruff check --output-format json'.
type Diagnostic struct {
	Cell        json.RawMessage `json:"cell"`
	Code        string          `json:"code"`
	EndLocation Location        `json:"end_location"`
	Filename    string          `json:"filename"`
	Fix         *Fix            `json:"fix"`
	Location    Location        `json:"location"`
	Message     string          `json:"message"`
	NoqaRow     *int            `json:"noqa_row"`
	URL         string          `json:"url"`
}

// DecodeDiagnostics reads a JSON array of ruff diagnostics.
func DecodeDiagnostics(reader io.Reader) ([]Diagnostic, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagnostics: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("diagnostics are not valid UTF-8")
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("diagnostics must be a JSON array")
	}

	var diagnostics []Diagnostic
	if err := json.Unmarshal(trimmed, &diagnostics); err != nil {
		return nil, fmt.Errorf("failed to parse diagnostics: %w", err)
	}
	if diagnostics == nil {
		diagnostics = []Diagnostic{}
	}
	return diagnostics, nil
}
