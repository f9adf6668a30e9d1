package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
)

// Well-known rule record keys.
const (
	KeyMessageFormats = "message_formats"
	KeySummary        = "summary"
	KeyLinter         = "linter"
	KeyPreview        = "preview"
	KeyFix            = "fix"
	KeyCode           = "code"
	KeyName           = "name"
	KeyExplanation    = "explanation"
)

var strippedKeys = []string{KeyMessageFormats, KeySummary, KeyLinter}

// Summary holds the counters of a single transform run.
type Summary struct {
	Total       int `json:"total"`
	Kept        int `json:"kept"`
	Dropped     int `json:"dropped"`
	PreviewKept int `json:"preview_kept"`
}

// Transformer strips and normalizes rule records.
type Transformer struct {
	logger hclog.Logger
}

// NewTransformer creates a Transformer. A nil logger discards all output.
func NewTransformer(logger hclog.Logger) *Transformer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Transformer{logger: logger}
}

// Transform applies the rule transform using a Transformer without logging.
func Transform(records []*Record) ([]*Record, Summary, error) {
	return NewTransformer(nil).Transform(records)
}

// Transform rewrites records in place and returns the surviving ones in input order.
// The first failing record aborts the run and no records are returned.
func (t *Transformer) Transform(records []*Record) ([]*Record, Summary, error) {
	summary := Summary{Total: len(records)}
	out := make([]*Record, 0, len(records))

	for i, record := range records {
		keep, err := t.transformRecord(i, record)
		if err != nil {
			return nil, summary, err
		}
		if !keep {
			summary.Dropped++
			continue
		}
		if _, ok := record.Get(KeyPreview); ok {
			summary.PreviewKept++
		}
		summary.Kept++
		out = append(out, record)
	}

	t.logger.Debug("rules transformed", "total", summary.Total, "kept", summary.Kept, "dropped", summary.Dropped)
	return out, summary, nil
}

func (t *Transformer) transformRecord(index int, record *Record) (bool, error) {
	if record == nil {
		return false, NewMalformedInputError(index, "element is not an object", nil)
	}

	for _, key := range strippedKeys {
		if _, ok := record.Remove(key); !ok {
			return false, NewMissingKeyError(index, key)
		}
	}

	preview, ok := record.Get(KeyPreview)
	if !ok {
		return false, NewMissingKeyError(index, KeyPreview)
	}
	if !Truthy(preview) {
		record.Remove(KeyPreview)
	}

	rawFix, ok := record.Remove(KeyFix)
	if !ok {
		return false, NewMissingKeyError(index, KeyFix)
	}
	fix, err := ParseFixAvailability(rawFix)
	if errors.Is(err, ErrUnrecognizedFix) {
		return false, NewUnrecognizedFixError(index, string(rawFix))
	}
	if err != nil {
		return false, err
	}

	if !fix.Available() {
		code, _ := record.GetString(KeyCode)
		t.logger.Trace("dropping rule without fix", "index", index, "code", code)
		return false, nil
	}

	record.Set(KeyFix, fix.RawJSON())
	return true, nil
}

// Load decodes rule records from r and transforms them.
func (t *Transformer) Load(r io.Reader) ([]*Record, Summary, error) {
	records, err := Decode(r)
	if err != nil {
		return nil, Summary{}, err
	}
	return t.Transform(records)
}

// Process decodes rule records from r, transforms them and writes the result to w.
// Nothing is written to w unless every record was transformed successfully.
func (t *Transformer) Process(r io.Reader, w io.Writer) (Summary, error) {
	out, summary, err := t.Load(r)
	if err != nil {
		return summary, err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, out); err != nil {
		return summary, err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return summary, fmt.Errorf("failed to write rules: %w", err)
	}
	return summary, nil
}
