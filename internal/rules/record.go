package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is a single lint-rule descriptor. Keys keep their insertion order and
// values are kept as raw JSON, so untouched fields are written back unchanged.
type Record struct {
	fields *orderedmap.OrderedMap[string, json.RawMessage]
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: orderedmap.New[string, json.RawMessage]()}
}

// Get returns the raw value stored under key.
func (r *Record) Get(key string) (json.RawMessage, bool) {
	return r.fields.Get(key)
}

// Set stores value under key. A new key is appended after the existing ones.
func (r *Record) Set(key string, value json.RawMessage) {
	r.fields.Set(key, value)
}

// Remove deletes key and returns its previous value.
func (r *Record) Remove(key string) (json.RawMessage, bool) {
	return r.fields.Delete(key)
}

// Len returns the number of keys in the record.
func (r *Record) Len() int {
	return r.fields.Len()
}

// Keys returns the record keys in order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// GetString returns the value under key decoded as a JSON string.
func (r *Record) GetString(key string) (string, bool) {
	raw, ok := r.fields.Get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// MarshalJSON writes the record keys in order. Values are compacted but not
// re-escaped, so "<", ">" and "&" stay literal.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, pair.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := json.Compact(&buf, pair.Value); err != nil {
			return nil, fmt.Errorf("invalid value for key %q: %w", pair.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	var encoded bytes.Buffer
	enc := json.NewEncoder(&encoded)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(key); err != nil {
		return fmt.Errorf("failed to encode key %q: %w", key, err)
	}
	buf.Write(bytes.TrimRight(encoded.Bytes(), "\n"))
	return nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("value is not a JSON object")
	}
	fields := orderedmap.New[string, json.RawMessage]()
	if err := fields.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	r.fields = fields
	return nil
}

// Decode reads the whole input and parses it as a JSON array of rule records.
func Decode(reader io.Reader) ([]*Record, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, NewMalformedInputError(-1, "failed to read input", err)
	}
	if !utf8.Valid(data) {
		return nil, NewMalformedInputError(-1, "input is not valid UTF-8", nil)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, NewMalformedInputError(-1, "input is empty", nil)
	}
	if trimmed[0] != '[' {
		return nil, NewMalformedInputError(-1, "top-level value is not an array", nil)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, NewMalformedInputError(-1, "invalid JSON", err)
	}

	records := make([]*Record, 0, len(elements))
	for i, element := range elements {
		trimmedElement := bytes.TrimSpace(element)
		if len(trimmedElement) == 0 || trimmedElement[0] != '{' {
			return nil, NewMalformedInputError(i, "element is not an object", nil)
		}

		record := NewRecord()
		if err := record.UnmarshalJSON(trimmedElement); err != nil {
			return nil, NewMalformedInputError(i, "invalid object", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Encode writes records as an indented JSON array followed by a newline.
func Encode(w io.Writer, records []*Record) error {
	if records == nil {
		records = []*Record{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return nil
}
