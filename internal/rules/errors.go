package rules

import (
	"fmt"
)

// MalformedInputError reports input that is not a JSON array of JSON objects.
type MalformedInputError struct {
	Reason string
	Index  int // -1 when the failure is not tied to a single record
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := "malformed input: " + e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("malformed input: record %d: %s", e.Index, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// NewMalformedInputError creates a MalformedInputError for the record at index.
func NewMalformedInputError(index int, reason string, err error) error {
	return &MalformedInputError{
		Reason: reason,
		Index:  index,
		Err:    err,
	}
}

// MissingKeyError reports a required key absent from a rule record.
type MissingKeyError struct {
	Index int
	Key   string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("record %d: missing required key %q", e.Index, e.Key)
}

// NewMissingKeyError creates a MissingKeyError.
func NewMissingKeyError(index int, key string) error {
	return &MissingKeyError{
		Index: index,
		Key:   key,
	}
}

// UnrecognizedFixError reports a fix value outside the known availability strings.
type UnrecognizedFixError struct {
	Index int
	Value string // raw JSON text of the offending value
}

func (e *UnrecognizedFixError) Error() string {
	return fmt.Sprintf("record %d: unexpected fix: %s", e.Index, e.Value)
}

// NewUnrecognizedFixError creates an UnrecognizedFixError.
func NewUnrecognizedFixError(index int, value string) error {
	return &UnrecognizedFixError{
		Index: index,
		Value: value,
	}
}
