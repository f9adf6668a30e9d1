package rules

import (
	"encoding/json"
	"errors"
	"strconv"
)

// FixAvailability is the normalized form of the "fix" field of a rule record.
type FixAvailability int

const (
	FixNotAvailable FixAvailability = iota
	FixSometimes
	FixAlways
)

// Fix availability strings as emitted by `ruff rule --all --output-format json`.
const (
	FixNotAvailableText = "Fix is not available."
	FixSometimesText    = "Fix is sometimes available."
	FixAlwaysText       = "Fix is always available."
)

// ErrUnrecognizedFix is returned by ParseFixAvailability for values outside the known set.
var ErrUnrecognizedFix = errors.New("unrecognized fix value")

// ParseFixAvailability maps the raw JSON value of a "fix" field to a FixAvailability.
// Only the three known strings are accepted; any other value, including non-strings, yields ErrUnrecognizedFix.
func ParseFixAvailability(raw json.RawMessage) (FixAvailability, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return FixNotAvailable, ErrUnrecognizedFix
	}

	switch text {
	case FixNotAvailableText:
		return FixNotAvailable, nil
	case FixSometimesText:
		return FixSometimes, nil
	case FixAlwaysText:
		return FixAlways, nil
	default:
		return FixNotAvailable, ErrUnrecognizedFix
	}
}

// Available reports whether any automatic fix exists.
func (f FixAvailability) Available() bool {
	return f == FixSometimes || f == FixAlways
}

// RawJSON returns the integer code of f as a JSON value.
func (f FixAvailability) RawJSON() json.RawMessage {
	return json.RawMessage(strconv.Itoa(int(f)))
}

func (f FixAvailability) String() string {
	switch f {
	case FixNotAvailable:
		return "not-available"
	case FixSometimes:
		return "sometimes"
	case FixAlways:
		return "always"
	default:
		return "unknown(" + strconv.Itoa(int(f)) + ")"
	}
}

// ParseFixCode reads the integer form of a transformed "fix" field. Only 1 and 2 are accepted.
func ParseFixCode(raw json.RawMessage) (FixAvailability, error) {
	var code int
	if err := json.Unmarshal(raw, &code); err != nil {
		return FixNotAvailable, ErrUnrecognizedFix
	}
	fix := FixAvailability(code)
	if !fix.Available() {
		return FixNotAvailable, ErrUnrecognizedFix
	}
	return fix, nil
}
