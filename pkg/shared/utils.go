package shared

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// HasFlags reports whether any flag of the set was changed on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.Visit(func(*pflag.Flag) {
		changed = true
	})
	return changed
}

// PrintResultAsJSON writes result to w as indented JSON.
func PrintResultAsJSON(w io.Writer, result interface{}) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling the result data: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("error writing the result data: %w", err)
	}
	return nil
}
