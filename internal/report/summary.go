package report

import (
	"fmt"
	"io"
)

// WriteSummary prints the most frequent values of every filterable key.
// A limit of zero or less prints all values.
func WriteSummary(w io.Writer, processed Processed, limit int) error {
	if _, err := fmt.Fprintf(w, "Diagnostics: %d\n", len(processed.Messages)); err != nil {
		return err
	}

	for _, key := range FilterableKeys {
		counts := processed.Values[key]
		if _, err := fmt.Fprintf(w, "\n%s (%d)\n", KeyLabels[key], len(counts)); err != nil {
			return err
		}
		for i, vc := range counts {
			if limit > 0 && i >= limit {
				break
			}
			line := fmt.Sprintf("  %6d  %s", vc.Count, vc.Value)
			if key == KeyCode {
				if rule, ok := processed.Rules[vc.Value]; ok && rule.Name != "" {
					line += " (" + rule.Name + ")"
				}
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
