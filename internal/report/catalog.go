package report

import (
	"fmt"

	"github.com/scan-io-git/ruffrules/internal/rules"
)

// Rule is the part of a transformed rule record the report shows next to a diagnostic.
type Rule struct {
	Code        string                `json:"code"`
	Name        string                `json:"name"`
	Explanation string                `json:"explanation"`
	Preview     bool                  `json:"preview,omitempty"`
	Fix         rules.FixAvailability `json:"fix,omitempty"`
}

// RuleMap indexes catalog rules by code.
type RuleMap map[string]Rule

// NewRuleMap builds a RuleMap from transformed rule records.
func NewRuleMap(records []*rules.Record) (RuleMap, error) {
	ruleMap := make(RuleMap, len(records))
	for i, record := range records {
		code, ok := record.GetString(rules.KeyCode)
		if !ok || code == "" {
			return nil, fmt.Errorf("rule %d: %q is missing or not a string", i, rules.KeyCode)
		}

		rule := Rule{Code: code}
		rule.Name, _ = record.GetString(rules.KeyName)
		rule.Explanation, _ = record.GetString(rules.KeyExplanation)
		if raw, ok := record.Get(rules.KeyPreview); ok {
			rule.Preview = rules.Truthy(raw)
		}
		if raw, ok := record.Get(rules.KeyFix); ok {
			fix, err := rules.ParseFixCode(raw)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): %q is not a fix code: %s", i, code, rules.KeyFix, string(raw))
			}
			rule.Fix = fix
		}
		ruleMap[code] = rule
	}
	return ruleMap, nil
}

// Referenced returns the rules used by diagnostics and the codes absent from m,
// in order of first appearance.
func (m RuleMap) Referenced(diagnostics []ExtendedDiagnostic) (map[string]Rule, []string) {
	used := make(map[string]Rule)
	var missing []string
	seenMissing := make(map[string]struct{})
	for _, d := range diagnostics {
		if _, ok := used[d.Code]; ok {
			continue
		}
		if rule, ok := m[d.Code]; ok {
			used[d.Code] = rule
			continue
		}
		if _, ok := seenMissing[d.Code]; !ok {
			seenMissing[d.Code] = struct{}{}
			missing = append(missing, d.Code)
		}
	}
	return used, missing
}
