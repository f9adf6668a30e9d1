package report

import (
	"encoding/json"
	"sort"

	"github.com/hashicorp/go-hclog"
)

// Key names a diagnostic attribute the report can be filtered by.
type Key string

const (
	KeyCode        Key = "code"
	KeyCodeClass   Key = "codeClass"
	KeyFixable     Key = "fixable"
	KeyPackageName Key = "packageName"
	KeyModuleName  Key = "moduleName"
)

// FilterableKeys lists the keys counted by Process, in display order.
var FilterableKeys = []Key{KeyCode, KeyCodeClass, KeyFixable, KeyPackageName, KeyModuleName}

// KeyLabels holds the display label of each filterable key.
var KeyLabels = map[Key]string{
	KeyCode:        "Code",
	KeyCodeClass:   "Code Class",
	KeyFixable:     "Fixability",
	KeyPackageName: "Package Name",
	KeyModuleName:  "Module Name",
}

const (
	Fixable    = "Fixable"
	NotFixable = "Not fixable"
)

// ExtendedDiagnostic is a diagnostic with the attributes derived for filtering.
type ExtendedDiagnostic struct {
	Diagnostic
	CodeClass     string `json:"codeClass"`
	ShortFilename string `json:"shortFilename"`
	Fixable       string `json:"fixable"`
	PackageName   string `json:"packageName"`
	ModuleName    string `json:"moduleName"`
}

// Value returns the attribute of d named by key.
func (d ExtendedDiagnostic) Value(key Key) string {
	switch key {
	case KeyCode:
		return d.Code
	case KeyCodeClass:
		return d.CodeClass
	case KeyFixable:
		return d.Fixable
	case KeyPackageName:
		return d.PackageName
	case KeyModuleName:
		return d.ModuleName
	default:
		return ""
	}
}

// ValueCount is the number of diagnostics sharing one attribute value.
// It is encoded as a [value, count] pair.
type ValueCount struct {
	Value string
	Count int
}

func (v ValueCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{v.Value, v.Count})
}

// Group holds the diagnostics sharing one attribute value.
type Group struct {
	Value       string               `json:"value"`
	Diagnostics []ExtendedDiagnostic `json:"diagnostics"`
}

// Processed is the aggregated view of a diagnostics list.
type Processed struct {
	Messages []ExtendedDiagnostic `json:"messages"`
	Values   map[Key][]ValueCount `json:"values"`
	Rules    map[string]Rule      `json:"rules,omitempty"`
}

// Extend derives the filter attributes of every diagnostic. File names are
// shortened by the directory prefix shared by all of them.
func Extend(diagnostics []Diagnostic) []ExtendedDiagnostic {
	seen := make(map[string]struct{}, len(diagnostics))
	filenames := make([]string, 0, len(diagnostics))
	for _, d := range diagnostics {
		if _, ok := seen[d.Filename]; ok {
			continue
		}
		seen[d.Filename] = struct{}{}
		filenames = append(filenames, d.Filename)
	}
	prefix := CommonDir(CommonPrefix(filenames))

	extended := make([]ExtendedDiagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		shortFilename := RemovePrefix(d.Filename, prefix)
		moduleName := DeriveModule(shortFilename)
		fixable := NotFixable
		if d.Fix != nil {
			fixable = Fixable
		}
		extended = append(extended, ExtendedDiagnostic{
			Diagnostic:    d,
			CodeClass:     CodeClass(d.Code),
			ShortFilename: shortFilename,
			Fixable:       fixable,
			PackageName:   DerivePackage(moduleName),
			ModuleName:    moduleName,
		})
	}
	return extended
}

// CountAndSort counts diagnostics per value of key, most frequent first.
// Ties keep the order in which the values first appear.
func CountAndSort(diagnostics []ExtendedDiagnostic, key Key) []ValueCount {
	index := make(map[string]int)
	counts := make([]ValueCount, 0)
	for _, d := range diagnostics {
		value := d.Value(key)
		i, ok := index[value]
		if !ok {
			i = len(counts)
			index[value] = i
			counts = append(counts, ValueCount{Value: value})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}

// GroupAndSort groups diagnostics by value of key, largest group first.
// Ties keep the order in which the values first appear.
func GroupAndSort(diagnostics []ExtendedDiagnostic, key Key) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, d := range diagnostics {
		value := d.Value(key)
		i, ok := index[value]
		if !ok {
			i = len(groups)
			index[value] = i
			groups = append(groups, Group{Value: value})
		}
		groups[i].Diagnostics = append(groups[i].Diagnostics, d)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return len(groups[a].Diagnostics) > len(groups[b].Diagnostics)
	})
	return groups
}

// Processor aggregates diagnostics and joins them with a rule catalog.
type Processor struct {
	logger  hclog.Logger
	catalog RuleMap
}

// NewProcessor creates a Processor. A nil catalog skips the rule join and a
// nil logger discards all output.
func NewProcessor(logger hclog.Logger, catalog RuleMap) *Processor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Processor{logger: logger, catalog: catalog}
}

// Process extends diagnostics and counts them per filterable key.
func (p *Processor) Process(diagnostics []Diagnostic) Processed {
	extended := Extend(diagnostics)
	values := make(map[Key][]ValueCount, len(FilterableKeys))
	for _, key := range FilterableKeys {
		values[key] = CountAndSort(extended, key)
	}

	processed := Processed{
		Messages: extended,
		Values:   values,
	}
	if p.catalog != nil {
		rules, missing := p.catalog.Referenced(extended)
		processed.Rules = rules
		if len(missing) > 0 {
			p.logger.Warn("diagnostics reference rules missing from the catalog", "codes", missing)
		}
	}

	p.logger.Debug("diagnostics processed", "messages", len(extended), "codes", len(values[KeyCode]))
	return processed
}
