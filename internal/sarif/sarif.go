package sarif

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/ruffrules/internal/report"
	"github.com/scan-io-git/ruffrules/internal/rules"
)

const (
	ResultLevel        = "warning"
	ToolName           = "ruff"
	ToolInformationURI = "https://docs.astral.sh/ruff/"
	RuleDocsBaseURI    = "https://docs.astral.sh/ruff/rules/"
)

// Exporter converts transformed rule records into a SARIF rule catalog.
type Exporter struct {
	logger      hclog.Logger
	toolVersion string
}

// NewExporter creates an Exporter. An empty toolVersion leaves the driver version unset.
func NewExporter(logger hclog.Logger, toolVersion string) *Exporter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Exporter{
		logger:      logger,
		toolVersion: toolVersion,
	}
}

// BuildReport creates a SARIF report with a single run whose driver lists every record as a rule.
func (e *Exporter) BuildReport(records []*rules.Record) (*sarif.Report, error) {
	sarifReport, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(ToolName, ToolInformationURI)
	if e.toolVersion != "" {
		version := e.toolVersion
		run.Tool.Driver.Version = &version
	}

	for i, record := range records {
		rule, err := ruleFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, rule)
	}

	sarifReport.AddRun(run)
	e.logger.Debug("SARIF report built", "rules", len(run.Tool.Driver.Rules))
	return sarifReport, nil
}

// BuildFindingsReport creates a SARIF report with one result per diagnostic.
// The driver lists the catalog rules followed by any code the catalog does not know.
// Results are grouped by rule, most frequent rule first.
func (e *Exporter) BuildFindingsReport(records []*rules.Record, diagnostics []report.ExtendedDiagnostic) (*sarif.Report, error) {
	sarifReport, err := e.BuildReport(records)
	if err != nil {
		return nil, err
	}
	run := sarifReport.Runs[0]

	known := make(map[string]struct{}, len(run.Tool.Driver.Rules))
	for _, rule := range run.Tool.Driver.Rules {
		known[rule.ID] = struct{}{}
	}

	unknown := 0
	for _, group := range report.GroupAndSort(diagnostics, report.KeyCode) {
		if _, ok := known[group.Value]; !ok {
			// the result rule index is resolved against the driver rules
			run.AddRule(group.Value)
			unknown++
		}
		for _, d := range group.Diagnostics {
			run.AddResult(resultFromDiagnostic(d))
			run.AddDistinctArtifact(d.ShortFilename)
		}
	}

	if unknown > 0 {
		e.logger.Warn("diagnostics reference rules missing from the catalog", "count", unknown)
	}
	e.logger.Debug("SARIF findings report built", "results", len(run.Results), "rules", len(run.Tool.Driver.Rules))
	return sarifReport, nil
}

func resultFromDiagnostic(d report.ExtendedDiagnostic) *sarif.Result {
	region := sarif.NewRegion().
		WithStartLine(d.Location.Row).
		WithStartColumn(d.Location.Column).
		WithEndLine(d.EndLocation.Row).
		WithEndColumn(d.EndLocation.Column)
	location := sarif.NewLocationWithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(d.ShortFilename)).
			WithRegion(region),
	)

	result := sarif.NewRuleResult(d.Code).
		WithLevel(ResultLevel).
		WithMessage(sarif.NewTextMessage(d.Message)).
		WithLocations([]*sarif.Location{location})

	result.PropertyBag = *sarif.NewPropertyBag()
	result.Add(string(report.KeyCodeClass), d.CodeClass)
	result.Add(string(report.KeyFixable), d.Fixable)
	result.Add(string(report.KeyPackageName), d.PackageName)
	result.Add(string(report.KeyModuleName), d.ModuleName)
	if d.Fix != nil && d.Fix.Applicability != "" {
		result.Add("fix_applicability", d.Fix.Applicability)
	}
	return result
}

// ruleFromRecord maps a transformed record to a reporting descriptor.
func ruleFromRecord(record *rules.Record) (*sarif.ReportingDescriptor, error) {
	code, ok := record.GetString(rules.KeyCode)
	if !ok || code == "" {
		return nil, fmt.Errorf("%q is missing or not a string", rules.KeyCode)
	}

	rule := &sarif.ReportingDescriptor{ID: code}

	if name, ok := record.GetString(rules.KeyName); ok && name != "" {
		helpURI := RuleDocsBaseURI + name
		rule.Name = &name
		rule.HelpURI = &helpURI
	}

	if explanation, ok := record.GetString(rules.KeyExplanation); ok && explanation != "" {
		text := explanation
		markdown := explanation
		rule.FullDescription = &sarif.MultiformatMessageString{
			Text:     &text,
			Markdown: &markdown,
		}
	}

	rule.PropertyBag = *sarif.NewPropertyBag()
	if raw, ok := record.Get(rules.KeyFix); ok {
		fix, err := rules.ParseFixCode(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a fix code: %s", rules.KeyFix, string(raw))
		}
		rule.Add(rules.KeyFix, int(fix))
		rule.Add("fix_availability", fix.String())
	}
	if raw, ok := record.Get(rules.KeyPreview); ok && rules.Truthy(raw) {
		rule.Add(rules.KeyPreview, true)
	}

	return rule, nil
}

// WriteReport writes report to w as indented JSON followed by a newline.
func WriteReport(w io.Writer, sarifReport *sarif.Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sarifReport); err != nil {
		return fmt.Errorf("failed to encode SARIF report: %w", err)
	}
	return nil
}
