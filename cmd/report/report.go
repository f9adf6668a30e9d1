package report

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/ruffrules/internal/config"
	internalreport "github.com/scan-io-git/ruffrules/internal/report"
	"github.com/scan-io-git/ruffrules/internal/rules"
	internalsarif "github.com/scan-io-git/ruffrules/internal/sarif"
	"github.com/scan-io-git/ruffrules/pkg/shared"
	"github.com/scan-io-git/ruffrules/pkg/shared/errors"
	"github.com/scan-io-git/ruffrules/pkg/shared/files"
)

// Output formats of the report command.
const (
	FormatJSON  = "json"
	FormatText  = "text"
	FormatSarif = "sarif"
)

// RunOptionsReport holds the arguments of the report command.
type RunOptionsReport struct {
	InputPath   string `json:"input_path,omitempty"`
	RulesPath   string `json:"rules_path,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
	Format      string `json:"format,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	RuffVersion string `json:"ruff_version,omitempty"`
}

var (
	AppConfig     *config.Config
	logger        hclog.Logger
	reportOptions RunOptionsReport

	exampleReportUsage = `  # Aggregate diagnostics and attach the rules they reference
  ruff check --output-format json . | ruffrules report -i - --rules src/gen/rules.json

  # Print the most frequent codes, modules and packages
  ruffrules report -i diagnostics.json --rules rules.json --format text --limit 10

  # Convert diagnostics to SARIF with the catalog as the rule set
  ruffrules report -i diagnostics.json --rules rules.json --format sarif -o ruff.sarif`
)

// ReportCmd aggregates 'ruff check' diagnostics against the transformed rule catalog.
var ReportCmd = &cobra.Command{
	Use:                   "report --input/-i PATH [--rules/-r PATH] [--output/-o PATH] [--format json|text|sarif] [--limit N]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleReportUsage,
	Short:                 "Aggregate ruff diagnostics by code, code class, fixability, package and module",
	Long: `Read the output of 'ruff check --output-format json', derive the code class, short file name,
fixability, module and package of every diagnostic and count the diagnostics per value.
With --rules the rules referenced by the diagnostics are attached from a catalog produced by 'ruffrules process'.`,
	RunE: runReportCommand,
}

// Init initializes the global configuration variable and the logger of the command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runReportCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}
	applyConfigDefaults(cmd.Flags(), &reportOptions, AppConfig)

	if err := validateReportArgs(&reportOptions, args); err != nil {
		logger.Error("invalid report arguments", "error", err)
		return errors.NewCommandError(reportOptions, nil, fmt.Errorf("invalid report arguments: %w", err), errors.ExitCodeInvalidArgs)
	}

	catalog, err := loadCatalog(reportOptions.RulesPath)
	if err != nil {
		logger.Error("failed to load rule catalog", "path", reportOptions.RulesPath, "error", err)
		return errors.NewCommandError(reportOptions, nil, fmt.Errorf("failed to load rule catalog: %w", err), errors.ExitCodeFailed)
	}
	var ruleMap internalreport.RuleMap
	if catalog != nil {
		ruleMap, err = internalreport.NewRuleMap(catalog)
		if err != nil {
			logger.Error("invalid rule catalog", "path", reportOptions.RulesPath, "error", err)
			return errors.NewCommandError(reportOptions, nil, fmt.Errorf("invalid rule catalog: %w", err), errors.ExitCodeFailed)
		}
	}

	input, err := files.OpenInput(reportOptions.InputPath, cmd.InOrStdin())
	if err != nil {
		logger.Error("failed to open input", "error", err)
		return errors.NewCommandError(reportOptions, nil, fmt.Errorf("failed to open input: %w", err), errors.ExitCodeInvalidArgs)
	}
	defer input.Close()

	diagnostics, err := internalreport.DecodeDiagnostics(input)
	if err != nil {
		logger.Error("report command failed", "error", err)
		return errors.NewCommandError(reportOptions, nil, fmt.Errorf("report command failed: %w", err), errors.ExitCodeFailed)
	}

	processed := internalreport.NewProcessor(logger, ruleMap).Process(diagnostics)

	var out bytes.Buffer
	if err := render(&out, processed, catalog); err != nil {
		logger.Error("failed to render report", "format", reportOptions.Format, "error", err)
		return errors.NewCommandError(reportOptions, nil, fmt.Errorf("failed to render report: %w", err), errors.ExitCodeFailed)
	}

	if err := files.WriteOutput(reportOptions.OutputPath, cmd.OutOrStdout(), out.Bytes()); err != nil {
		logger.Error("failed to write result", "error", err)
		return errors.NewCommandError(reportOptions, nil, fmt.Errorf("failed to write result: %w", err), errors.ExitCodeFailed)
	}

	logger.Info("report command completed successfully", "messages", len(processed.Messages), "codes", len(processed.Values[internalreport.KeyCode]))
	if !files.IsStdStream(reportOptions.OutputPath) {
		logger.Info("results saved to file", "path", reportOptions.OutputPath)
	}
	return nil
}

// applyConfigDefaults fills options from the report section of the config for flags left unset.
func applyConfigDefaults(flags *pflag.FlagSet, options *RunOptionsReport, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if !flags.Changed("format") {
		options.Format = config.SetThen(cfg.Report.Format, options.Format)
	}
	if !flags.Changed("limit") {
		options.Limit = config.SetThen(cfg.Report.Limit, options.Limit)
	}
	if !flags.Changed("ruff-version") {
		options.RuffVersion = config.SetThen(cfg.Report.RuffVersion, options.RuffVersion)
	}
}

// loadCatalog reads a transformed rule catalog. An empty path yields no catalog.
func loadCatalog(path string) ([]*rules.Record, error) {
	if path == "" {
		return nil, nil
	}
	file, err := files.OpenInput(path, nil)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return rules.Decode(file)
}

func render(out *bytes.Buffer, processed internalreport.Processed, catalog []*rules.Record) error {
	switch reportOptions.Format {
	case FormatText:
		return internalreport.WriteSummary(out, processed, reportOptions.Limit)
	case FormatSarif:
		sarifReport, err := internalsarif.NewExporter(logger, reportOptions.RuffVersion).BuildFindingsReport(catalog, processed.Messages)
		if err != nil {
			return err
		}
		return internalsarif.WriteReport(out, sarifReport)
	default:
		return shared.PrintResultAsJSON(out, processed)
	}
}

func init() {
	ReportCmd.Flags().StringVarP(&reportOptions.InputPath, "input", "i", "", "Path to the 'ruff check --output-format json' output. Use '-' for stdin.")
	ReportCmd.Flags().StringVarP(&reportOptions.RulesPath, "rules", "r", "", "Path to the rule catalog written by 'ruffrules process'.")
	ReportCmd.Flags().StringVarP(&reportOptions.OutputPath, "output", "o", "", "Path to the output file. Writes to stdout when empty or '-'.")
	ReportCmd.Flags().StringVar(&reportOptions.Format, "format", FormatJSON, "Output format: json, text or sarif.")
	ReportCmd.Flags().IntVar(&reportOptions.Limit, "limit", 0, "Number of values printed per key in text format. Zero prints all.")
	ReportCmd.Flags().StringVar(&reportOptions.RuffVersion, "ruff-version", "", "Version of ruff recorded in SARIF output.")
	ReportCmd.Flags().BoolP("help", "h", false, "Show help for the report command.")
}
