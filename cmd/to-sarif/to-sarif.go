package tosarif

import (
	"bytes"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	cmdutil "github.com/scan-io-git/ruffrules/internal/cmd"
	"github.com/scan-io-git/ruffrules/internal/rules"
	scaniosarif "github.com/scan-io-git/ruffrules/internal/sarif"
	"github.com/scan-io-git/ruffrules/pkg/shared/errors"
	"github.com/scan-io-git/ruffrules/pkg/shared/files"
)

// RunOptionsToSarif holds the arguments of the to-sarif command.
type RunOptionsToSarif struct {
	InputPath   string `json:"input_path,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
	RuffVersion string `json:"ruff_version,omitempty"`
}

var (
	logger         hclog.Logger
	toSarifOptions RunOptionsToSarif

	exampleToSarifUsage = `  # Export the rule catalog as a SARIF tool component
  ruff rule --all --output-format json | ruffrules to-sarif --ruff-version "$(ruff --version | cut -d' ' -f2)" -o ruff-rules.sarif`
)

// ToSarifCmd exports the transformed rule catalog as SARIF reporting descriptors.
var ToSarifCmd = &cobra.Command{
	Use:                   "to-sarif [--input/-i PATH] [--output/-o PATH] [--ruff-version VERSION]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleToSarifUsage,
	Short:                 "Export the transformed rule catalog as SARIF",
	RunE:                  runToSarifCommand,
}

// Init sets the logger of the command.
func Init(l hclog.Logger) {
	logger = l
}

func runToSarifCommand(cmd *cobra.Command, args []string) error {
	if err := validateToSarifArgs(&toSarifOptions, args); err != nil {
		logger.Error("invalid to-sarif arguments", "error", err)
		return errors.NewCommandError(toSarifOptions, nil, fmt.Errorf("invalid to-sarif arguments: %w", err), errors.ExitCodeInvalidArgs)
	}

	input, err := files.OpenInput(toSarifOptions.InputPath, cmd.InOrStdin())
	if err != nil {
		logger.Error("failed to open input", "error", err)
		return errors.NewCommandError(toSarifOptions, nil, fmt.Errorf("failed to open input: %w", err), errors.ExitCodeInvalidArgs)
	}
	defer input.Close()

	records, summary, err := rules.NewTransformer(logger).Load(input)
	if err != nil {
		logger.Error("to-sarif command failed", "error", err)
		return errors.NewCommandError(toSarifOptions, summary, fmt.Errorf("to-sarif command failed: %w", err), errors.ExitCodeFailed)
	}

	report, err := scaniosarif.NewExporter(logger, toSarifOptions.RuffVersion).BuildReport(records)
	if err != nil {
		logger.Error("failed to build SARIF report", "error", err)
		return errors.NewCommandError(toSarifOptions, summary, fmt.Errorf("failed to build SARIF report: %w", err), errors.ExitCodeFailed)
	}

	var out bytes.Buffer
	if err := scaniosarif.WriteReport(&out, report); err != nil {
		return errors.NewCommandError(toSarifOptions, summary, err, errors.ExitCodeFailed)
	}
	if err := files.WriteOutput(toSarifOptions.OutputPath, cmd.OutOrStdout(), out.Bytes()); err != nil {
		logger.Error("failed to write result", "error", err)
		return errors.NewCommandError(toSarifOptions, summary, fmt.Errorf("failed to write result: %w", err), errors.ExitCodeFailed)
	}

	logger.Info("to-sarif command completed successfully", "rules", summary.Kept)
	return nil
}

// validateToSarifArgs validates the command options and positional arguments.
func validateToSarifArgs(options *RunOptionsToSarif, args []string) error {
	if err := cmdutil.ValidateNoArgs(args); err != nil {
		return err
	}
	return validation.ValidateStruct(options,
		validation.Field(&options.InputPath, cmdutil.InputPathRule),
		validation.Field(&options.OutputPath, cmdutil.OutputPathRule),
	)
}

func init() {
	ToSarifCmd.Flags().StringVarP(&toSarifOptions.InputPath, "input", "i", "", "Path to the JSON file with rule descriptors. Reads stdin when empty or '-'.")
	ToSarifCmd.Flags().StringVarP(&toSarifOptions.OutputPath, "output", "o", "", "Path to the SARIF output file. Writes to stdout when empty or '-'.")
	ToSarifCmd.Flags().StringVar(&toSarifOptions.RuffVersion, "ruff-version", "", "Version of ruff that produced the rule descriptors.")
	ToSarifCmd.Flags().BoolP("help", "h", false, "Show help for the to-sarif command.")
}
