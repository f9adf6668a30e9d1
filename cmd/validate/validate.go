package validate

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	cmdutil "github.com/scan-io-git/ruffrules/internal/cmd"
	"github.com/scan-io-git/ruffrules/internal/rules"
	"github.com/scan-io-git/ruffrules/pkg/shared"
	"github.com/scan-io-git/ruffrules/pkg/shared/errors"
	"github.com/scan-io-git/ruffrules/pkg/shared/files"
)

// RunOptionsValidate holds the arguments of the validate command.
type RunOptionsValidate struct {
	InputPath string `json:"input_path,omitempty"`
	JSON      bool   `json:"json,omitempty"`
}

var (
	logger          hclog.Logger
	validateOptions RunOptionsValidate

	exampleValidateUsage = `  # Check that a freshly generated catalog can be transformed
  ruff rule --all --output-format json | ruffrules validate

  # Print the transform statistics as JSON
  ruffrules validate --input ruff-rules.json --json`
)

// ValidateCmd runs the transform without producing the transformed catalog.
var ValidateCmd = &cobra.Command{
	Use:                   "validate [--input/-i PATH] [--json]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleValidateUsage,
	Short:                 "Check that rule descriptors can be transformed",
	RunE:                  runValidateCommand,
}

// Init sets the logger of the command.
func Init(l hclog.Logger) {
	logger = l
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	if err := validateValidateArgs(&validateOptions, args); err != nil {
		logger.Error("invalid validate arguments", "error", err)
		return errors.NewCommandError(validateOptions, nil, fmt.Errorf("invalid validate arguments: %w", err), errors.ExitCodeInvalidArgs)
	}

	input, err := files.OpenInput(validateOptions.InputPath, cmd.InOrStdin())
	if err != nil {
		logger.Error("failed to open input", "error", err)
		return errors.NewCommandError(validateOptions, nil, fmt.Errorf("failed to open input: %w", err), errors.ExitCodeInvalidArgs)
	}
	defer input.Close()

	_, summary, err := rules.NewTransformer(logger).Load(input)
	if err != nil {
		logger.Error("validate command failed", "error", err)
		cmdErr := errors.NewCommandError(validateOptions, summary, fmt.Errorf("validate command failed: %w", err), errors.ExitCodeFailed)
		if validateOptions.JSON {
			if printErr := shared.PrintResultAsJSON(cmd.OutOrStdout(), cmdErr.Result); printErr != nil {
				logger.Error("error serializing JSON result", "error", printErr)
			}
		}
		return cmdErr
	}

	logger.Info("rule descriptors are valid", "total", summary.Total, "kept", summary.Kept, "dropped", summary.Dropped, "preview", summary.PreviewKept)
	if validateOptions.JSON {
		result := shared.GenericLaunchesResult{
			Launches: []shared.GenericResult{{
				Args:   validateOptions,
				Result: summary,
				Status: shared.StatusOK,
			}},
		}
		if err := shared.PrintResultAsJSON(cmd.OutOrStdout(), result); err != nil {
			logger.Error("error serializing JSON result", "error", err)
			return errors.NewCommandError(validateOptions, summary, err, errors.ExitCodeFailed)
		}
	}
	return nil
}

// validateValidateArgs validates the command options and positional arguments.
func validateValidateArgs(options *RunOptionsValidate, args []string) error {
	if err := cmdutil.ValidateNoArgs(args); err != nil {
		return err
	}
	return validation.ValidateStruct(options,
		validation.Field(&options.InputPath, cmdutil.InputPathRule),
	)
}

func init() {
	ValidateCmd.Flags().StringVarP(&validateOptions.InputPath, "input", "i", "", "Path to the JSON file with rule descriptors. Reads stdin when empty or '-'.")
	ValidateCmd.Flags().BoolVar(&validateOptions.JSON, "json", false, "Print the transform statistics as JSON to stdout.")
	ValidateCmd.Flags().BoolP("help", "h", false, "Show help for the validate command.")
}
