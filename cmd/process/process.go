package process

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/ruffrules/internal/rules"
	"github.com/scan-io-git/ruffrules/pkg/shared/errors"
	"github.com/scan-io-git/ruffrules/pkg/shared/files"
)

// RunOptionsProcess holds the arguments of the process command.
type RunOptionsProcess struct {
	InputPath  string `json:"input_path,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
}

// Global variables for the logger and command arguments
var (
	logger         hclog.Logger
	processOptions RunOptionsProcess

	exampleProcessUsage = `  # Transform the rule catalog of the installed ruff
  ruff rule --all --output-format json | ruffrules > rules.json

  # Same, reading and writing files
  ruffrules process --input ruff-rules.json --output src/gen/rules.json`
)

// ProcessCmd represents the command that strips and normalizes rule records.
var ProcessCmd = &cobra.Command{
	Use:                   "process [--input/-i PATH] [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleProcessUsage,
	Short:                 "Strip and normalize ruff rule descriptors",
	Long: `Read a JSON array of ruff rule descriptors, remove the message_formats, summary and linter fields,
drop a false preview flag, replace the fix description with 1 (sometimes) or 2 (always)
and drop rules without an available fix. The result is written as indented JSON.`,
	RunE: RunProcessCommand,
}

// Init sets the logger of the command.
func Init(l hclog.Logger) {
	logger = l
}

// RegisterFlags binds the process options to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&processOptions.InputPath, "input", "i", "", "Path to the JSON file with rule descriptors. Reads stdin when empty or '-'.")
	flags.StringVarP(&processOptions.OutputPath, "output", "o", "", "Path to the output file. Writes to stdout when empty or '-'.")
}

// RunProcessCommand executes the transform with the options bound by RegisterFlags.
func RunProcessCommand(cmd *cobra.Command, args []string) error {
	if err := validateProcessArgs(&processOptions, args); err != nil {
		logger.Error("invalid process arguments", "error", err)
		return errors.NewCommandError(processOptions, nil, fmt.Errorf("invalid process arguments: %w", err), errors.ExitCodeInvalidArgs)
	}

	input, err := files.OpenInput(processOptions.InputPath, cmd.InOrStdin())
	if err != nil {
		logger.Error("failed to open input", "error", err)
		return errors.NewCommandError(processOptions, nil, fmt.Errorf("failed to open input: %w", err), errors.ExitCodeInvalidArgs)
	}
	defer input.Close()

	var out bytes.Buffer
	summary, err := rules.NewTransformer(logger).Process(input, &out)
	if err != nil {
		logger.Error("process command failed", "error", err)
		return errors.NewCommandError(processOptions, summary, fmt.Errorf("process command failed: %w", err), errors.ExitCodeFailed)
	}

	if err := files.WriteOutput(processOptions.OutputPath, cmd.OutOrStdout(), out.Bytes()); err != nil {
		logger.Error("failed to write result", "error", err)
		return errors.NewCommandError(processOptions, summary, fmt.Errorf("failed to write result: %w", err), errors.ExitCodeFailed)
	}

	logger.Info("process command completed successfully", "total", summary.Total, "kept", summary.Kept, "dropped", summary.Dropped)
	if !files.IsStdStream(processOptions.OutputPath) {
		logger.Info("results saved to file", "path", processOptions.OutputPath)
	}
	return nil
}

func init() {
	RegisterFlags(ProcessCmd.Flags())
	ProcessCmd.Flags().BoolP("help", "h", false, "Show help for the process command.")
}
