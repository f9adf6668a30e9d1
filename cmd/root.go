package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/ruffrules/cmd/process"
	"github.com/scan-io-git/ruffrules/cmd/report"
	tosarif "github.com/scan-io-git/ruffrules/cmd/to-sarif"
	"github.com/scan-io-git/ruffrules/cmd/validate"
	"github.com/scan-io-git/ruffrules/cmd/version"
	"github.com/scan-io-git/ruffrules/internal/config"
	"github.com/scan-io-git/ruffrules/internal/logger"
	"github.com/scan-io-git/ruffrules/pkg/shared"
	sharederrors "github.com/scan-io-git/ruffrules/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	Logger    hclog.Logger
	rootCmd   = &cobra.Command{
		Use:                   "ruffrules [--input/-i PATH] [--output/-o PATH] [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Ruffrules prepares the ruff rule catalog for the report viewer.",
		Long: `Ruffrules reads the output of 'ruff rule --all --output-format json' from stdin,
strips the fields the report viewer does not use, encodes fix availability as 1 (sometimes) or 2 (always),
drops rules without an available fix and prints the result as indented JSON.

The report command aggregates 'ruff check --output-format json' diagnostics against that catalog.`,
		Example:           "  ruff rule --all --output-format json | ruffrules > src/gen/rules.json",
		PersistentPreRunE: initConfig,
		RunE:              process.RunProcessCommand,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml when present)")
	process.RegisterFlags(rootCmd.Flags())
	rootCmd.AddCommand(process.ProcessCmd)
	rootCmd.AddCommand(validate.ValidateCmd)
	rootCmd.AddCommand(tosarif.ToSarifCmd)
	rootCmd.AddCommand(report.ReportCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command with the process arguments and returns the exit code.
func Execute() int {
	return execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error executing command: %v\n", err)
		var cmdErr *sharederrors.CommandError
		if errors.As(err, &cmdErr) {
			if len(cmdErr.Result.Launches) > 0 {
				if printErr := shared.PrintResultAsJSON(stderr, cmdErr.Result); printErr != nil {
					fmt.Fprintf(stderr, "Error printing command result: %v\n", printErr)
				}
			}
			return cmdErr.ExitCode
		}
		return sharederrors.ExitCodeInvalidArgs
	}
	return 0
}

func initConfig(cmd *cobra.Command, args []string) error {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("initializing config file function is crashed - %w", err)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return err
	}

	Logger = logger.NewLogger(AppConfig, "core").With("run_id", uuid.New().String())

	process.Init(Logger)
	validate.Init(Logger)
	tosarif.Init(Logger)
	report.Init(AppConfig, Logger)
	return nil
}
