package process

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	cmdutil "github.com/scan-io-git/ruffrules/internal/cmd"
)

// validateProcessArgs validates the command options and positional arguments.
func validateProcessArgs(options *RunOptionsProcess, args []string) error {
	if err := cmdutil.ValidateNoArgs(args); err != nil {
		return err
	}

	return validation.ValidateStruct(options,
		validation.Field(&options.InputPath, cmdutil.InputPathRule),
		validation.Field(&options.OutputPath, cmdutil.OutputPathRule),
	)
}
