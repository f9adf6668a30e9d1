package report

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	cmdutil "github.com/scan-io-git/ruffrules/internal/cmd"
	"github.com/scan-io-git/ruffrules/pkg/shared/files"
)

// rulesPathRule accepts an empty value or a readable file. The catalog cannot come from stdin.
var rulesPathRule = validation.By(func(value interface{}) error {
	path, _ := value.(string)
	if path == files.StdStream {
		return fmt.Errorf("the rule catalog must be a file")
	}
	if path == "" {
		return nil
	}
	return cmdutil.InputPathRule.Validate(path)
})

// validateReportArgs validates the command options and positional arguments.
func validateReportArgs(options *RunOptionsReport, args []string) error {
	if err := cmdutil.ValidateNoArgs(args); err != nil {
		return err
	}

	return validation.ValidateStruct(options,
		validation.Field(&options.InputPath, cmdutil.InputPathRule),
		validation.Field(&options.RulesPath, rulesPathRule),
		validation.Field(&options.OutputPath, cmdutil.OutputPathRule),
		validation.Field(&options.Format, validation.Required, validation.In(FormatJSON, FormatText, FormatSarif)),
		validation.Field(&options.Limit, validation.Min(0)),
	)
}
