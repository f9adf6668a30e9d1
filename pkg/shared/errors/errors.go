package errors

import (
	"github.com/scan-io-git/ruffrules/pkg/shared"
)

// Exit codes returned by the commands.
const (
	ExitCodeInvalidArgs = 1
	ExitCodeFailed      = 2
)

// CommandError represents an error that occurred during command execution, storing relevant results.
type CommandError struct {
	ExitCode    int
	CommonError string
	Result      shared.GenericLaunchesResult
	Err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError instance, encapsulating args, result, and the error message.
func NewCommandError(args interface{}, result interface{}, err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Result: shared.GenericLaunchesResult{
			Launches: []shared.GenericResult{
				{
					Args:    args,
					Result:  result,
					Status:  shared.StatusFailed,
					Message: err.Error(),
				},
			},
		},
		Err: err,
	}
}
