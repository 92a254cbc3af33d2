package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/relnote/internal/errors"
)

// Exit codes for the relnote CLI
// These codes support scripting and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure such as an unwritable changelog
	ExitFailure = 1

	// ExitValidationFailed indicates pending fragments failed a check
	ExitValidationFailed = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitInvalidConfig indicates the configuration could not be loaded
	ExitInvalidConfig = 4
)

// ExitError carries an exit code for a failure that has already been
// reported to the user.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an error that makes Execute exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// exitCodeFor maps a command error to a process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitInvalidConfig
		case clierrors.Fragment:
			return ExitValidationFailed
		}
	}
	return ExitFailure
}
