package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/kettle-rb/kettle-changelog/internal/errors"
)

// Exit codes for the kettle-changelog CLI.
// These codes support scripting and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates the changelog failed a check or a release
	// could not be cut from it
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates a required file, repository or
	// configuration is missing or unusable
	ExitMissingDependencies = 4
)

// ExitError carries an exit code for a failure whose details were already
// printed by the command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
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
		case clierrors.Configuration, clierrors.Prerequisite:
			return ExitMissingDependencies
		}
	}
	return ExitValidationFailed
}
