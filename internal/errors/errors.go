// Package errors defines the errors kettle-changelog commands return to the
// user: a category, a one-line message, and the steps that fix it.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies a CLIError. It also selects the exit code.
type ErrorCategory int

const (
	// Argument errors come from invalid flags or arguments.
	Argument ErrorCategory = iota
	// Configuration errors come from config files or environment variables.
	Configuration
	// Prerequisite errors mean a required file, section or repository is missing.
	Prerequisite
	// Runtime errors happen while a command is doing its work.
	Runtime
)

var categoryNames = map[ErrorCategory]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Runtime:       "Runtime Error",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is an error meant to be shown to the user as is.
type CLIError struct {
	Category ErrorCategory
	Message  string
	// Remediation lists the steps that resolve the error, in order.
	Remediation []string
	// Usage is the correct invocation, shown for argument errors.
	Usage string
	Cause error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New returns a CLIError of the given category.
func New(category ErrorCategory, message string, remediation ...string) *CLIError {
	return &CLIError{Category: category, Message: message, Remediation: remediation}
}

func NewArgumentError(message string, remediation ...string) *CLIError {
	return New(Argument, message, remediation...)
}

func NewConfigError(message string, remediation ...string) *CLIError {
	return New(Configuration, message, remediation...)
}

func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return New(Prerequisite, message, remediation...)
}

func NewRuntimeError(message string, remediation ...string) *CLIError {
	return New(Runtime, message, remediation...)
}

// Wrap turns err into a CLIError with err's message. It returns nil for a
// nil err.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	e := New(category, err.Error(), remediation...)
	e.Cause = err
	return e
}

// WrapWithMessage is Wrap with message prefixed to err's text.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	e := New(category, fmt.Sprintf("%s: %v", message, err), remediation...)
	e.Cause = err
	return e
}

// WithUsage sets the usage line and returns e.
func (e *CLIError) WithUsage(usage string) *CLIError {
	e.Usage = usage
	return e
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}

// IsCLIError reports whether err's chain holds a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}
