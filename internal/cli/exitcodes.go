package cli

import "errors"

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, startup failures, or any error that doesn't
	// fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Project, status or user ids and names that don't exist.
	ExitNotFound = 3

	// ExitDataErr indicates the request conflicts with stored data.
	// Use for: Duplicate names, or deleting a project or status that tasks
	// still reference without --force.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty or too long names, or any input that fails validation rules.
	ExitValidation = 5
)

// ExitErr is a command failure tagged with the process exit code.
type ExitErr struct {
	Code int
	Err  error
	// reported is set when the error was already written for the user.
	reported bool
}

func (e *ExitErr) Error() string { return e.Err.Error() }

func (e *ExitErr) Unwrap() error { return e.Err }

// WithExitCode tags err with code. A nil err stays nil.
func WithExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitErr{Code: code, Err: err}
}

// Reported reports whether err was already written by an OutputFormatter.
func Reported(err error) bool {
	var exitErr *ExitErr
	return errors.As(err, &exitErr) && exitErr.reported
}

// ExitCode returns the exit code for the error a command returned.
// Untagged errors map to ExitError.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitErr
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}
