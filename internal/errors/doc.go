// Package errors provides error handling conventions for the bonitahooks CLI.
//
// It re-exports the constructors and inspection helpers of
// github.com/cockroachdb/errors so that callers import a single package,
// defines sentinel errors for common failure conditions, and provides an
// ExitError type that carries a process exit code.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific conditions using [Is]:
//
//	if errors.Is(err, errors.ErrUnknownRuleSet) {
//	    // handle unknown rule set
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): command completed successfully
//   - ExitUser (1): user-related error (invalid input, configuration, findings in --strict mode)
//   - ExitSystem (2): system-related error (I/O, permissions)
//
// The hook command never produces a non-zero exit code; hooks are advisory.
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := errors.NewUserError(errors.ErrInvalidConfig, "Run: bonitahooks doctor")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
