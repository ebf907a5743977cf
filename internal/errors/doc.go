// Package errors provides error handling conventions for the shtick CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, exit code constants
// following standard Unix conventions, and thin delegations to
// cockroachdb/errors for construction and wrapping.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [errors.Is]:
//
//	if errors.Is(err, shtickerrors.ErrNotFound) {
//	    // handle not found case
//	}
//
// Domain-specific sentinels (invalid keys, reserved groups, unknown shells)
// live in their owning packages; this package only holds the cross-cutting
// ones.
//
// # Exit Codes
//
// The package defines standard exit codes for CLI applications:
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error or user cancellation
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion
// for CLI applications. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	err := shtickerrors.NewUserError(shtickerrors.ErrInvalidConfig, "Check your config file")
//	var exitErr *shtickerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
