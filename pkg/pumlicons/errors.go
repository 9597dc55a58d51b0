package pumlicons

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := engine.RewriteDocument(lines)
//	if errors.Is(err, pumlicons.ErrUnsupportedVersion) {
//	    // report and continue with the next document
//	}
var (
	// ErrInvalidConfig indicates the curated configuration is missing a required key
	// or has the wrong shape.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRule indicates a release rule is malformed (bad regex, wrong number
	// of capture groups, missing directory).
	ErrInvalidRule = errors.New("invalid icon rule")

	// ErrPatternMismatch indicates a capture pattern did not match a source path.
	ErrPatternMismatch = errors.New("pattern did not match")

	// ErrUnsupportedVersion indicates a document declares a library version the
	// upgrader has no change history for.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrToolFailed indicates an external tool (rasterizer, sprite encoder) failed.
	ErrToolFailed = errors.New("external tool failed")

	// ErrEnvironment indicates the build environment check failed.
	ErrEnvironment = errors.New("environment check failed")
)

// ConfigShapeError reports a required key that is missing or malformed in the
// curated configuration.
type ConfigShapeError struct {
	Key  string
	Hint string
}

func (e *ConfigShapeError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("config: %s: %s", e.Key, e.Hint)
	}
	return fmt.Sprintf("config: %s is required", e.Key)
}

func (e *ConfigShapeError) Unwrap() error { return ErrInvalidConfig }

// RuleError reports a release rule that cannot be compiled.
type RuleError struct {
	Rule    string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s: %s", e.Rule, e.Message)
}

func (e *RuleError) Unwrap() error { return ErrInvalidRule }

// PatternMismatchError reports the pattern and the path that failed to match.
// Field is "category" or "identifier".
type PatternMismatchError struct {
	Field   string
	Pattern string
	Path    string
}

func (e *PatternMismatchError) Error() string {
	return fmt.Sprintf("cannot extract %s from %q using pattern %q", e.Field, e.Path, e.Pattern)
}

func (e *PatternMismatchError) Unwrap() error { return ErrPatternMismatch }

// UnsupportedVersionError reports the declared version and what is supported.
type UnsupportedVersionError struct {
	Version   string
	Supported []string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("version %s is not supported (supported: %s)", e.Version, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedVersionError) Unwrap() error { return ErrUnsupportedVersion }

// ToolError reports a failed external tool invocation.
type ToolError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ToolError) Unwrap() []error { return []error{ErrToolFailed, e.Err} }

// usageErrorPatterns are fragments of the messages cobra and pflag produce for
// command-line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidRule):
		return ExitConfigError
	case errors.Is(err, ErrPatternMismatch):
		return ExitPatternMismatch
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrToolFailed):
		return ExitToolFailed
	case errors.Is(err, ErrEnvironment):
		return ExitEnvironmentError
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
