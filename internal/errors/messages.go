package errors

import "fmt"

// Common error messages for the relnote CLI.
// These templates keep argument and filesystem failures consistent.

// MissingVersion creates an error for a release run without a version argument.
func MissingVersion() *CLIError {
	return NewArgumentErrorWithUsage(
		"release version is required",
		"relnote <version>",
		"Pass the version being released as the only argument",
		"Example: relnote v1.2.0",
	)
}

// TooManyArguments creates an error for extra positional arguments.
func TooManyArguments(command string, got int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("accepts 1 argument, received %d", got),
		command+" <version>",
		"Quote versions that contain spaces",
	)
}

// UnknownCategory creates an error for a fragment category outside the table.
func UnknownCategory(category string, known []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown category %q", category),
		fmt.Sprintf("Use one of: %v", known),
		"Or add the category to the 'categories' list in .relnote/config.yml",
	)
}

// InvalidConfig wraps a configuration loading or validation failure.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check .relnote/config.yml for syntax errors",
		"Run 'relnote check' after fixing to verify the category table",
	)
}

// FragmentProblems creates an error summarizing a failed fragment check.
func FragmentProblems(malformed, unknown int) *CLIError {
	var remediation []string
	if malformed > 0 {
		remediation = append(remediation, "Rename malformed fragments to <name>.<category>.md")
	}
	if unknown > 0 {
		remediation = append(remediation, "Move unknown-category fragments to a configured category")
	}
	return NewFragmentError(
		fmt.Sprintf("fragment check failed: %d malformed, %d unknown category", malformed, unknown),
		remediation...,
	)
}

// ReleaseFailed wraps a filesystem failure during a release run.
func ReleaseFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"release generation failed",
		"Check file permissions for CHANGELOG.md and the fragment directory",
		"Inspect CHANGELOG.md before retrying; fragments are removed only after it is written",
	)
}
