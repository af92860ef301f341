package errors

// ErrorCategory classifies a failure for exit codes and log routing.
type ErrorCategory string

const (
	CategoryConfig       ErrorCategory = "config"
	CategoryValidation   ErrorCategory = "validation"
	CategoryNotFound     ErrorCategory = "not_found"
	CategoryNetwork      ErrorCategory = "network"
	CategoryGit          ErrorCategory = "git"
	CategoryExternalTool ErrorCategory = "external_tool"
	CategoryUnit         ErrorCategory = "unit"
	CategoryPanic        ErrorCategory = "panic"
	CategoryPhase        ErrorCategory = "phase"
	CategoryTemplate     ErrorCategory = "template"
	CategoryFileSystem   ErrorCategory = "filesystem"
	CategoryInternal     ErrorCategory = "internal"
)

// ErrorSeverity tells whether a failure stops the run.
type ErrorSeverity string

const (
	SeverityFatal ErrorSeverity = "fatal"
	SeverityError ErrorSeverity = "error"
)

// RetryStrategy tells whether repeating the operation can help.
type RetryStrategy string

const (
	RetryNever      RetryStrategy = "never"
	RetryBackoff    RetryStrategy = "backoff"
	RetryUserAction RetryStrategy = "user"
)

// ErrorContext holds structured details logged with an error.
type ErrorContext map[string]any

type categoryDefaults struct {
	severity ErrorSeverity
	retry    RetryStrategy
	exitCode int
}

// Exit codes: 2 usage, 3 missing input, 7 configuration, 8 external system,
// 10 internal bug, 11 generation failure.
var categories = map[ErrorCategory]categoryDefaults{
	CategoryConfig:       {SeverityFatal, RetryUserAction, 7},
	CategoryValidation:   {SeverityFatal, RetryUserAction, 2},
	CategoryNotFound:     {SeverityError, RetryUserAction, 3},
	CategoryNetwork:      {SeverityError, RetryBackoff, 8},
	CategoryGit:          {SeverityError, RetryBackoff, 8},
	CategoryExternalTool: {SeverityError, RetryNever, 8},
	CategoryUnit:         {SeverityError, RetryNever, 11},
	CategoryPanic:        {SeverityError, RetryNever, 11},
	CategoryPhase:        {SeverityFatal, RetryNever, 11},
	CategoryTemplate:     {SeverityError, RetryNever, 11},
	CategoryFileSystem:   {SeverityError, RetryNever, 11},
	CategoryInternal:     {SeverityFatal, RetryNever, 10},
}

func defaultsFor(c ErrorCategory) categoryDefaults {
	if d, ok := categories[c]; ok {
		return d
	}
	return categoryDefaults{SeverityError, RetryNever, 1}
}

// ExitCode is the process exit code for a failure of this category.
func (c ErrorCategory) ExitCode() int {
	return defaultsFor(c).exitCode
}
