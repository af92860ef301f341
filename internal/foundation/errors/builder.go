package errors

// ErrorBuilder assembles a ClassifiedError. Category defaults set the
// initial severity and retry strategy.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of the given category.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	d := defaultsFor(category)
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: d.severity,
		retry:    d.retry,
		message:  message,
		context:  ErrorContext{},
	}}
}

// WrapError starts an error of the given category caused by err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) WithRetry(strategy RetryStrategy) *ErrorBuilder {
	b.err.retry = strategy
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context[key] = value
	return b
}

// Fatal marks the error as stopping the run.
func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	b.err.severity = SeverityFatal
	return b
}

// UserAction marks the error as needing a fix before a retry can succeed.
func (b *ErrorBuilder) UserAction() *ErrorBuilder {
	return b.WithRetry(RetryUserAction)
}

// Build returns the error. The builder must not be reused.
func (b *ErrorBuilder) Build() *ClassifiedError {
	err := b.err
	return &err
}

// ConfigError is raised before any work is dispatched: invalid worker
// counts, duplicate or dangling URNs, conflicting flags.
func ConfigError(message string) *ErrorBuilder { return NewError(CategoryConfig, message) }

func ValidationError(message string) *ErrorBuilder { return NewError(CategoryValidation, message) }
func NotFoundError(message string) *ErrorBuilder   { return NewError(CategoryNotFound, message) }
func NetworkError(message string) *ErrorBuilder    { return NewError(CategoryNetwork, message) }
func GitError(message string) *ErrorBuilder        { return NewError(CategoryGit, message) }

// ExternalToolError reports a failed or missing subprocess (java, inkscape).
func ExternalToolError(message string) *ErrorBuilder { return NewError(CategoryExternalTool, message) }

// PanicError reports a work unit that panicked.
func PanicError(message string) *ErrorBuilder { return NewError(CategoryPanic, message) }

// PhaseError aborts a generation at a phase boundary.
func PhaseError(message string) *ErrorBuilder { return NewError(CategoryPhase, message) }

func TemplateError(message string) *ErrorBuilder   { return NewError(CategoryTemplate, message) }
func FileSystemError(message string) *ErrorBuilder { return NewError(CategoryFileSystem, message) }
func InternalError(message string) *ErrorBuilder   { return NewError(CategoryInternal, message) }
