// Package errors provides error wrapping with slog annotations and source
// locations on top of the standard library errors package.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// AnnotatedError carries a message, an optional wrapped error, structured
// [slog.Attr] annotations, and the source location of the call that created it.
type AnnotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

// Wrap annotates err with a message and optional slog attributes. The source
// location recorded is the caller of Wrap.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &AnnotatedError{
		msg:    msg,
		err:    err,
		attrs:  attrs,
		source: callerSource(),
	}
}

// NewSentinel creates a sentinel error intended for package-level declarations
// and errors.Is comparisons.
func NewSentinel(msg string) error {
	return &AnnotatedError{
		msg:    msg,
		err:    nil,
		attrs:  nil,
		source: callerSource(),
	}
}

// Error implements the error interface.
func (e *AnnotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	underlying := e.err.Error()
	if underlying == "" {
		return e.msg
	}
	return e.msg + ": " + underlying
}

// Unwrap exposes the wrapped error for errors.Is and errors.As.
func (e *AnnotatedError) Unwrap() error {
	return e.err
}

// SlogError converts err into a [slog.Attr] suitable for structured logging.
// The attribute groups the message, the annotations collected from the whole
// error chain, and the source location of the outermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	var (
		attrs  []slog.Attr
		source string
	)
	collectAnnotations(err, &attrs, &source)

	group := []any{slog.String("message", err.Error())}
	if source != "" {
		group = append(group, slog.String("source", source))
	}
	if len(attrs) > 0 {
		annotations := make([]any, len(attrs))
		for i, attr := range attrs {
			annotations[i] = attr
		}
		group = append(group, slog.Group("annotations", annotations...))
	}
	return slog.Group("error", group...)
}

// collectAnnotations walks the error chain, including joined errors, gathering
// annotations and the first (outermost) source location.
func collectAnnotations(err error, attrs *[]slog.Attr, source *string) {
	if err == nil {
		return
	}

	if ae, ok := err.(*AnnotatedError); ok {
		if *source == "" {
			*source = ae.source
		}
		*attrs = append(*attrs, ae.attrs...)
	}

	switch unwrapped := err.(type) {
	case interface{ Unwrap() error }:
		collectAnnotations(unwrapped.Unwrap(), attrs, source)
	case interface{ Unwrap() []error }:
		for _, joined := range unwrapped.Unwrap() {
			collectAnnotations(joined, attrs, source)
		}
	}
}

// callerSource reports the file:line of the caller two frames up, i.e. the
// code that called Wrap or NewSentinel.
func callerSource() string {
	const skip = 2 // runtime.Caller, callerSource, Wrap/NewSentinel.
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// Re-exports so that callers do not need to import both this package and the
// standard library errors package.

// New returns an error with the given text. See [errors.New].
func New(text string) error { return errors.New(text) }

// Is reports whether any error in err's chain matches target. See [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain matching target. See [errors.As].
func As(err error, target any) bool { return errors.As(err, target) }

// Join wraps the given errors into a single error. See [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }

// Unwrap returns the result of calling Unwrap on err. See [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }
