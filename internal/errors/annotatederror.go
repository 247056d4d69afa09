// Package errors extends the standard library errors with slog annotations
// and source locations so that failures deep in the call stack still log
// with enough context to debug them.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// annotatedError carries a message, optional slog attributes and the
// source location of the Wrap call.
type annotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// Wrap annotates err with a message and optional slog attributes. The call
// site is recorded so that SlogError can point at the code that wrapped the
// error instead of this package.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		err:    err,
		attrs:  attrs,
		source: callerSource(2),
	}
}

// NewSentinel creates an error intended for package-level sentinel values.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// New mirrors errors.New.
func New(msg string) error {
	return errors.New(msg)
}

// Unwrap mirrors errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Is mirrors errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As mirrors errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join mirrors errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// SlogError renders err as a structured attribute. Annotations gathered
// from the whole error chain end up under error.annotations and the source
// points at the innermost Wrap call.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	var (
		annotations []any
		source      string
	)
	collectAnnotations(err, &annotations, &source)

	attrs := []any{slog.String("message", err.Error())}
	attrs = append(attrs, slog.Attr{Key: "annotations", Value: slog.GroupValue(toAttrs(annotations)...)})
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Group("error", attrs...)
}

func collectAnnotations(err error, annotations *[]any, source *string) {
	for err != nil {
		if annotated, ok := err.(*annotatedError); ok {
			for _, attr := range annotated.attrs {
				*annotations = append(*annotations, attr)
			}
			// The innermost Wrap is closest to the failure.
			*source = annotated.source
			err = annotated.err
			continue
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				collectAnnotations(inner, annotations, source)
			}
			return
		}
		err = errors.Unwrap(err)
	}
}

func toAttrs(annotations []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(annotations))
	for _, annotation := range annotations {
		if attr, ok := annotation.(slog.Attr); ok {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}

// DecoratePanic converts a recovered panic value into an error whose source
// points at the panic site rather than the recovering deferred function.
func DecoratePanic(recovered any) error {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var (
		source   string
		fallback string
	)
	sawPanic := false
	for {
		frame, more := frames.Next()
		if sawPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			source = formatSource(frame.File, frame.Line)
			break
		}
		if frame.Function == "runtime.gopanic" {
			sawPanic = true
		}
		if fallback == "" && !strings.HasPrefix(frame.Function, "runtime.") &&
			!strings.Contains(frame.File, "annotatederror.go") {
			fallback = formatSource(frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	if source == "" {
		source = fallback
	}

	return &annotatedError{
		msg:    fmt.Sprintf("panic: %v", recovered),
		source: source,
	}
}

func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return formatSource(file, line)
}

func formatSource(file string, line int) string {
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
