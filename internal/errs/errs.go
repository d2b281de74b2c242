// Package errs defines the error taxonomy from the design's error
// handling section: ConfigError, TraceError, and InvariantViolation.
// ConfigError and TraceError keep a github.com/pkg/errors cause,
// reachable through Unwrap, that records a stack trace rooted at the
// construction site; a %+v format of that cause prints it. The error
// types themselves format through Error() only, and InvariantViolation
// carries no stack trace.
package errs

import (
	"strconv"

	"github.com/pkg/errors"
)

// ConfigError reports an invalid cache geometry, an unknown
// enumeration tag, or any other configuration problem caught at
// construction/loading time.
type ConfigError struct {
	Path   string
	Detail string
	cause  error
}

func NewConfigError(path, detail string) *ConfigError {
	return &ConfigError{Path: path, Detail: detail, cause: errors.New(detail)}
}

func WrapConfigError(path string, cause error) *ConfigError {
	return &ConfigError{Path: path, Detail: cause.Error(), cause: errors.WithStack(cause)}
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "config error: " + e.Detail
	}
	return "config error in " + e.Path + ": " + e.Detail
}

func (e *ConfigError) Unwrap() error { return e.cause }

// TraceError reports an unparseable trace line, a bad hex address, an
// unknown access kind, or a missing trace file. Raised when a trace
// file is opened and parsed.
type TraceError struct {
	File   string
	Line   int
	Detail string
	cause  error
}

func NewTraceError(file string, line int, detail string) *TraceError {
	return &TraceError{File: file, Line: line, Detail: detail, cause: errors.New(detail)}
}

func WrapTraceError(file string, line int, cause error) *TraceError {
	return &TraceError{File: file, Line: line, Detail: cause.Error(), cause: errors.WithStack(cause)}
}

func (e *TraceError) Error() string {
	if e.Line > 0 {
		return fmtTrace(e.File, e.Line, e.Detail)
	}
	return "trace error in " + e.File + ": " + e.Detail
}

func (e *TraceError) Unwrap() error { return e.cause }

func fmtTrace(file string, line int, detail string) string {
	return "trace error in " + file + " at line " + strconv.Itoa(line) + ": " + detail
}

// InvariantViolation is raised when the core engine detects its own
// bookkeeping is inconsistent, e.g. an allocation did not yield a
// present entry. It is never expected on a correct run; the caller may
// choose to panic on it in a debug build.
type InvariantViolation struct {
	Detail string
}

func NewInvariantViolation(detail string) *InvariantViolation {
	return &InvariantViolation{Detail: detail}
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Detail
}
