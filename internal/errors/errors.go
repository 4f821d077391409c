// Package errors defines the failure kinds of lscpkg and how they are shown.
//
// Every failure that leaves lscpkg is an *Error carrying one of the codes
// below. Callers branch on the code, never on message text.
package errors

import (
	"errors"
	"strings"
)

// Failure kinds.
const (
	// ErrPrecondition marks bad input rejected before any external call.
	ErrPrecondition = "PRECONDITION"
	// ErrWorkspace marks a scratch directory that couldn't be created or removed.
	ErrWorkspace = "WORKSPACE"
	// ErrTool marks a spawn failure, abnormal termination, or non-zero exit.
	ErrTool = "EXTERNAL_TOOL"
	// ErrRead marks an expected output file that was missing or unreadable.
	ErrRead = "ARTIFACT_READ"
	// ErrConfig marks invalid or unreadable configuration.
	ErrConfig = "CONFIG"
	// ErrInput marks CLI input problems (files, prompts, terminals).
	ErrInput = "INPUT"
)

// exitCodes maps failure kinds to process exit statuses. 1 is the fallback
// and 2 is shared with cobra usage errors.
var exitCodes = map[string]int{
	ErrPrecondition: 2,
	ErrInput:        2,
	ErrConfig:       3,
	ErrTool:         4,
	ErrWorkspace:    5,
	ErrRead:         5,
}

// Error is a classified failure. It renders as
//
//	✗ <Message>
//
//	  <Cause>
//
//	  <Suggestion>
//
// with empty parts left out.
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates an error with no underlying cause.
func New(code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// WrapWithCode classifies err under code.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("✗ ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Cause != nil {
		writeIndented(&b, e.Cause.Error())
	}
	if e.Suggestion != "" {
		writeIndented(&b, e.Suggestion)
	}
	return b.String()
}

// writeIndented writes a blank line then text with every line indented two
// spaces, so nested causes stay under their heading.
func writeIndented(b *strings.Builder, text string) {
	b.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if line != "" {
			b.WriteString("  ")
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode reports whether err is classified as code. Only the outermost
// *Error in the chain counts, so a wrapped cause with another code doesn't
// change how the failure is classified.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the outermost *Error in err's chain, or "".
func CodeOf(err error) string {
	var e *Error
	if err != nil && errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ExitCode returns the process exit status for err: 0 for nil, 1 for an
// unclassified error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCodes[CodeOf(err)]; ok {
		return code
	}
	return 1
}
