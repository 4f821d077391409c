// Package runner invokes external generator programs and classifies how
// they ended.
//
// Every call is synchronous: Run returns only after the child process has
// terminated. Programs are executed directly from an argument vector, never
// through a shell, so arguments reach the program exactly as given.
//
// Captured output is kept for diagnostics only. Nothing in this package, or
// in its callers, makes decisions based on what a tool printed; the exit
// status alone decides success.
package runner

import (
	"fmt"
	"strings"

	"github.com/lscpkg/lscpkg/internal/errors"
)

// Outcome classifies how an external program ended.
type Outcome int

const (
	// Exited means the process terminated normally with an exit code.
	Exited Outcome = iota
	// Signaled means the process was killed by a signal or ended abnormally.
	Signaled
	// SpawnFailed means the process could not be started at all.
	SpawnFailed
)

func (o Outcome) String() string {
	switch o {
	case Exited:
		return "exited"
	case Signaled:
		return "signaled"
	case SpawnFailed:
		return "spawn failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Redacted replaces secret values in logged command lines and output.
const Redacted = "********"

// Spec describes one external program call.
type Spec struct {
	// Executable is a path or a bare name resolved through PATH.
	Executable string
	// Args are passed to the program verbatim.
	Args []string
	// Dir is the working directory; empty means the caller's.
	Dir string
	// Secrets lists argument values that must never appear in logs.
	Secrets []string
}

// Invocation is a finished external program call.
type Invocation struct {
	Spec     Spec
	Stdout   []byte
	Stderr   []byte
	Outcome  Outcome
	ExitCode int    // only meaningful when Outcome is Exited
	Status   string // human-readable termination status, e.g. "signal: killed"
	Err      error  // spawn or wait error, if any
}

// Success reports whether the program terminated normally with exit code 0.
func (inv *Invocation) Success() bool {
	return inv != nil && inv.Outcome == Exited && inv.ExitCode == 0
}

// Describe summarizes how the invocation ended, e.g. "exited with code 2".
func (inv *Invocation) Describe() string {
	switch inv.Outcome {
	case Exited:
		return fmt.Sprintf("exited with code %d", inv.ExitCode)
	case Signaled:
		if inv.Status != "" {
			return "terminated abnormally (" + inv.Status + ")"
		}
		return "terminated abnormally"
	default:
		if inv.Err != nil {
			return "could not be started: " + Redact(inv.Err.Error(), inv.Spec.Secrets)
		}
		return "could not be started"
	}
}

// AsError converts a failed invocation into an EXTERNAL_TOOL error.
// Returns nil for a successful invocation.
func (inv *Invocation) AsError(message string) error {
	if inv.Success() {
		return nil
	}

	cause := inv.Describe()
	if tail := lastLine(Redact(string(inv.Stderr), inv.Spec.Secrets)); tail != "" {
		cause += ": " + tail
	}

	suggestion := "Run with --verbose to see the tool's full output."
	switch name, missing := MissingCommand(inv); {
	case inv.Outcome == SpawnFailed:
		suggestion = fmt.Sprintf("Make sure '%s' is installed and executable.", inv.Spec.Executable)
	case missing && name != "":
		suggestion = fmt.Sprintf("'%s' needs '%s', which isn't installed or isn't in PATH.", inv.Spec.Executable, name)
	case missing:
		suggestion = fmt.Sprintf("'%s' called a command that isn't installed.", inv.Spec.Executable)
	}

	return errors.WrapWithCode(fmt.Errorf("%s %s", inv.Spec.Executable, cause), errors.ErrTool, message, suggestion)
}

// Runner executes external programs.
// Satisfied by ExecRunner and test doubles.
type Runner interface {
	Run(spec Spec) *Invocation
}

// lastLine returns the last non-empty line of s, truncated for display.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	line := strings.TrimSpace(lines[len(lines)-1])
	const max = 200
	if len(line) > max {
		line = line[:max] + "..."
	}
	return line
}
