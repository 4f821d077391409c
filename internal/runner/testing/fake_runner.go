// Package testing provides test doubles for the runner package.
package testing

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/lscpkg/lscpkg/internal/runner"
)

// Behavior decides what a fake invocation does and how it ends.
type Behavior func(spec runner.Spec) *runner.Invocation

// FakeRunner records every call and answers with a scripted behavior.
// It runs nothing, so tests can assert on arguments and call counts.
type FakeRunner struct {
	mu       sync.Mutex
	behavior Behavior

	// Calls records each spec passed to Run, in order.
	Calls []runner.Spec
}

// NewFakeRunner creates a fake runner. A nil behavior succeeds without side effects.
func NewFakeRunner(behavior Behavior) *FakeRunner {
	if behavior == nil {
		behavior = Exit(0)
	}
	return &FakeRunner{behavior: behavior}
}

// Run records the call and applies the configured behavior.
func (f *FakeRunner) Run(spec runner.Spec) *runner.Invocation {
	f.mu.Lock()
	f.Calls = append(f.Calls, spec)
	behavior := f.behavior
	f.mu.Unlock()

	inv := behavior(spec)
	if inv == nil {
		inv = exited(spec, 0)
	}
	return inv
}

// SetBehavior replaces the behavior for subsequent calls.
func (f *FakeRunner) SetBehavior(behavior Behavior) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.behavior = behavior
	return f
}

// CallCount returns how many times Run was called.
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// LastCall returns the most recent spec, or false if Run was never called.
func (f *FakeRunner) LastCall() (runner.Spec, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return runner.Spec{}, false
	}
	return f.Calls[len(f.Calls)-1], true
}

// Reset clears recorded calls.
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = nil
}

func exited(spec runner.Spec, code int) *runner.Invocation {
	return &runner.Invocation{Spec: spec, Outcome: runner.Exited, ExitCode: code}
}

// Exit ends every call with the given exit code.
func Exit(code int) Behavior {
	return func(spec runner.Spec) *runner.Invocation {
		inv := exited(spec, code)
		if code != 0 {
			inv.Stderr = []byte("fake tool failed")
		}
		return inv
	}
}

// Signal ends every call as if the tool was killed.
func Signal() Behavior {
	return func(spec runner.Spec) *runner.Invocation {
		return &runner.Invocation{Spec: spec, Outcome: runner.Signaled, ExitCode: -1, Status: "signal: killed"}
	}
}

// SpawnFail ends every call as if the executable could not be started.
func SpawnFail(err error) Behavior {
	return func(spec runner.Spec) *runner.Invocation {
		return &runner.Invocation{Spec: spec, Outcome: runner.SpawnFailed, ExitCode: -1, Err: err}
	}
}

// WriteArg writes data to the path found at spec.Args[index] and exits 0.
// A negative index counts from the end.
func WriteArg(index int, data []byte) Behavior {
	return func(spec runner.Spec) *runner.Invocation {
		i := index
		if i < 0 {
			i = len(spec.Args) + i
		}
		if i < 0 || i >= len(spec.Args) {
			return exited(spec, 2)
		}
		if err := os.WriteFile(spec.Args[i], data, 0644); err != nil {
			return exited(spec, 1)
		}
		return exited(spec, 0)
	}
}

// WriteAfterFlag writes data to the path following flag (e.g. "-f") and to
// any siblings named by suffix, then exits 0.
func WriteAfterFlag(flag string, data []byte, siblings map[string][]byte) Behavior {
	return func(spec runner.Spec) *runner.Invocation {
		for i := 0; i < len(spec.Args)-1; i++ {
			if spec.Args[i] != flag {
				continue
			}
			path := spec.Args[i+1]
			if err := os.WriteFile(path, data, 0600); err != nil {
				return exited(spec, 1)
			}
			for suffix, content := range siblings {
				if err := os.WriteFile(path+suffix, content, 0644); err != nil {
					return exited(spec, 1)
				}
			}
			return exited(spec, 0)
		}
		return exited(spec, 2)
	}
}

// WriteInDir writes data to name inside spec.Dir and exits 0.
func WriteInDir(name string, data []byte) Behavior {
	return func(spec runner.Spec) *runner.Invocation {
		if err := os.WriteFile(filepath.Join(spec.Dir, name), data, 0644); err != nil {
			return exited(spec, 1)
		}
		return exited(spec, 0)
	}
}

// Hook runs fn before delegating to next. Useful for inspecting the
// workspace while the tool is "running".
func Hook(fn func(spec runner.Spec), next Behavior) Behavior {
	return func(spec runner.Spec) *runner.Invocation {
		fn(spec)
		return next(spec)
	}
}
