package runner

import (
	"bytes"
	goerrors "errors"
	"os/exec"
	"sync"

	"github.com/lscpkg/lscpkg/internal/logger"
)

// DefaultOutputLimit bounds the captured stdout and stderr of one invocation.
const DefaultOutputLimit = 1 << 20

// ExecRunner runs programs on the local machine with os/exec.
type ExecRunner struct {
	// Logger receives the redacted command line and, on failure, the
	// captured output. Noop when nil.
	Logger logger.Logger
	// OutputLimit caps each captured stream in bytes. DefaultOutputLimit when <= 0.
	OutputLimit int
}

// NewExecRunner creates a runner logging through log.
func NewExecRunner(log logger.Logger, outputLimit int) *ExecRunner {
	return &ExecRunner{Logger: log, OutputLimit: outputLimit}
}

// Run starts the program, waits for it to terminate, and classifies the result.
// It never returns nil.
func (r *ExecRunner) Run(spec Spec) *Invocation {
	log := r.Logger
	if log == nil {
		log = logger.Noop()
	}
	limit := r.OutputLimit
	if limit <= 0 {
		limit = DefaultOutputLimit
	}

	log.Debug("spawning in %s: %s", spec.Dir, spec.CommandLine())

	cmd := exec.Command(spec.Executable, spec.Args...)
	cmd.Dir = spec.Dir

	stdout := newCappedBuffer(limit)
	stderr := newCappedBuffer(limit)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()

	inv := &Invocation{
		Spec:   spec,
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	classify(inv, cmd, runErr)

	if inv.Success() {
		log.Debug("%s finished successfully", spec.Executable)
		return inv
	}

	log.Debug("%s failed: %s", spec.Executable, inv.Describe())
	log.Debug("stdout: %s", Redact(string(inv.Stdout), spec.Secrets))
	log.Debug("stderr: %s", Redact(string(inv.Stderr), spec.Secrets))

	return inv
}

// classify fills in the outcome fields from the result of cmd.Run.
func classify(inv *Invocation, cmd *exec.Cmd, runErr error) {
	if runErr == nil {
		inv.Outcome = Exited
		inv.ExitCode = 0
		inv.Status = cmd.ProcessState.String()
		return
	}

	var exitErr *exec.ExitError
	if goerrors.As(runErr, &exitErr) {
		inv.Err = runErr
		inv.Status = exitErr.ProcessState.String()
		if exitErr.Exited() {
			inv.Outcome = Exited
			inv.ExitCode = exitErr.ExitCode()
			return
		}
		inv.Outcome = Signaled
		inv.ExitCode = -1
		return
	}

	// The process ran to completion but Wait reported an I/O problem.
	if cmd.ProcessState != nil {
		inv.Err = runErr
		inv.Status = cmd.ProcessState.String()
		if cmd.ProcessState.Exited() {
			inv.Outcome = Exited
			inv.ExitCode = cmd.ProcessState.ExitCode()
			return
		}
		inv.Outcome = Signaled
		inv.ExitCode = -1
		return
	}

	inv.Outcome = SpawnFailed
	inv.ExitCode = -1
	inv.Err = runErr
}

// cappedBuffer keeps at most limit bytes and silently drops the rest.
// Writes never fail, so a chatty tool can't turn into a copy error.
type cappedBuffer struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func newCappedBuffer(limit int) *cappedBuffer {
	return &cappedBuffer{limit: limit}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	room := b.limit - b.buf.Len()
	if room <= 0 {
		b.truncated = len(p) > 0 || b.truncated
		return len(p), nil
	}
	if len(p) > room {
		b.buf.Write(p[:room])
		b.truncated = true
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

// Bytes returns a copy of the captured data.
func (b *cappedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

// Truncated reports whether any output was dropped.
func (b *cappedBuffer) Truncated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.truncated
}
