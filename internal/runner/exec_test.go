package runner

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sh(script string, extra ...string) Spec {
	return Spec{Executable: "/bin/sh", Args: append([]string{"-c", script, "sh"}, extra...)}
}

func TestExecRunner_Success(t *testing.T) {
	r := NewExecRunner(nil, 0)

	inv := r.Run(sh("echo hello"))

	require.NotNil(t, inv)
	assert.True(t, inv.Success())
	assert.Equal(t, Exited, inv.Outcome)
	assert.Equal(t, 0, inv.ExitCode)
	assert.Equal(t, "hello\n", string(inv.Stdout))
	assert.Empty(t, inv.Stderr)
	assert.NoError(t, inv.AsError("should not fail"))
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	r := NewExecRunner(nil, 0)

	inv := r.Run(sh("echo broken >&2; exit 42"))

	assert.False(t, inv.Success())
	assert.Equal(t, Exited, inv.Outcome)
	assert.Equal(t, 42, inv.ExitCode)
	assert.Equal(t, "broken\n", string(inv.Stderr))

	err := inv.AsError("Tool failed")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTool))
	assert.Contains(t, err.Error(), "exited with code 42")
	assert.Contains(t, err.Error(), "broken")
}

func TestExecRunner_Signaled(t *testing.T) {
	r := NewExecRunner(nil, 0)

	inv := r.Run(sh("kill -9 $$"))

	assert.False(t, inv.Success())
	assert.Equal(t, Signaled, inv.Outcome)
	assert.Contains(t, inv.Describe(), "terminated abnormally")
	assert.True(t, errors.IsCode(inv.AsError("Tool died"), errors.ErrTool))
}

func TestExecRunner_SpawnFailed(t *testing.T) {
	r := NewExecRunner(nil, 0)

	inv := r.Run(Spec{Executable: "this_command_does_not_exist_xyz123"})

	assert.False(t, inv.Success())
	assert.Equal(t, SpawnFailed, inv.Outcome)
	require.Error(t, inv.Err)

	err := inv.AsError("Tool missing")
	assert.True(t, errors.IsCode(err, errors.ErrTool))
	assert.Contains(t, err.Error(), "this_command_does_not_exist_xyz123")
	assert.Contains(t, err.Error(), "installed")
}

func TestExecRunner_SpawnFailed_NotExecutable(t *testing.T) {
	dir := t.TempDir()
	r := NewExecRunner(nil, 0)

	inv := r.Run(Spec{Executable: filepath.Join(dir, "missing.sh")})

	assert.Equal(t, SpawnFailed, inv.Outcome)
}

func TestExecRunner_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	r := NewExecRunner(nil, 0)

	spec := sh("pwd")
	spec.Dir = dir
	inv := r.Run(spec)

	require.True(t, inv.Success())
	assert.Contains(t, strings.TrimSpace(string(inv.Stdout)), filepath.Base(dir))
}

func TestExecRunner_ArgumentsAreNotInterpreted(t *testing.T) {
	r := NewExecRunner(nil, 0)
	hostile := `$(echo pwned); "quoted" 'single' ` + "`tick`"

	inv := r.Run(sh(`printf '%s' "$1"`, hostile))

	require.True(t, inv.Success())
	assert.Equal(t, hostile, string(inv.Stdout))
}

func TestExecRunner_OutputLimit(t *testing.T) {
	r := NewExecRunner(nil, 16)

	inv := r.Run(sh("i=0; while [ $i -lt 100 ]; do printf x; i=$((i+1)); done"))

	require.True(t, inv.Success())
	assert.Len(t, inv.Stdout, 16)
}

func TestExecRunner_RedactsSecretsInLogs(t *testing.T) {
	logger.SetDebug(true)
	defer logger.SetDebug(false)

	log := logger.NewBufferLogger()
	r := NewExecRunner(log, 0)

	spec := sh(`echo "$1" >&2; exit 3`, "hunter22")
	spec.Secrets = []string{"hunter22"}
	inv := r.Run(spec)
	require.False(t, inv.Success())

	msgs := log.Snapshot()
	require.NotEmpty(t, msgs)
	for _, m := range msgs {
		assert.NotContains(t, m.Message, "hunter22")
	}
	assert.NotContains(t, inv.AsError("failed").Error(), "hunter22")
	assert.Contains(t, msgs[0].Message, Redacted)
}

func TestCappedBuffer(t *testing.T) {
	b := newCappedBuffer(4)

	n, err := b.Write([]byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = b.Write([]byte("cdef"))
	require.NoError(t, err)
	assert.Equal(t, 4, n, "writes report full length even when truncated")

	assert.Equal(t, "abcd", string(b.Bytes()))
	assert.True(t, b.Truncated())
}
