// Package installer builds Windows installers that create a local
// security check user, by rendering an NSIS script and compiling it with
// makensis.
package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/logger"
	"github.com/lscpkg/lscpkg/internal/runner"
)

const (
	// DefaultCompiler is the NSIS compiler executable.
	DefaultCompiler = "makensis"
	// ScriptName is the file name of the rendered script, placed next to
	// the destination.
	ScriptName = "p.nsis"
	// FileName is the installer file name used inside a workspace.
	FileName = "p.exe"
)

// Builder renders installer scripts and compiles them.
type Builder struct {
	// Compiler is the makensis executable. DefaultCompiler when empty.
	Compiler string
	Runner   runner.Runner
	Logger   logger.Logger
}

// NewBuilder creates a builder using compiler.
func NewBuilder(compiler string, r runner.Runner, log logger.Logger) *Builder {
	if log == nil {
		log = logger.Noop()
	}
	return &Builder{Compiler: compiler, Runner: r, Logger: log}
}

// Create writes the installer script beside destination and compiles it
// with the script's directory as working directory. On success the
// installer is expected at destination; reading it is the caller's job.
func (b *Builder) Create(username, password, destination string) error {
	if username == "" {
		return errors.New(errors.ErrPrecondition,
			"User name must be set",
			"Pass the account name the installer should create")
	}
	if password == "" {
		return errors.New(errors.ErrPrecondition,
			"Password must be set",
			"Pass the password for the account")
	}

	dir := filepath.Dir(destination)
	scriptPath := filepath.Join(dir, ScriptName)

	if err := writeScript(scriptPath, Script{OutFile: destination, Username: username, Password: password}); err != nil {
		b.Logger.Warn("failed to create NSIS script %s", scriptPath)
		return err
	}

	compiler := b.Compiler
	if compiler == "" {
		compiler = DefaultCompiler
	}

	b.Logger.Debug("executing %s", compiler)
	inv := b.Runner.Run(runner.Spec{
		Executable: compiler,
		Args:       []string{scriptPath},
		Dir:        dir,
		Secrets:    []string{password},
	})
	if err := inv.AsError("Failed to compile the installer"); err != nil {
		b.Logger.Warn("failed to execute %s", compiler)
		return err
	}
	return nil
}

// writeScript renders s into a new file at path, readable only by the owner
// since it contains the password.
func writeScript(path string, s Script) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrWorkspace,
			fmt.Sprintf("Couldn't open %s for writing", path),
			"Check that the destination directory exists and is writable")
	}
	if err := Render(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrWorkspace,
			fmt.Sprintf("Couldn't finish writing %s", path),
			"Check free space in scratch_root")
	}
	return nil
}
