// Package packaging builds RPM and Debian packages that create a local
// security check user and install its public key.
//
// The package contents are defined entirely by an external creator script;
// this package stages the key, runs the script, and reports whether it
// succeeded.
package packaging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/logger"
	"github.com/lscpkg/lscpkg/internal/runner"
	"github.com/lscpkg/lscpkg/internal/workspace"
)

// Format identifies a package format.
type Format string

const (
	RPM Format = "rpm"
	DEB Format = "deb"
)

// DefaultScript returns the creator script file name for f.
func (f Format) DefaultScript() string {
	return fmt.Sprintf("lsc-%s-creator.sh", f)
}

// FileName returns the destination file name used inside a package workspace.
func (f Format) FileName() string {
	return "p." + string(f)
}

// NeedsMaintainer reports whether the creator script takes a maintainer argument.
func (f Format) NeedsMaintainer() bool {
	return f == DEB
}

// Request is the input to one package build.
type Request struct {
	Username string
	// PublicKey is the authorized_keys material to install.
	PublicKey []byte
	// Maintainer is the package maintainer identity, DEB only.
	Maintainer string
}

// Validate checks the request for format f.
func (r Request) Validate(f Format) error {
	if err := r.validateIdentity(f); err != nil {
		return err
	}
	if len(r.PublicKey) == 0 {
		return errors.New(errors.ErrPrecondition,
			"Public key must be set",
			"Pass the contents of the account's .pub file")
	}
	return nil
}

// validateIdentity checks the fields Build passes to the script.
func (r Request) validateIdentity(f Format) error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New(errors.ErrPrecondition,
			"User name must be set",
			"Pass the account name the package should create")
	}
	if strings.ContainsRune(r.Username, os.PathSeparator) {
		return errors.New(errors.ErrPrecondition,
			fmt.Sprintf("User name %q contains a path separator", r.Username),
			"Use a plain account name")
	}
	if f.NeedsMaintainer() && strings.TrimSpace(r.Maintainer) == "" {
		return errors.New(errors.ErrPrecondition,
			"Maintainer must be set for Debian packages",
			"Pass --maintainer or set packaging.maintainer")
	}
	return nil
}

// Builder runs the creator script for one package format.
type Builder struct {
	Format Format
	// Script is the creator script path or name.
	Script     string
	Runner     runner.Runner
	Workspaces *workspace.Manager
	Logger     logger.Logger
}

// NewBuilder creates a builder for format f using script.
func NewBuilder(f Format, script string, r runner.Runner, ws *workspace.Manager, log logger.Logger) *Builder {
	if log == nil {
		log = logger.Noop()
	}
	return &Builder{Format: f, Script: script, Runner: r, Workspaces: ws, Logger: log}
}

// Build creates the package at destination from the public key file at
// publicKeyPath.
//
// The key is copied into a private staging workspace as <username>.pub so
// the script can find it by convention. The script is run with the staging
// workspace as its working directory and output root:
//
//	script <username> <staged key> <workspace> <destination> [maintainer]
//
// Any non-success exit is a build failure, even if the script left a file
// at destination. The staging workspace is always removed; failing to
// remove it turns an otherwise successful build into a WORKSPACE error.
// Reading destination is the caller's job.
func (b *Builder) Build(req Request, publicKeyPath, destination string) (err error) {
	if err := req.validateIdentity(b.Format); err != nil {
		return err
	}

	b.Logger.Debug("creating staging workspace for %s build", b.Format)
	ws, err := b.Workspaces.Create(fmt.Sprintf("lsc_user_%s_create_", b.Format))
	if err != nil {
		return err
	}
	defer func() {
		cleanupErr := b.Workspaces.Destroy(ws)
		if cleanupErr == nil {
			return
		}
		if err == nil {
			err = cleanupErr
			return
		}
		b.Logger.Warn("failed to remove staging workspace %s: %v", ws.Path(), cleanupErr)
	}()

	staged := ws.Join(req.Username + ".pub")
	b.Logger.Debug("copying key %s to %s", publicKeyPath, staged)
	if err := copyFile(publicKeyPath, staged); err != nil {
		return errors.WrapWithCode(err, errors.ErrWorkspace,
			fmt.Sprintf("Failed to stage public key %s", publicKeyPath),
			"Check that the key file is readable")
	}

	args := []string{req.Username, staged, ws.Path(), destination}
	if b.Format.NeedsMaintainer() {
		args = append(args, req.Maintainer)
	}

	b.Logger.Debug("attempting %s build", strings.ToUpper(string(b.Format)))
	inv := b.Runner.Run(runner.Spec{
		Executable: b.Script,
		Args:       args,
		Dir:        ws.Path(),
	})
	return inv.AsError(fmt.Sprintf("Failed to create the %s package", b.Format))
}

// copyFile copies src to dst, creating dst with mode 0644.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ScriptPath resolves a creator script: absolute paths and names containing
// a separator are used as given, bare names are looked up in dataDir.
func ScriptPath(dataDir, script string) string {
	if script == "" || filepath.IsAbs(script) || strings.ContainsRune(script, os.PathSeparator) || dataDir == "" {
		return script
	}
	return filepath.Join(dataDir, script)
}
