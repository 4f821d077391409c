// Package workspace allocates private scratch directories and guarantees
// they are removed.
//
// Every directory is created under an injected scratch root with an
// unguessable name, owned by exactly one operation, and destroyed exactly
// once. The intended usage is scoped acquisition:
//
//	ws, err := mgr.Create("rpm_")
//	if err != nil {
//		return err
//	}
//	defer mgr.Release(ws)
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/logger"
)

// DirMode is the permission mode of every workspace directory:
// writable only by the owner, readable and searchable by others so
// external tools running as helpers can traverse it.
const DirMode os.FileMode = 0755

// Manager creates workspaces under Root.
// A Manager holds no per-workspace state and is safe for concurrent use.
type Manager struct {
	// Root is the scratch root every workspace is created under.
	Root string
	// Logger reports creation and cleanup. Noop when nil.
	Logger logger.Logger
	// RemoveFunc deletes a directory tree. os.RemoveAll when nil.
	RemoveFunc func(path string) error
}

// NewManager creates a manager rooted at root. An empty root falls back to
// os.TempDir().
func NewManager(root string, log logger.Logger) *Manager {
	if root == "" {
		root = os.TempDir()
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Manager{Root: root, Logger: log}
}

func (m *Manager) log() logger.Logger {
	if m.Logger == nil {
		return logger.Noop()
	}
	return m.Logger
}

// Workspace is one exclusively owned scratch directory.
type Workspace struct {
	path   string
	remove func(path string) error

	once       sync.Once
	destroyErr error
}

// Path returns the absolute directory path.
func (w *Workspace) Path() string {
	return w.path
}

// Join returns a path inside the workspace.
func (w *Workspace) Join(elem ...string) string {
	return filepath.Join(append([]string{w.path}, elem...)...)
}

// Destroy removes the directory and everything in it. Only the first call
// does any work; later calls return the first result.
func (w *Workspace) Destroy() error {
	w.once.Do(func() {
		w.destroyErr = w.remove(w.path)
	})
	return w.destroyErr
}

// Create makes a new workspace named <prefix><random> under the scratch root.
func (m *Manager) Create(prefix string) (*Workspace, error) {
	if strings.ContainsRune(prefix, os.PathSeparator) {
		return nil, errors.New(errors.ErrWorkspace,
			fmt.Sprintf("Invalid workspace prefix %q", prefix),
			"Workspace prefixes must not contain path separators")
	}

	root, err := filepath.Abs(m.Root)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrWorkspace,
			"Couldn't resolve the scratch root",
			"Set scratch_root to an absolute path")
	}

	path := filepath.Join(root, prefix+uuid.NewString())
	// Mkdir fails on an existing name, so a collision can never hand out
	// a directory someone else owns.
	if err := os.Mkdir(path, DirMode); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrWorkspace,
			fmt.Sprintf("Couldn't create a workspace under %s", root),
			"Check that scratch_root exists and is writable")
	}
	// Mkdir is subject to the umask.
	if err := os.Chmod(path, DirMode); err != nil {
		_ = os.Remove(path)
		return nil, errors.WrapWithCode(err, errors.ErrWorkspace,
			fmt.Sprintf("Couldn't set permissions on workspace %s", path),
			"Check the filesystem behind scratch_root")
	}

	m.log().Debug("created workspace %s", path)
	remove := m.RemoveFunc
	if remove == nil {
		remove = os.RemoveAll
	}
	return &Workspace{path: path, remove: remove}, nil
}

// Destroy removes ws and reports a WORKSPACE error on failure.
func (m *Manager) Destroy(ws *Workspace) error {
	if ws == nil {
		return nil
	}
	if err := ws.Destroy(); err != nil {
		return errors.WrapWithCode(err, errors.ErrWorkspace,
			fmt.Sprintf("Couldn't remove workspace %s", ws.Path()),
			"Remove the directory manually")
	}
	m.log().Debug("removed workspace %s", ws.Path())
	return nil
}

// Release is the best-effort form of Destroy for deferred cleanup: a
// failure is logged and swallowed so it never masks the primary result.
func (m *Manager) Release(ws *Workspace) {
	if ws == nil {
		return
	}
	if err := ws.Destroy(); err != nil {
		m.log().Warn("failed to remove workspace %s: %v", ws.Path(), err)
		return
	}
	m.log().Debug("removed workspace %s", ws.Path())
}
