package workspace

import (
	goerrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, e := range list {
		names = append(names, e.Name())
	}
	return names
}

func TestCreate(t *testing.T) {
	root := t.TempDir()
	mgr := NewManager(root, nil)

	ws, err := mgr.Create("key_")
	require.NoError(t, err)

	assert.Equal(t, root, filepath.Dir(ws.Path()))
	assert.True(t, strings.HasPrefix(filepath.Base(ws.Path()), "key_"))
	assert.Equal(t, filepath.Join(ws.Path(), "key.pub"), ws.Join("key.pub"))

	info, err := os.Stat(ws.Path())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, DirMode, info.Mode().Perm())
}

func TestCreate_UniqueNames(t *testing.T) {
	mgr := NewManager(t.TempDir(), nil)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ws, err := mgr.Create("rpm_")
		require.NoError(t, err)
		assert.False(t, seen[ws.Path()], "workspace path reused: %s", ws.Path())
		seen[ws.Path()] = true
	}
}

func TestCreate_Concurrent(t *testing.T) {
	root := t.TempDir()
	mgr := NewManager(root, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws, err := mgr.Create("deb_")
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, os.WriteFile(ws.Join("p.deb"), []byte("x"), 0644))
			mgr.Release(ws)
		}()
	}
	wg.Wait()

	assert.Empty(t, entries(t, root))
}

func TestCreate_MissingRoot(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "does-not-exist"), nil)

	ws, err := mgr.Create("key_")

	assert.Nil(t, ws)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrWorkspace))
}

func TestCreate_RejectsSeparatorInPrefix(t *testing.T) {
	mgr := NewManager(t.TempDir(), nil)

	_, err := mgr.Create("../escape_")

	assert.True(t, errors.IsCode(err, errors.ErrWorkspace))
}

func TestNewManager_DefaultsToTempDir(t *testing.T) {
	mgr := NewManager("", nil)

	assert.Equal(t, os.TempDir(), mgr.Root)
}

func TestDestroy_RemovesContents(t *testing.T) {
	root := t.TempDir()
	mgr := NewManager(root, nil)

	ws, err := mgr.Create("exe_")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(ws.Join("nested", "deeper"), 0755))
	require.NoError(t, os.WriteFile(ws.Join("nested", "deeper", "p.exe"), []byte("MZ"), 0644))

	require.NoError(t, mgr.Destroy(ws))

	_, err = os.Stat(ws.Path())
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, entries(t, root))
}

func TestDestroy_OnlyOnce(t *testing.T) {
	calls := 0
	mgr := NewManager(t.TempDir(), nil)
	mgr.RemoveFunc = func(path string) error {
		calls++
		return os.RemoveAll(path)
	}

	ws, err := mgr.Create("key_")
	require.NoError(t, err)

	require.NoError(t, ws.Destroy())
	require.NoError(t, ws.Destroy())
	mgr.Release(ws)

	assert.Equal(t, 1, calls)
}

func TestDestroy_Failure(t *testing.T) {
	mgr := NewManager(t.TempDir(), nil)
	mgr.RemoveFunc = func(string) error { return goerrors.New("device busy") }

	ws, err := mgr.Create("key_")
	require.NoError(t, err)

	err = mgr.Destroy(ws)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrWorkspace))
	assert.Contains(t, err.Error(), "device busy")
}

func TestRelease_LogsFailure(t *testing.T) {
	log := logger.NewBufferLogger()
	mgr := NewManager(t.TempDir(), log)
	mgr.RemoveFunc = func(string) error { return goerrors.New("device busy") }

	ws, err := mgr.Create("key_")
	require.NoError(t, err)

	mgr.Release(ws)

	assert.True(t, log.HasLevel("warn"))
}

func TestRelease_Nil(t *testing.T) {
	mgr := NewManager(t.TempDir(), nil)

	assert.NotPanics(t, func() { mgr.Release(nil) })
	assert.NoError(t, mgr.Destroy(nil))
}
