package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.rpm")
	require.NoError(t, os.WriteFile(path, []byte("RPMDATA"), 0644))

	a, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []byte("RPMDATA"), a.Data)
	assert.Equal(t, 7, a.Size)
}

func TestLoad_Binary(t *testing.T) {
	payload := []byte{0x00, 0xed, 0xab, 0xee, 0xdb, 0x00, 0xff}
	path := filepath.Join(t.TempDir(), "p.rpm")
	require.NoError(t, os.WriteFile(path, payload, 0644))

	a, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, payload, a.Data)
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0644))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing")},
		{"directory", dir},
		{"empty file", empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Load(tt.path)

			assert.Nil(t, a)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrRead))
		})
	}
}
