package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, os.TempDir(), cfg.ScratchRoot)
	assert.Equal(t, "/usr/share/lscpkg", cfg.DataDir)
	assert.Equal(t, "ssh-keygen", cfg.Tools.Keygen)
	assert.Equal(t, "lsc-rpm-creator.sh", cfg.Tools.RPMScript)
	assert.Equal(t, "lsc-deb-creator.sh", cfg.Tools.DEBScript)
	assert.Equal(t, "makensis", cfg.Tools.NSIS)
	assert.Equal(t, "Key generated by lscpkg", cfg.Keygen.Comment)
	assert.Equal(t, 1<<20, cfg.Runner.OutputLimit)
	assert.Empty(t, cfg.Packaging.Maintainer)
	assert.False(t, cfg.Packaging.ValidatePublicKey)
	require.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".lscpkg.yaml")

	content := `
version: 1
scratch_root: /var/tmp/lsc
data_dir: /opt/lsc/share
tools:
  nsis: /opt/nsis/bin/makensis
keygen:
  comment: scanner key
runner:
  output_limit: 4096
packaging:
  maintainer: Scanner Team <scan@example.com>
  validate_public_key: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/var/tmp/lsc", cfg.ScratchRoot)
	assert.Equal(t, "/opt/lsc/share", cfg.DataDir)
	assert.Equal(t, "/opt/nsis/bin/makensis", cfg.Tools.NSIS)
	assert.Equal(t, "scanner key", cfg.Keygen.Comment)
	assert.Equal(t, 4096, cfg.Runner.OutputLimit)
	assert.Equal(t, "Scanner Team <scan@example.com>", cfg.Packaging.Maintainer)
	assert.True(t, cfg.Packaging.ValidatePublicKey)

	// Keys the file doesn't mention keep their defaults
	assert.Equal(t, "ssh-keygen", cfg.Tools.Keygen)
	assert.Equal(t, "lsc-rpm-creator.sh", cfg.Tools.RPMScript)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/.lscpkg.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("tools: [unclosed"), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("LSCPKG_TOOLS_NSIS", "/usr/local/bin/makensis")
	t.Setenv("LSCPKG_RUNNER_OUTPUT_LIMIT", "2048")
	t.Setenv("LSCPKG_PACKAGING_VALIDATE_PUBLIC_KEY", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/makensis", cfg.Tools.NSIS)
	assert.Equal(t, 2048, cfg.Runner.OutputLimit)
	assert.True(t, cfg.Packaging.ValidatePublicKey)
	assert.Equal(t, "ssh-keygen", cfg.Tools.Keygen)
}

func TestLoadEnvironmentBeatsFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("keygen:\n  comment: from file\n"), 0644))
	t.Setenv("LSCPKG_KEYGEN_COMMENT", "from env")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "from env", cfg.Keygen.Comment)
}

func TestLoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("scratch_root: ~/scratch\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "scratch"), cfg.ScratchRoot)
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("version: 1"), 0644))

		found, err := Find(configPath)
		require.NoError(t, err)
		assert.Equal(t, configPath, found)
	})

	t.Run("explicit path not found", func(t *testing.T) {
		_, err := Find("/nonexistent/custom.yaml")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("local config", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 1"), 0644))
		t.Chdir(dir)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, ConfigFileName, filepath.Base(found))
	})

	t.Run("global config", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		globalDir := filepath.Join(home, GlobalConfigDir)
		require.NoError(t, os.MkdirAll(globalDir, 0755))
		globalPath := filepath.Join(globalDir, GlobalConfigFile)
		require.NoError(t, os.WriteFile(globalPath, []byte("version: 1"), 0644))
		t.Chdir(t.TempDir())

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, globalPath, found)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Chdir(t.TempDir())

		found, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("returns defaults when no config", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Chdir(t.TempDir())

		cfg, path, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("loads explicit config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("data_dir: /srv/lsc\n"), 0644))

		cfg, path, err := LoadOrDefault(configPath)
		require.NoError(t, err)
		assert.Equal(t, configPath, path)
		assert.Equal(t, "/srv/lsc", cfg.DataDir)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:        "future version",
			mutate:      func(c *Config) { c.Version = CurrentConfigVersion + 1 },
			wantErr:     true,
			errContains: "from the future",
		},
		{
			name:        "relative scratch root",
			mutate:      func(c *Config) { c.ScratchRoot = "scratch" },
			wantErr:     true,
			errContains: "scratch_root",
		},
		{
			name:        "empty scratch root",
			mutate:      func(c *Config) { c.ScratchRoot = "" },
			wantErr:     true,
			errContains: "scratch_root",
		},
		{
			name:        "empty keygen tool",
			mutate:      func(c *Config) { c.Tools.Keygen = " " },
			wantErr:     true,
			errContains: "tools.keygen",
		},
		{
			name:        "empty deb script",
			mutate:      func(c *Config) { c.Tools.DEBScript = "" },
			wantErr:     true,
			errContains: "tools.deb_script",
		},
		{
			name:        "empty comment",
			mutate:      func(c *Config) { c.Keygen.Comment = "" },
			wantErr:     true,
			errContains: "keygen.comment",
		},
		{
			name:        "zero output limit",
			mutate:      func(c *Config) { c.Runner.OutputLimit = 0 },
			wantErr:     true,
			errContains: "output_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.NoError(t, Validate(nil))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := DefaultConfig()
	cfg.Packaging.Maintainer = "Scanner Team <scan@example.com>"
	require.NoError(t, Write(path, cfg, false))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# lscpkg configuration")
	assert.Contains(t, string(data), "rpm_script: lsc-rpm-creator.sh")
}

func TestWriteRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

	err := Write(path, DefaultConfig(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Write(path, DefaultConfig(), true))
}
