package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lscpkg/lscpkg/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFileCheck(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

		result := (&ConfigFileCheck{ConfigPath: path}).Run()
		assert.Equal(t, StatusPass, result.Status)
		assert.Contains(t, result.Message, path)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		result := (&ConfigFileCheck{ConfigPath: "/nonexistent/lscpkg.yaml"}).Run()
		assert.Equal(t, StatusFail, result.Status)
	})

	t.Run("defaults only warn", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Chdir(t.TempDir())

		result := (&ConfigFileCheck{}).Run()
		assert.Equal(t, StatusWarn, result.Status)
		assert.Contains(t, result.Suggestion, "config init")
	})
}

func TestConfigSchemaCheck(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte("keygen:\n  comment: scanner\n"), 0644))
	assert.Equal(t, StatusPass, (&ConfigSchemaCheck{ConfigPath: valid}).Run().Status)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("runner:\n  output_limit: -1\n"), 0644))
	result := (&ConfigSchemaCheck{ConfigPath: invalid}).Run()
	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Suggestion, "output_limit")
}

func TestToolCheck(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "lsc-rpm-creator.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0755))
	plain := filepath.Join(dir, "not-executable.sh")
	require.NoError(t, os.WriteFile(plain, []byte("#!/bin/sh\n"), 0644))

	tests := []struct {
		name    string
		program string
		want    CheckStatus
	}{
		{"executable path", script, StatusPass},
		{"name in PATH", "sh", StatusPass},
		{"missing name", "lscpkg-no-such-tool", StatusFail},
		{"missing path", filepath.Join(dir, "nope.sh"), StatusFail},
		{"not executable", plain, StatusFail},
		{"directory", dir, StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := (&ToolCheck{Key: "tools.rpm_script", Program: tt.program, Hint: "install it"}).Run()
			assert.Equal(t, tt.want, result.Status, result.Message)
			if tt.want == StatusFail {
				assert.Equal(t, "install it", result.Suggestion)
			}
		})
	}
}

func TestToolChecksCoverEveryTool(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = "/opt/lsc"

	checks := ToolChecks(cfg)
	require.Len(t, checks, 4)

	programs := map[string]string{}
	for _, c := range checks {
		tc := c.(*ToolCheck)
		programs[tc.Key] = tc.Program
		assert.Equal(t, CategoryTools, tc.Category())
	}
	assert.Equal(t, "ssh-keygen", programs["tools.keygen"])
	assert.Equal(t, "/opt/lsc/lsc-rpm-creator.sh", programs["tools.rpm_script"])
	assert.Equal(t, "/opt/lsc/lsc-deb-creator.sh", programs["tools.deb_script"])
	assert.Equal(t, "makensis", programs["tools.nsis"])
}

func TestScratchCheck(t *testing.T) {
	t.Run("usable root leaves nothing behind", func(t *testing.T) {
		root := t.TempDir()

		result := (&ScratchCheck{Root: root}).Run()
		assert.Equal(t, StatusPass, result.Status)

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing root", func(t *testing.T) {
		result := (&ScratchCheck{Root: filepath.Join(t.TempDir(), "gone")}).Run()
		assert.Equal(t, StatusFail, result.Status)
	})
}

func TestAllChecks(t *testing.T) {
	counts := make(map[string]int)
	for _, c := range AllChecks("", config.DefaultConfig()) {
		counts[c.Category()]++
	}

	assert.Equal(t, map[string]int{
		CategoryConfig:  2,
		CategoryTools:   4,
		CategoryScratch: 1,
	}, counts)
}
