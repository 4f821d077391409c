package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lscpkg/lscpkg/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but lscpkg only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade lscpkg")
	}

	if cfg.ScratchRoot == "" || !filepath.IsAbs(cfg.ScratchRoot) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("scratch_root must be an absolute path, got %q", cfg.ScratchRoot),
			"Set scratch_root to a directory like /tmp or /var/tmp/lscpkg")
	}

	tools := map[string]string{
		"tools.keygen":     cfg.Tools.Keygen,
		"tools.rpm_script": cfg.Tools.RPMScript,
		"tools.deb_script": cfg.Tools.DEBScript,
		"tools.nsis":       cfg.Tools.NSIS,
	}
	for _, key := range []string{"tools.keygen", "tools.rpm_script", "tools.deb_script", "tools.nsis"} {
		if strings.TrimSpace(tools[key]) == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s can't be empty", key),
				"Remove the key to use the default, or name the program to run")
		}
	}

	if strings.TrimSpace(cfg.Keygen.Comment) == "" {
		return errors.New(errors.ErrConfig,
			"keygen.comment can't be empty",
			"Remove the key to use the default comment")
	}

	if cfg.Runner.OutputLimit <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("runner.output_limit must be positive, got %d", cfg.Runner.OutputLimit),
			fmt.Sprintf("Try %d (1 MiB)", DefaultOutputSize))
	}

	return nil
}
