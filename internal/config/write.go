package config

import (
	"fmt"
	"os"

	"github.com/lscpkg/lscpkg/internal/errors"
	"gopkg.in/yaml.v3"
)

const fileHeader = "# lscpkg configuration\n# Every key can be overridden with an LSCPKG_ environment variable,\n# e.g. LSCPKG_SCRATCH_ROOT or LSCPKG_TOOLS_NSIS.\n\n"

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to render config",
			"")
	}
	return data, nil
}

// Write saves cfg to path. Existing files are only replaced when overwrite is set.
func Write(path string, cfg *Config, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", path),
			"Use --force to overwrite")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write %s", path),
			"Check directory permissions")
	}
	return nil
}
