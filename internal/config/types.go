package config

import "os"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete lscpkg configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// ScratchRoot is the directory every workspace is created under.
	ScratchRoot string `yaml:"scratch_root" mapstructure:"scratch_root"`

	// DataDir holds the package creator scripts. Script names without a
	// directory are resolved against it.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	Tools     ToolsConfig     `yaml:"tools" mapstructure:"tools"`
	Keygen    KeygenConfig    `yaml:"keygen" mapstructure:"keygen"`
	Runner    RunnerConfig    `yaml:"runner" mapstructure:"runner"`
	Packaging PackagingConfig `yaml:"packaging" mapstructure:"packaging"`
}

// ToolsConfig names the external programs. Bare names are searched in PATH
// (keygen, nsis) or in DataDir (creator scripts).
type ToolsConfig struct {
	Keygen    string `yaml:"keygen" mapstructure:"keygen"`
	RPMScript string `yaml:"rpm_script" mapstructure:"rpm_script"`
	DEBScript string `yaml:"deb_script" mapstructure:"deb_script"`
	NSIS      string `yaml:"nsis" mapstructure:"nsis"`
}

// KeygenConfig controls keypair generation.
type KeygenConfig struct {
	// Comment is embedded in each generated key.
	Comment string `yaml:"comment" mapstructure:"comment"`
}

// RunnerConfig controls external program invocation.
type RunnerConfig struct {
	// OutputLimit caps captured stdout and stderr, in bytes per stream.
	OutputLimit int `yaml:"output_limit" mapstructure:"output_limit"`
}

// PackagingConfig controls RPM and DEB builds.
type PackagingConfig struct {
	// Maintainer is the default DEB maintainer identity.
	Maintainer string `yaml:"maintainer" mapstructure:"maintainer"`

	// ValidatePublicKey rejects keys that don't parse as authorized_keys
	// entries before any workspace is created.
	ValidatePublicKey bool `yaml:"validate_public_key" mapstructure:"validate_public_key"`
}

// Defaults for the external tools.
const (
	DefaultDataDir    = "/usr/share/lscpkg"
	DefaultKeygenTool = "ssh-keygen"
	DefaultRPMScript  = "lsc-rpm-creator.sh"
	DefaultDEBScript  = "lsc-deb-creator.sh"
	DefaultNSISTool   = "makensis"
	DefaultComment    = "Key generated by lscpkg"
	DefaultOutputSize = 1 << 20
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		ScratchRoot: os.TempDir(),
		DataDir:     DefaultDataDir,
		Tools: ToolsConfig{
			Keygen:    DefaultKeygenTool,
			RPMScript: DefaultRPMScript,
			DEBScript: DefaultDEBScript,
			NSIS:      DefaultNSISTool,
		},
		Keygen: KeygenConfig{
			Comment: DefaultComment,
		},
		Runner: RunnerConfig{
			OutputLimit: DefaultOutputSize,
		},
	}
}
