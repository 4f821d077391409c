package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lscpkg/lscpkg/internal/config"
	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configInitGlobal bool
	configInitForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or inspect the lscpkg configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write .lscpkg.yaml in the current directory, or the global
~/.config/lscpkg/config.yaml with --global, filled with the defaults.

Examples:
  lscpkg config init
  lscpkg config init --global --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configInitPath(configInitGlobal)
		if err != nil {
			return err
		}
		return configInitCommand(path, configInitForce)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration lscpkg would use, after merging the config
file, defaults and LSCPKG_ environment overrides.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCommand(cmd.OutOrStdout(), cfgFile)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write the global config instead of ./"+config.ConfigFileName)
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// configInitPath returns where config init writes, creating the global
// config directory if needed.
func configInitPath(global bool) (string, error) {
	if !global {
		return config.ConfigFileName, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine home directory",
			"Set HOME, or run 'lscpkg config init' without --global")
	}
	dir := filepath.Join(home, config.GlobalConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't create %s", dir),
			"Check directory permissions")
	}
	return filepath.Join(dir, config.GlobalConfigFile), nil
}

func configInitCommand(path string, force bool) error {
	if err := config.Write(path, config.DefaultConfig(), force); err != nil {
		return err
	}
	ui.PrintSuccess("Created %s", path)
	return nil
}

func configShowCommand(w io.Writer, explicit string) error {
	cfg, path, err := config.LoadOrDefault(explicit)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	source := "defaults"
	if path != "" {
		source = path
	}
	fmt.Fprintf(w, "# source: %s\n", source)
	_, err = w.Write(data)
	return err
}
