package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/logger"
	"github.com/lscpkg/lscpkg/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd is the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lscpkg",
	Short: "Build local security check credentials and installers",
	Long: `lscpkg creates the credentials a vulnerability scanner needs to run
authenticated local checks: an SSH private key, and RPM, Debian and
Windows installers that create a scanner account on the target host.

Every artifact is produced by an external tool (ssh-keygen, the package
creator scripts, makensis) in a private scratch directory that is removed
before lscpkg exits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetDebug(true)
		}
		if noColor || os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stderr.Fd())) {
			ui.DisableColors()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.lscpkg.yaml or ~/.config/lscpkg/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every external command and its output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUnknownCommandError(err) {
			if name := extractUnknownCommand(err); name != "" {
				ui.PrintError("Unknown command %q", name)
			} else {
				ui.PrintError("%s", err.Error())
			}
			fmt.Fprintln(os.Stderr, "  Run 'lscpkg --help' to see the available commands.")
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}

// isUnknownCommandError reports whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "lscpkg"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
