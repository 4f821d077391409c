package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lscpkg/lscpkg/internal/config"
	"github.com/lscpkg/lscpkg/internal/doctor"
	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/ui"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the config, external tools and scratch root",
	Long: `Run diagnostics on the lscpkg setup: whether the config loads and
validates, whether ssh-keygen, the package creator scripts and makensis can
be started, and whether workspaces can be created under scratch_root.

Exits non-zero if any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.OutOrStdout(), cfgFile)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func doctorCommand(w io.Writer, configPath string) error {
	cfg, _, err := config.LoadOrDefault(configPath)
	if err != nil {
		// The schema check reports the load error; the rest run on defaults
		cfg = config.DefaultConfig()
	}

	report := doctor.Run(doctor.AllChecks(configPath, cfg))
	renderDoctor(w, report)

	if report.Failed() {
		return errors.New(errors.ErrConfig,
			report.Summary(),
			"Fix the failed checks above")
	}
	return nil
}

func renderDoctor(w io.Writer, report doctor.Report) {
	header := lipgloss.NewStyle().Bold(true)
	for _, section := range report.Sections() {
		fmt.Fprintln(w, header.Render(section.Category))
		for _, r := range section.Results {
			fmt.Fprintf(w, "  %s %s\n", statusSymbol(r.Status), r.Message)
			if r.Status != doctor.StatusPass && r.Suggestion != "" {
				fmt.Fprintf(w, "    %s\n", ui.MutedStyle().Render(r.Suggestion))
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, report.Summary())
}
func statusSymbol(s doctor.CheckStatus) string {
	switch s {
	case doctor.StatusPass:
		return ui.SuccessStyle().Render(ui.SymbolSuccess)
	case doctor.StatusWarn:
		return ui.WarningStyle().Render(ui.SymbolWarning)
	default:
		return ui.ErrorStyle().Render(ui.SymbolFail)
	}
}
