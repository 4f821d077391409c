package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/lscpkg/lscpkg/internal/clean"
	"github.com/lscpkg/lscpkg/internal/config"
	"github.com/lscpkg/lscpkg/internal/errors"
	"github.com/lscpkg/lscpkg/internal/ui"
	"github.com/spf13/cobra"
)

// cleanOptions holds the clean command flags.
type cleanOptions struct {
	OlderThan time.Duration
	DryRun    bool
	Yes       bool
}

var cleanOpts cleanOptions

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove workspaces left behind by interrupted runs",
	Long: `Find lscpkg workspaces under scratch_root that are older than
--older-than and remove them. Workspaces are always removed when an
operation finishes; leftovers only appear when lscpkg itself was killed.

Examples:
  lscpkg clean --dry-run
  lscpkg clean --older-than 24h --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := config.LoadOrDefault(cfgFile)
		if err != nil {
			return err
		}
		return cleanCommand(cmd.OutOrStdout(), systemStreams(), cfg.ScratchRoot, cleanOpts, time.Now())
	},
}

func init() {
	cleanCmd.Flags().DurationVar(&cleanOpts.OlderThan, "older-than", time.Hour, "only remove workspaces not modified for this long")
	cleanCmd.Flags().BoolVar(&cleanOpts.DryRun, "dry-run", false, "list stale workspaces without removing them")
	cleanCmd.Flags().BoolVarP(&cleanOpts.Yes, "yes", "y", false, "remove without asking")
	rootCmd.AddCommand(cleanCmd)
}

// confirmPrompt asks before deleting. Replaced in tests.
var confirmPrompt = func(n int) (bool, error) {
	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove %d stale workspace%s?", n, pluralize(n))).
				Description("This cannot be undone").
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return false, nil
	}
	return confirm, nil
}

func cleanCommand(w io.Writer, s streams, root string, opts cleanOptions, now time.Time) error {
	stale, err := clean.Discover(root, opts.OlderThan, now)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrWorkspace,
			"Couldn't scan the scratch root",
			"Check scratch_root in the config")
	}

	if len(stale) == 0 {
		fmt.Fprintf(w, "%s No stale workspaces in %s\n", ui.SymbolPending, root)
		return nil
	}

	var total int64
	for _, d := range stale {
		total += d.Size
		fmt.Fprintf(w, "  %s %s\n", d.Path,
			ui.MutedStyle().Render(fmt.Sprintf("(%s, %s old)", clean.FormatSize(d.Size), now.Sub(d.ModTime).Round(time.Minute))))
	}
	fmt.Fprintf(w, "%d stale workspace%s, %s\n", len(stale), pluralize(len(stale)), clean.FormatSize(total))

	if opts.DryRun {
		return nil
	}

	if !opts.Yes {
		if !s.InTerminal {
			return errors.New(errors.ErrInput,
				"Refusing to delete without confirmation",
				"Pass --yes to remove non-interactively")
		}
		ok, err := confirmPrompt(len(stale))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	removed, errs := clean.Remove(root, stale)
	for _, err := range errs {
		ui.PrintWarning("%v", err)
	}
	fmt.Fprintf(w, "%s Removed %d workspace%s\n", ui.SymbolSuccess, len(removed), pluralize(len(removed)))

	if len(errs) > 0 {
		return errors.New(errors.ErrWorkspace,
			fmt.Sprintf("%d workspace%s could not be removed", len(errs), pluralize(len(errs))),
			"Check permissions under scratch_root")
	}
	return nil
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
