package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/tui"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	addPlanFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	sc, err := loadScenario(ctx, e.store)
	if err != nil {
		return err
	}
	in, err := planInput(c, e, sc)
	if err != nil {
		return err
	}
	if len(in.Loans) == 0 {
		fmt.Println("\n  No loans saved yet. Add one with `debtburn loan add`.")
		return nil
	}
	// The dashboard owns the screen; engine logs would tear it.
	in.Logger = nil

	theme.SetActive(e.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	p := tea.NewProgram(tui.NewApp(in), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
