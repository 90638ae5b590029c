package cmd

import (
	"fmt"

	"github.com/theirongolddev/amort/internal/cli"
	"github.com/theirongolddev/amort/internal/tui"
	"github.com/theirongolddev/amort/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the schedule interactively",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	terms, entries, err := loadSchedule(cmd)
	if err != nil {
		return err
	}

	theme.SetActive(appConfig.Appearance.Theme)

	// Force TrueColor so theme backgrounds render even when the profile is detected as Ascii.
	lipgloss.SetColorProfile(termenv.TrueColor)

	title := fmt.Sprintf("%s at %s%% paying %s", terms.Principal, cli.FormatRate(terms.Rate), terms.Payment)
	app := tui.NewApp(title, entries, appConfig.Schedule.DateLayout)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
