package cmd

import (
	"fmt"

	"github.com/theirongolddev/reimburse/internal/config"
	"github.com/theirongolddev/reimburse/internal/tui"
	"github.com/theirongolddev/reimburse/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [trip_duration_days [miles_traveled [total_receipts_amount]]]",
	Short: "Launch the interactive calculator",
	Args:  cobra.MaximumNArgs(3),
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	theme.SetActive(cfg.Appearance.Theme)

	policy, err := config.ResolvePolicy(cfg, flagVariant)
	if err != nil {
		return err
	}
	format, err := config.ResolveFormat(cfg, flagFormat)
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(policy, format, args, !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
