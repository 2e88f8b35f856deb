// Package tui provides the interactive Bubble Tea reimbursement calculator.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/reimburse/internal/cli"
	"github.com/theirongolddev/reimburse/internal/config"
	"github.com/theirongolddev/reimburse/internal/reimburse"
	"github.com/theirongolddev/reimburse/internal/tui/components"
	"github.com/theirongolddev/reimburse/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldDays = iota
	fieldMiles
	fieldReceipts
	numFields
)

var fieldLabels = [numFields]string{"Trip days", "Miles traveled", "Total receipts"}

const (
	defaultWidth = 80
	maxWidth     = 100
	shareBarLen  = 20
)

// App is the root Bubble Tea model.
type App struct {
	policy reimburse.Policy
	format reimburse.Format

	inputs [numFields]textinput.Model
	focus  int

	// Result of the last successful parse; nil while any field is empty
	breakdown *reimburse.Breakdown
	err       error

	width  int
	height int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	saveErr   error
}

// NewApp creates the calculator. initial may hold up to three prefilled
// values in days, miles, receipts order. When firstRun is set the setup
// form is shown before the calculator.
func NewApp(p reimburse.Policy, f reimburse.Format, initial []string, firstRun bool) App {
	a := App{policy: p, format: f}

	placeholders := [numFields]string{"3", "200", "500.00"}
	for i := range a.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 16
		ti.Width = 18
		ti.Prompt = ""
		if i < len(initial) {
			ti.SetValue(initial[i])
		}
		a.inputs[i] = ti
	}
	a.inputs[fieldDays].Focus()

	if firstRun {
		a.setupVals = DefaultSetupValues()
		a.setupForm = NewSetupForm(a.setupVals)
	}

	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.setupForm != nil {
		return a.setupForm.Init()
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(min(msg.Width, maxWidth))
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		switch msg.String() {
		case "esc":
			return a, tea.Quit
		case "tab", "down", "enter":
			return a, a.setFocus((a.focus + 1) % numFields)
		case "shift+tab", "up":
			return a, a.setFocus((a.focus + numFields - 1) % numFields)
		}
	}

	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	a.recompute()
	return a, cmd
}

func (a *App) setFocus(i int) tea.Cmd {
	a.inputs[a.focus].Blur()
	a.focus = i
	return a.inputs[a.focus].Focus()
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.finishSetup()
		a.setupForm = nil
		return a, textinput.Blink
	case huh.StateAborted:
		a.setupForm = nil
		return a, textinput.Blink
	}
	return a, cmd
}

// finishSetup saves the wizard choices and applies them to this session even
// when saving fails. An unreadable config file is left in place.
func (a *App) finishSetup() {
	cfg, err := config.Load()
	a.setupVals.Apply(&cfg)
	if err != nil {
		a.saveErr = fmt.Errorf("existing config unreadable, not overwritten: %w", err)
	} else {
		a.saveErr = config.Save(cfg)
	}

	theme.SetActive(cfg.Appearance.Theme)
	if p, err := config.ResolvePolicy(cfg, ""); err == nil {
		a.policy = p
	}
	if f, err := config.ResolveFormat(cfg, ""); err == nil {
		a.format = f
	}
	a.recompute()
}

// recompute parses the inputs and refreshes the breakdown.
func (a *App) recompute() {
	a.breakdown = nil
	a.err = nil

	var raw [numFields]string
	for i, in := range a.inputs {
		raw[i] = strings.TrimSpace(in.Value())
		if raw[i] == "" {
			return
		}
	}

	trip, err := reimburse.ParseTrip(raw[fieldDays], raw[fieldMiles], raw[fieldReceipts])
	if err != nil {
		a.err = err
		return
	}
	b, err := reimburse.Calculate(a.policy, trip)
	if err != nil {
		a.err = err
		return
	}
	a.breakdown = &b
}

func (a App) contentWidth() int {
	if a.width == 0 {
		return defaultWidth
	}
	return min(a.width, maxWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.setupForm != nil {
		return a.setupForm.View()
	}

	t := theme.Active
	w := a.contentWidth()

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(16)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Travel Reimbursement"))
	b.WriteString("\n\n")

	for i, in := range a.inputs {
		border := t.Border
		if i == a.focus {
			border = t.BorderAccent
		}
		box := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(border).
			PaddingLeft(1).
			Render(in.View())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, "  ", labelStyle.Render(fieldLabels[i]), box))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case a.err != nil:
		b.WriteString("  " + errStyle.Render(a.err.Error()))
		b.WriteString("\n")
	case a.breakdown == nil:
		b.WriteString(hintStyle.Render("  Fill in all three fields to see the reimbursement."))
		b.WriteString("\n")
	default:
		b.WriteString(a.renderResult(w))
	}

	if a.saveErr != nil {
		warn := lipgloss.NewStyle().Foreground(t.Orange)
		b.WriteString("\n  " + warn.Render("Could not save config: "+a.saveErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(w, []components.KeyHint{
		{Key: "tab", Help: "next"},
		{Key: "shift+tab", Help: "prev"},
		{Key: "esc", Help: "quit"},
	}, string(a.policy.Variant)))
	return b.String()
}

func (a App) renderResult(w int) string {
	bd := a.breakdown

	note := ""
	switch {
	case bd.Clamp != reimburse.ClampNone:
		note = "clamp: " + bd.Clamp.String()
	case bd.PenaltyFactor != 1:
		note = "penalty " + cli.FormatFactor(bd.PenaltyFactor)
	}

	cards := components.MetricCardRow([]components.Metric{
		{Label: "Reimbursement", Value: reimburse.FormatAmount(bd.Amount, a.format), Note: note},
		{Label: "Efficiency", Value: cli.FormatMiles(bd.Efficiency) + "/day"},
		{Label: "Variant", Value: string(bd.Variant)},
	}, w)

	inner := components.CardInnerWidth(w)
	labelStyle := lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Width(10)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Active.TextPrimary).Width(12).Align(lipgloss.Right)
	detailStyle := lipgloss.NewStyle().Foreground(theme.Active.TextDim)

	shares := []float64{bd.BaseComponent, bd.MileageComponent, bd.ReceiptComponent}
	var body strings.Builder
	for i, row := range cli.BreakdownRows(*bd) {
		line := labelStyle.Render(row[0]) + valueStyle.Render(row[2]) + "  "
		if i < len(shares) && bd.Subtotal > 0 {
			line += components.ShareBar(shares[i]/bd.Subtotal, shareBarLen) + "  "
		}
		line += detailStyle.Render(row[1])
		body.WriteString(lipgloss.NewStyle().MaxWidth(inner).Render(line))
		body.WriteString("\n")
	}

	return cards + "\n" + components.ContentCard("Breakdown", strings.TrimRight(body.String(), "\n"), w) + "\n"
}
