package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/reimburse/internal/config"
	"github.com/theirongolddev/reimburse/internal/reimburse"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newTestApp(initial ...string) App {
	return NewApp(reimburse.DefaultPolicy(reimburse.VariantSingleDay), reimburse.FormatFixed, initial, false)
}

func send(t *testing.T, a App, msgs ...tea.Msg) App {
	t.Helper()
	for _, msg := range msgs {
		m, _ := a.Update(msg)
		var ok bool
		a, ok = m.(App)
		require.True(t, ok, "Update returned %T", m)
	}
	return a
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_PrefilledComputesImmediately(t *testing.T) {
	a := newTestApp("3", "200", "500")
	require.NoError(t, a.err)
	require.NotNil(t, a.breakdown)
	assert.Equal(t, "741.20", a.breakdown.Amount.StringFixed(2))
}

func TestApp_EmptyFieldsShowHint(t *testing.T) {
	a := newTestApp("3")
	assert.Nil(t, a.breakdown)
	assert.NoError(t, a.err)
	assert.Contains(t, a.View(), "Fill in all three fields")
}

func TestApp_TypingRecomputes(t *testing.T) {
	a := newTestApp()

	a = send(t, a,
		typeText("10"),
		tea.KeyMsg{Type: tea.KeyTab},
		typeText("1000"),
		tea.KeyMsg{Type: tea.KeyTab},
		typeText("1500"),
	)

	assert.Equal(t, fieldReceipts, a.focus)
	require.NotNil(t, a.breakdown)
	assert.Equal(t, "1779.97", a.breakdown.Amount.StringFixed(2))

	view := a.View()
	assert.Contains(t, view, "1779.97")
	assert.Contains(t, view, "penalty x0.85")
}

func TestApp_FocusWraps(t *testing.T) {
	a := newTestApp()

	a = send(t, a, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldReceipts, a.focus)

	a = send(t, a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldDays, a.focus)
}

func TestApp_ParseErrorShown(t *testing.T) {
	a := newTestApp("3", "far", "500")
	require.Error(t, a.err)
	assert.Nil(t, a.breakdown)

	var pe *reimburse.ParseError
	require.ErrorAs(t, a.err, &pe)
	assert.Equal(t, "miles", pe.Field)
	assert.Contains(t, a.View(), "invalid miles")
}

func TestApp_EscQuits(t *testing.T) {
	a := newTestApp()
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_ViewUsesWindowWidth(t *testing.T) {
	a := send(t, newTestApp("1", "1000", "100"), tea.WindowSizeMsg{Width: 90, Height: 40})
	assert.Equal(t, 90, a.contentWidth())

	view := a.View()
	assert.Contains(t, view, "205.00")
	assert.Contains(t, view, "clamp: capped")
	assert.Contains(t, view, "single-day")
}

func TestSetupValues_Apply(t *testing.T) {
	cfg := config.DefaultConfig()
	SetupValues{Variant: "high-mileage", Theme: "terminal"}.Apply(&cfg)

	assert.Equal(t, "high-mileage", cfg.Policy.Variant)
	assert.Equal(t, "plain", cfg.Output.Format)
	assert.Equal(t, "terminal", cfg.Appearance.Theme)
}

func TestApp_FirstRunShowsSetupForm(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	a := NewApp(reimburse.DefaultPolicy(reimburse.VariantSingleDay), reimburse.FormatPlain, nil, true)
	require.NotNil(t, a.setupForm)
	require.NotNil(t, a.setupVals)
	assert.Equal(t, "single-day", a.setupVals.Variant)

	// Keys go to the form, not the calculator inputs
	a = send(t, a, typeText("7"))
	assert.Empty(t, a.inputs[fieldDays].Value())
}

func TestApp_FinishSetupLeavesUnreadableConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvVariant, "")
	path := filepath.Join(dir, "reimburse", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[policy"), 0o600))

	a := NewApp(reimburse.DefaultPolicy(reimburse.VariantSingleDay), reimburse.FormatPlain, []string{"1", "1000", "100"}, true)
	a.setupVals.Variant = string(reimburse.VariantHighMileage)
	a.finishSetup()

	require.Error(t, a.saveErr)
	assert.Contains(t, a.saveErr.Error(), "not overwritten")
	assert.Equal(t, reimburse.VariantHighMileage, a.policy.Variant)
	require.NotNil(t, a.breakdown)
	assert.Equal(t, "1200.0", reimburse.FormatAmount(a.breakdown.Amount, a.format))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[policy", string(data))
}
