package tui

import (
	"github.com/theirongolddev/reimburse/internal/config"
	"github.com/theirongolddev/reimburse/internal/reimburse"
	"github.com/theirongolddev/reimburse/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the choices made in the setup wizard.
type SetupValues struct {
	Variant string
	Format  string
	Theme   string
}

// DefaultSetupValues returns wizard values preselected from the current
// config, or from the defaults when none can be loaded.
func DefaultSetupValues() *SetupValues {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return &SetupValues{
		Variant: cfg.Policy.Variant,
		Format:  cfg.Output.Format,
		Theme:   cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the huh form that fills vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	variantOpts := []huh.Option[string]{
		huh.NewOption("Single-day band (clamp 1-day trips to about $112-$210)", string(reimburse.VariantSingleDay)),
		huh.NewOption("High mileage (boost 1-day trips over 800 mi, clamp to $1200-$1500)", string(reimburse.VariantHighMileage)),
	}

	formatOpts := []huh.Option[string]{
		huh.NewOption("Plain (741.2)", string(reimburse.FormatPlain)),
		huh.NewOption("Fixed cents (741.20)", string(reimburse.FormatFixed)),
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Formula variant").
				Description("How single-day trips are treated.").
				Options(variantOpts...).
				Value(&vals.Variant),
			huh.NewSelect[string]().
				Title("Output format").
				Options(formatOpts...).
				Value(&vals.Format),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithShowHelp(true)
}

// Apply copies the wizard choices into cfg. Overrides are left untouched.
func (v SetupValues) Apply(cfg *config.Config) {
	if v.Variant != "" {
		cfg.Policy.Variant = v.Variant
	}
	if v.Format != "" {
		cfg.Output.Format = v.Format
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
}
