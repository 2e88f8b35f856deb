package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/reimburse/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	policy, err := config.ResolvePolicy(cfg, flagVariant)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "  [Policy]")
	fmt.Fprintf(out, "    Variant: %s", policy.Variant)
	switch {
	case flagVariant != "":
		fmt.Fprint(out, " (--variant)")
	case os.Getenv(config.EnvVariant) != "":
		fmt.Fprintf(out, " ($%s)", config.EnvVariant)
	}
	fmt.Fprintln(out)

	o := cfg.Policy.Overrides
	if o.IsZero() {
		fmt.Fprintln(out, "    Overrides: none")
	} else {
		printOverride(cmd, "Tier 1 multiplier", o.Tier1Multiplier)
		printOverride(cmd, "Heavy penalty", o.HeavyPenalty)
		printOverride(cmd, "Light penalty", o.LightPenalty)
	}
	fmt.Fprintln(out)

	format, err := config.ResolveFormat(cfg, flagFormat)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "  [Output]")
	fmt.Fprintf(out, "    Format: %s\n", format)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `reimburse setup` to reconfigure.")
	return nil
}

func printOverride(cmd *cobra.Command, label string, v *float64) {
	if v == nil {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "    %-18s %g\n", label+":", *v)
}
