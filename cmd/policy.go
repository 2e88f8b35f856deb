package cmd

import (
	"fmt"

	"github.com/theirongolddev/reimburse/internal/cli"
	"github.com/theirongolddev/reimburse/internal/config"

	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Show the rate tables of the active formula variant",
	Args:  cobra.NoArgs,
	RunE:  runPolicy,
}

func init() {
	rootCmd.AddCommand(policyCmd)
}

func runPolicy(cmd *cobra.Command, _ []string) error {
	policy, err := config.ResolvePolicy(loadConfig(cmd), flagVariant)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("REIMBURSEMENT POLICY  %s", policy.Variant)))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderPolicy(policy))
	return nil
}
