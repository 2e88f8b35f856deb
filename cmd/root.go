// Package cmd implements the reimburse CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/theirongolddev/reimburse/internal/cli"
	"github.com/theirongolddev/reimburse/internal/config"
	"github.com/theirongolddev/reimburse/internal/reimburse"

	"github.com/spf13/cobra"
)

const usageLine = "Usage: reimburse <trip_duration_days> <miles_traveled> <total_receipts_amount>"

var (
	flagVariant string
	flagFormat  string
	flagExplain bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "reimburse <trip_duration_days> <miles_traveled> <total_receipts_amount>",
	Short: "Travel reimbursement calculator",
	Long: "Compute the reimbursement for a trip from its duration in days, miles traveled,\n" +
		"and total receipt amount. Negative numbers are read as values, not flags.",
	Args:          exactArgs(3),
	RunE:          runCalculate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// UsageError reports a wrong number of positional arguments.
type UsageError struct {
	Got  int
	Want int
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("expected %d arguments, got %d", e.Want, e.Got)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return &UsageError{Got: len(args), Want: n}
		}
		return nil
	}
}

// Execute is the main entry point called from main.go.
func Execute() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the root command and maps its error to output and an exit
// code. Usage and parse failures go to stdout like the result does.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(negativesAsValues(args))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var usageErr *UsageError
	var parseErr *reimburse.ParseError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintln(stdout, usageLine)
	case errors.As(err, &parseErr):
		fmt.Fprintf(stdout, "Error: %v\n", err)
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

// negativesAsValues inserts "--" before the first negative number so that
// "3 -10 5" is not parsed as shorthand flags. Flags never parse as numbers.
func negativesAsValues(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}
		if _, err := strconv.ParseFloat(arg, 64); err != nil {
			continue
		}
		out := make([]string, 0, len(args)+1)
		out = append(out, args[:i]...)
		out = append(out, "--")
		return append(out, args[i:]...)
	}
	return args
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "", "Formula variant: single-day or high-mileage (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Output format: plain or fixed (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notices on stderr")
	rootCmd.Flags().BoolVarP(&flagExplain, "explain", "e", false, "Print the component breakdown after the amount")
}

// loadConfig is the shared config path used by all commands. A broken config
// file is reported and replaced by defaults rather than failing the command.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "  Config unusable, using defaults: %v\n", err)
	}
	return cfg
}

func runCalculate(cmd *cobra.Command, args []string) error {
	trip, err := reimburse.ParseTrip(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	cfg := loadConfig(cmd)
	policy, err := config.ResolvePolicy(cfg, flagVariant)
	if err != nil {
		return err
	}
	format, err := config.ResolveFormat(cfg, flagFormat)
	if err != nil {
		return err
	}

	b, err := reimburse.Calculate(policy, trip)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, reimburse.FormatAmount(b.Amount, format))

	if flagExplain {
		fmt.Fprintln(out)
		fmt.Fprint(out, cli.RenderBreakdown(b, format))
	}
	return nil
}
