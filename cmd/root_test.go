package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/reimburse/internal/config"
)

// run executes the CLI with args against an isolated config directory.
func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvVariant, "")
	lipgloss.SetColorProfile(termenv.Ascii)

	flagVariant, flagFormat, flagExplain, flagQuiet = "", "", false, false

	// A nil slice would make cobra fall back to os.Args
	if args == nil {
		args = []string{}
	}

	var out, errOut bytes.Buffer
	code = execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestExecute_Scenarios(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"3", "200", "500"}, "741.2\n"},
		{[]string{"1", "50", "30"}, "141.2\n"},
		{[]string{"10", "1000", "1500"}, "1779.97\n"},
		{[]string{"1", "1000", "100"}, "205.0\n"},
		{[]string{"--variant", "high-mileage", "1", "1000", "100"}, "1200.0\n"},
		{[]string{"--variant", "a", "10", "1000", "1500"}, "1809.62\n"},
		{[]string{"--format", "fixed", "3", "200", "500"}, "741.20\n"},
		{[]string{"0", "100", "100"}, "131.2\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			code, stdout, stderr := run(t, tt.args...)
			assert.Equal(t, 0, code)
			assert.Equal(t, tt.want, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestExecute_WrongArgCountPrintsUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"3"}, {"3", "200"}, {"3", "200", "500", "9"}} {
		code, stdout, _ := run(t, args...)
		assert.Equal(t, 1, code, "args %v", args)
		assert.Equal(t, usageLine+"\n", stdout, "args %v", args)
	}
}

func TestExecute_ParseErrorOnStdout(t *testing.T) {
	code, stdout, _ := run(t, "three", "200", "500")
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stdout, "Error: invalid days"), stdout)

	code, stdout, _ = run(t, "3", "200", "lots")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "invalid receipts")
}

func TestExecute_UnknownVariantOnStderr(t *testing.T) {
	code, stdout, stderr := run(t, "--variant", "generous", "3", "200", "500")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unknown variant")
}

func TestExecute_NegativeValues(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		// 164 + (-4.8) + 42
		{[]string{"--", "2", "-10", "50"}, "201.2\n"},
		{[]string{"2", "-10", "50"}, "201.2\n"},
		// 234 + (-4.8) + 4.2
		{[]string{"3", "-10", "5"}, "233.4\n"},
		// -30 + 48 + 42, efficiency is 0 for non-positive days
		{[]string{"-1", "100", "50"}, "60.0\n"},
		{[]string{"-q", "3", "-10", "5"}, "233.4\n"},
		{[]string{"--format", "fixed", "3", "-10", "5"}, "233.40\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			code, stdout, stderr := run(t, tt.args...)
			assert.Equal(t, 0, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestNegativesAsValues(t *testing.T) {
	assert.Equal(t, []string{"3", "--", "-10", "5"}, negativesAsValues([]string{"3", "-10", "5"}))
	assert.Equal(t, []string{"-e", "--", "-1", "2", "3"}, negativesAsValues([]string{"-e", "-1", "2", "3"}))
	assert.Equal(t, []string{"--", "-1", "-2", "3"}, negativesAsValues([]string{"--", "-1", "-2", "3"}))
	assert.Equal(t, []string{"-q", "1", "2", "3"}, negativesAsValues([]string{"-q", "1", "2", "3"}))
}

func TestExecute_NonFiniteInputIsParseError(t *testing.T) {
	for _, args := range [][]string{{"3", "nan", "5"}, {"3", "inf", "5"}, {"3", "200", "-Inf"}} {
		code, stdout, _ := run(t, args...)
		assert.Equal(t, 1, code, "args %v", args)
		assert.True(t, strings.HasPrefix(stdout, "Error: invalid "), "args %v: %q", args, stdout)
	}
}

func TestExecute_OverflowFails(t *testing.T) {
	code, stdout, stderr := run(t, "3", "-1.7e308", "-1.7e308")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "not a finite number")
}

func TestExecute_Explain(t *testing.T) {
	code, stdout, _ := run(t, "--explain", "10", "1000", "1500")
	require.Equal(t, 0, code)

	lines := strings.SplitN(stdout, "\n", 2)
	assert.Equal(t, "1779.97", lines[0])
	assert.Contains(t, stdout, "Reimbursement Breakdown")
	assert.Contains(t, stdout, "Penalty")
}

func TestExecute_UsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reimburse", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[policy]\nvariant = \"high-mileage\"\n[output]\nformat = \"fixed\"\n"), 0o600))

	flagVariant, flagFormat, flagExplain, flagQuiet = "", "", false, false
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvVariant, "")

	var out, errOut bytes.Buffer
	require.Equal(t, 0, execute([]string{"1", "1000", "100"}, &out, &errOut))
	assert.Equal(t, "1200.00\n", out.String())
}

func TestExecute_CorruptConfigFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reimburse", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[policy"), 0o600))

	flagVariant, flagFormat, flagExplain, flagQuiet = "", "", false, false
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvVariant, "")

	var out, errOut bytes.Buffer
	require.Equal(t, 0, execute([]string{"3", "200", "500"}, &out, &errOut))
	assert.Equal(t, "741.2\n", out.String())
	assert.Contains(t, errOut.String(), "Config unusable")
}

func TestPolicyCommand(t *testing.T) {
	code, stdout, _ := run(t, "policy", "--variant", "high-mileage")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "REIMBURSEMENT POLICY  high-mileage")
	assert.Contains(t, stdout, "High-Mileage Override")
}

func TestConfigCommand(t *testing.T) {
	code, stdout, _ := run(t, "config")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "using defaults")
	assert.Contains(t, stdout, "Variant: single-day")
	assert.Contains(t, stdout, "Format: plain")
	assert.Contains(t, stdout, "Overrides: none")
}
