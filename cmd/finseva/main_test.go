package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/config"
	"github.com/finseva/finseva/internal/identity"
	"github.com/finseva/finseva/internal/repository"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{config.EnvJWTSecret, config.EnvGeminiAPIKey, config.EnvRedisAddr} {
		t.Setenv(key, "")
	}

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "finseva", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"compare", "calculate", "validate", "rules", "token", "serve", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestCompareCommand_Table(t *testing.T) {
	out, err := run(t, "compare", "--income", "10,00,000", "--deductions", "150000")
	require.NoError(t, err)

	assert.Contains(t, out, "OLD REGIME")
	assert.Contains(t, out, "₹9,100")
	assert.Contains(t, out, "Cess (4%)")
}

func TestCompareCommand_Compact(t *testing.T) {
	out, err := run(t, "compare", "-i", "1000000", "-d", "150000", "-f", "compact")
	require.NoError(t, err)

	assert.Equal(t, "Old: ₹41,600 | New: ₹50,700 | Better: old | Savings: ₹9,100\n", out)
}

func TestCompareCommand_JSON(t *testing.T) {
	out, err := run(t, "compare", "-i", "1500000", "-f", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"betterRegime": "new"`)
	assert.Contains(t, out, `"savings": "15600"`)
}

func TestCompareCommand_Errors(t *testing.T) {
	_, err := run(t, "compare", "-i", "-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)

	_, err = run(t, "compare", "-i", "abc")
	assert.ErrorContains(t, err, "is not a number")

	_, err = run(t, "compare", "-i", "1e20000000")
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)

	_, err = run(t, "compare", "-i", "100", "-d", "1e-20000000")
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)

	_, err = run(t, "compare", "-i", "100", "-f", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestCalculateCommand(t *testing.T) {
	out, err := run(t, "calculate", "-i", "1500000", "-r", "new")
	require.NoError(t, err)

	assert.Contains(t, out, "NEW REGIME (FY 2025-26)")
	assert.Contains(t, out, "₹14,25,000")
	assert.Contains(t, out, "₹1,40,400")

	_, err = run(t, "calculate", "-i", "100", "-r", "flat")
	assert.Error(t, err)

	_, err = run(t, "calculate", "-i", "1e20000000", "-r", "old")
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)
}

func TestCalculateCommand_VerboseShowsSlabs(t *testing.T) {
	out, err := run(t, "calculate", "-i", "1000000", "-d", "150000", "-r", "old", "-v")
	require.NoError(t, err)

	assert.Contains(t, out, "Slab breakdown")
	assert.Contains(t, out, "@ 10%")
	assert.Contains(t, out, "₹41,600")
}

func TestCalculateCommand_CSV(t *testing.T) {
	out, err := run(t, "calculate", "-i", "1000000", "-d", "150000", "-r", "old", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "total_tax,,,,,41600.00")

	_, err = run(t, "calculate", "-i", "1", "-f", "pdf")
	assert.ErrorContains(t, err, "unknown format")
}

func TestRulesCommand(t *testing.T) {
	out, err := run(t, "rules", "--rules", "../../configs/tax_rules_2025.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "Financial Year: 2025-26")
	assert.Contains(t, out, "above ₹15,00,000")
	assert.Contains(t, out, "Cess: 4%")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "../../configs/finseva.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, err = run(t, "validate", "does-not-exist.yaml")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	_, err := run(t, "token", "user-1")
	assert.ErrorIs(t, err, identity.ErrNoSecret)

	t.Setenv(config.EnvJWTSecret, "test-secret")
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"token", "user-1", "--email", "asha@example.com"})
	require.NoError(t, cmd.Execute())

	id, err := identity.NewVerifier("test-secret").Verify(strings.TrimSpace(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "asha@example.com", id.Email)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "finseva dev"))
}

func TestBuildDeps_Defaults(t *testing.T) {
	cfg := config.Default()

	deps, cleanup, err := buildDeps(context.Background(), cfg, cfg.Rules(), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &repository.ProfileStoreMemory{}, deps.Profiles)
	assert.Nil(t, deps.Assistant)
	assert.Nil(t, deps.Index)
	assert.NotNil(t, deps.News)
	assert.Equal(t, "2025-26", deps.Comparator.Calculator.FinancialYear)
}
