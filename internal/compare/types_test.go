package compare

import (
	"strings"
	"testing"

	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecommendations_Tie(t *testing.T) {
	result := NewRegimeComparator(nil).Compare(d("300000"), d("0"))

	recs := GenerateRecommendations(result)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "same tax payable")
}

func TestGenerateRecommendations_SubPaisaWinIsNotATie(t *testing.T) {
	result := NewRegimeComparator(nil).Compare(d("400000"), d("75000.01"))
	require.Equal(t, domain.RegimeOld, result.BetterRegime)
	require.True(t, result.Savings.IsZero())

	recs := GenerateRecommendations(result)

	require.NotEmpty(t, recs)
	assert.Equal(t, "Choose the Old Regime: it saves ₹0 in total tax payable", recs[0])
	for _, rec := range recs {
		assert.NotContains(t, rec, "same tax payable")
	}
}

func TestGenerateRecommendations_OldRegime(t *testing.T) {
	result := NewRegimeComparator(nil).Compare(d("1000000"), d("150000"))

	recs := GenerateRecommendations(result)

	require.GreaterOrEqual(t, len(recs), 2)
	assert.Equal(t, "Choose the Old Regime: it saves ₹9,100 in total tax payable", recs[0])
	assert.True(t, strings.Contains(recs[1], "proofs"))
}

func TestCessLabel(t *testing.T) {
	assert.Equal(t, "Cess", CessLabel(d("0")))
	assert.Equal(t, "Cess (4%)", CessLabel(d("0.04")))
	assert.Equal(t, "Cess (5.5%)", CessLabel(d("0.055")))
}

func TestRegimeComparator_Report(t *testing.T) {
	rules := calculation.DefaultTaxRules()
	rules.CessRate = d("0.05")
	comparator := NewRegimeComparator(calculation.NewRegimeTaxCalculator(rules))

	report := comparator.Report(d("1000000"), d("150000"))

	assert.Equal(t, "2025-26", report.FinancialYear)
	assert.True(t, report.CessRate.Equal(d("0.05")))
	assert.Equal(t, "Cess (5%)", report.CessLabel())
	assert.Equal(t, domain.RegimeOld, report.Result.BetterRegime)
}

func TestNewReport(t *testing.T) {
	result := NewRegimeComparator(nil).Compare(d("1500000"), d("0"))

	report := NewReport(d("1500000"), d("0"), "2025-26", result)

	assert.Equal(t, domain.RegimeNew, report.Result.BetterRegime)
	assert.Equal(t, "2025-26", report.FinancialYear)
	assert.NotEmpty(t, report.Recommendations)
}
