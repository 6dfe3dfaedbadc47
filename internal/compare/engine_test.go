package compare

import (
	"testing"

	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompare_OldRegimeWins(t *testing.T) {
	comparator := NewRegimeComparator(nil)

	result := comparator.Compare(d("1000000"), d("150000"))

	assert.True(t, result.OldRegime.TaxableIncome.Equal(d("850000")))
	assert.True(t, result.OldRegime.TotalTax.Equal(d("41600")))
	assert.True(t, result.NewRegime.TaxableIncome.Equal(d("925000")))
	assert.True(t, result.NewRegime.TotalTax.Equal(d("50700")))
	assert.Equal(t, domain.RegimeOld, result.BetterRegime)
	assert.True(t, result.Savings.Equal(d("9100")), "got %s", result.Savings)
}

func TestCompare_NewRegimeWins(t *testing.T) {
	comparator := NewRegimeComparator(nil)

	result := comparator.Compare(d("1500000"), d("0"))

	// old: 1500000 taxable -> 150000 + 6000 cess; new: 1425000 -> 135000 + 5400 cess
	assert.True(t, result.OldRegime.TotalTax.Equal(d("156000")))
	assert.True(t, result.NewRegime.TotalTax.Equal(d("140400")))
	assert.Equal(t, domain.RegimeNew, result.BetterRegime)
	assert.True(t, result.Savings.Equal(d("15600")))
}

func TestCompare_TieResolvesToNewRegime(t *testing.T) {
	comparator := NewRegimeComparator(nil)

	tests := []struct {
		name       string
		income     string
		deductions string
	}{
		{"income at first slab limit", "300000", "0"},
		{"zero income", "0", "0"},
		{"equal effective deductions", "1000000", "75000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := comparator.Compare(d(tt.income), d(tt.deductions))
			assert.True(t, result.OldRegime.TotalTax.Equal(result.NewRegime.TotalTax))
			assert.Equal(t, domain.RegimeNew, result.BetterRegime)
			assert.True(t, result.Savings.IsZero())
		})
	}
}

func TestCompare_Example300000(t *testing.T) {
	result := NewRegimeComparator(nil).Compare(d("300000"), decimal.Zero)

	assert.True(t, result.OldRegime.TaxableIncome.Equal(d("300000")))
	assert.True(t, result.OldRegime.Tax.IsZero())
	assert.True(t, result.OldRegime.Cess.IsZero())
	assert.True(t, result.NewRegime.TaxableIncome.Equal(d("225000")))
	assert.True(t, result.NewRegime.TotalTax.IsZero())
}

func TestCompare_SavingsRoundedSubResultsNot(t *testing.T) {
	result := NewRegimeComparator(nil).Compare(d("300000.125"), decimal.Zero)

	// old: 0.125 taxed at 5% = 0.00625, cess 0.00025
	assert.True(t, result.OldRegime.TotalTax.Equal(d("0.0065")), "got %s", result.OldRegime.TotalTax)
	assert.Equal(t, domain.RegimeNew, result.BetterRegime)
	assert.True(t, result.Savings.Equal(d("0.01")), "got %s", result.Savings)
}

func TestCompare_Consistency(t *testing.T) {
	comparator := NewRegimeComparator(calculation.NewDefaultRegimeTaxCalculator())

	incomes := []string{"0", "250000", "640000.55", "987654.32", "1800000", "4200000.99"}
	deductions := []string{"0", "50000", "75000", "212345.67", "500000"}

	for _, income := range incomes {
		for _, ded := range deductions {
			result := comparator.Compare(d(income), d(ded))

			diff := result.OldRegime.TotalTax.Sub(result.NewRegime.TotalTax)
			assert.True(t, result.Savings.Equal(diff.Abs().Round(2)),
				"income %s deductions %s: savings %s", income, ded, result.Savings)

			if result.OldRegime.TotalTax.LessThan(result.NewRegime.TotalTax) {
				assert.Equal(t, domain.RegimeOld, result.BetterRegime)
			} else {
				assert.Equal(t, domain.RegimeNew, result.BetterRegime)
			}
			assert.False(t, result.Savings.IsNegative())
		}
	}
}

func TestCompare_Idempotent(t *testing.T) {
	comparator := NewRegimeComparator(nil)

	first := comparator.Compare(d("1234567.89"), d("175000"))
	second := comparator.Compare(d("1234567.89"), d("175000"))

	assert.Equal(t, first, second)
}
