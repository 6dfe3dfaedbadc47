package compare

import (
	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/domain"
	"github.com/shopspring/decimal"
)

// SavingsPlaces is the number of decimal places savings are rounded to
const SavingsPlaces = 2

// RegimeComparator runs the calculator under both regimes and picks the cheaper one
type RegimeComparator struct {
	Calculator *calculation.RegimeTaxCalculator
}

// NewRegimeComparator creates a comparator around the given calculator
func NewRegimeComparator(calc *calculation.RegimeTaxCalculator) *RegimeComparator {
	if calc == nil {
		calc = calculation.NewDefaultRegimeTaxCalculator()
	}
	return &RegimeComparator{Calculator: calc}
}

// Compare calculates both regimes on the same income. The old regime wins only
// when its total is strictly lower; an exact tie resolves to the new regime
// with zero savings.
func (rc *RegimeComparator) Compare(income, deductions decimal.Decimal) domain.ComparisonResult {
	oldRegime := rc.Calculator.Calculate(domain.TaxInput{
		Income:     income,
		Deductions: deductions,
		Regime:     domain.RegimeOld,
	})

	// deductions are passed through; the new regime replaces them with the standard deduction
	newRegime := rc.Calculator.Calculate(domain.TaxInput{
		Income:     income,
		Deductions: deductions,
		Regime:     domain.RegimeNew,
	})

	var betterRegime domain.Regime
	var savings decimal.Decimal

	if oldRegime.TotalTax.LessThan(newRegime.TotalTax) {
		betterRegime = domain.RegimeOld
		savings = newRegime.TotalTax.Sub(oldRegime.TotalTax)
	} else {
		betterRegime = domain.RegimeNew
		savings = oldRegime.TotalTax.Sub(newRegime.TotalTax)
	}

	return domain.ComparisonResult{
		OldRegime:    oldRegime,
		NewRegime:    newRegime,
		BetterRegime: betterRegime,
		Savings:      savings.Round(SavingsPlaces),
	}
}

// Report compares both regimes and bundles the result with the financial
// year and cess rate the calculator applied
func (rc *RegimeComparator) Report(income, deductions decimal.Decimal) *Report {
	report := NewReport(income, deductions, rc.Calculator.FinancialYear, rc.Compare(income, deductions))
	report.CessRate = rc.Calculator.CessRate
	return report
}
