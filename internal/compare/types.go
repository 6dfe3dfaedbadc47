package compare

import (
	"fmt"

	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/money"
	"github.com/finseva/finseva/internal/output"
	"github.com/shopspring/decimal"
)

// Report is a comparison together with the inputs that produced it, as rendered by the formatters
type Report struct {
	Income          decimal.Decimal         `json:"income"`
	Deductions      decimal.Decimal         `json:"deductions"`
	FinancialYear   string                  `json:"financialYear,omitempty"`
	CessRate        decimal.Decimal         `json:"cessRate"`
	Result          domain.ComparisonResult `json:"result"`
	Recommendations []string                `json:"recommendations"`
}

// NewReport bundles a comparison with its inputs and recommendations
func NewReport(income, deductions decimal.Decimal, financialYear string, result domain.ComparisonResult) *Report {
	return &Report{
		Income:          income,
		Deductions:      deductions,
		FinancialYear:   financialYear,
		Result:          result,
		Recommendations: GenerateRecommendations(result),
	}
}

// CessLabel names the cess row with the rate in effect
func (r *Report) CessLabel() string {
	return CessLabel(r.CessRate)
}

// CessLabel renders "Cess (4%)" for a rate of 0.04, or plain "Cess" when
// the rate is unknown
func CessLabel(rate decimal.Decimal) string {
	if rate.IsZero() {
		return "Cess"
	}
	return "Cess (" + output.FormatPercentage(rate) + ")"
}

// GenerateRecommendations creates advice lines from a comparison. A tie is
// judged on the unrounded totals; savings below half a paisa still name the
// cheaper regime.
func GenerateRecommendations(result domain.ComparisonResult) []string {
	recommendations := []string{}

	if result.OldRegime.TotalTax.Equal(result.NewRegime.TotalTax) {
		recommendations = append(recommendations,
			"Both regimes result in the same tax payable; the new regime is recommended as it needs no proof of investments")
		return recommendations
	}

	recommendations = append(recommendations,
		fmt.Sprintf("Choose the %s: it saves %s in total tax payable",
			titleRegime(result.BetterRegime), money.Rupees(result.Savings)))

	if result.BetterRegime == domain.RegimeOld {
		recommendations = append(recommendations,
			"Keep proofs of your declared deductions ready; the old regime only applies them when claimed")
	}

	if result.NewRegime.TaxableIncome.IsZero() || result.OldRegime.TaxableIncome.IsZero() {
		recommendations = append(recommendations,
			"Taxable income is nil under at least one regime after deductions")
	}

	return recommendations
}

func titleRegime(r domain.Regime) string {
	switch r {
	case domain.RegimeOld:
		return "Old Regime"
	case domain.RegimeNew:
		return "New Regime"
	default:
		return string(r)
	}
}
