package compare

import (
	"fmt"
	"strings"

	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats a regime comparison as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing both regimes
func (tf *TableFormatter) Format(report *Report) (string, error) {
	var sb strings.Builder
	result := report.Result

	// Header
	sb.WriteString("TAX REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 64) + "\n")
	if report.FinancialYear != "" {
		sb.WriteString(fmt.Sprintf("Financial Year:   %s\n", report.FinancialYear))
	}
	sb.WriteString(fmt.Sprintf("Gross Income:     %s\n", money.Rupees(report.Income)))
	sb.WriteString(fmt.Sprintf("Total Deductions: %s\n", money.Rupees(report.Deductions)))
	sb.WriteString("\n")

	// Column widths
	itemWidth := 24
	numWidth := 18

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		itemWidth, "Item",
		numWidth, "Old Regime",
		numWidth, "New Regime"))
	sb.WriteString(strings.Repeat("-", 64) + "\n")

	rows := []struct {
		label    string
		old, new decimal.Decimal
	}{
		{"Taxable Income", result.OldRegime.TaxableIncome, result.NewRegime.TaxableIncome},
		{"Base Tax", result.OldRegime.Tax, result.NewRegime.Tax},
		{report.CessLabel(), result.OldRegime.Cess, result.NewRegime.Cess},
		{"Total Tax Payable", result.OldRegime.TotalTax, result.NewRegime.TotalTax},
	}
	for _, row := range rows {
		sb.WriteString(tf.formatRow(row.label, row.old, row.new, itemWidth, numWidth))
	}

	sb.WriteString(strings.Repeat("=", 64) + "\n")

	// Recommendation
	sb.WriteString(fmt.Sprintf("\nRecommended:       %s%s\n", result.BetterRegime.Label(), tf.tieNote(result)))
	sb.WriteString(fmt.Sprintf("Projected Savings: %s\n", money.Rupees(result.Savings)))

	if len(report.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 64) + "\n")
		for _, rec := range report.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String(), nil
}

// formatRow formats a single comparison row
func (tf *TableFormatter) formatRow(label string, old, new decimal.Decimal, itemWidth, numWidth int) string {
	return fmt.Sprintf("%-*s %*s %*s\n",
		itemWidth, label,
		numWidth, money.Rupees(old),
		numWidth, money.Rupees(new))
}

func (tf *TableFormatter) tieNote(result domain.ComparisonResult) string {
	if result.OldRegime.TotalTax.Equal(result.NewRegime.TotalTax) {
		return " (tie)"
	}
	return ""
}

// FormatCompact creates a single-line summary
func (tf *TableFormatter) FormatCompact(report *Report) string {
	result := report.Result
	return fmt.Sprintf("Old: %s | New: %s | Better: %s | Savings: %s",
		money.Rupees(result.OldRegime.TotalTax),
		money.Rupees(result.NewRegime.TotalTax),
		result.BetterRegime,
		money.Rupees(result.Savings))
}
