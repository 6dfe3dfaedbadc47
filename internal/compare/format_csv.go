package compare

import (
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(report *Report) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	result := report.Result

	// Write header
	if err := writer.Write([]string{"Item", "Old Regime", "New Regime"}); err != nil {
		return "", err
	}

	rows := [][]string{
		cf.formatRow("Taxable Income", result.OldRegime.TaxableIncome, result.NewRegime.TaxableIncome),
		cf.formatRow("Base Tax", result.OldRegime.Tax, result.NewRegime.Tax),
		cf.formatRow("Cess", result.OldRegime.Cess, result.NewRegime.Cess),
		cf.formatRow("Total Tax Payable", result.OldRegime.TotalTax, result.NewRegime.TotalTax),
		{"Better Regime", string(result.BetterRegime), string(result.BetterRegime)},
		{"Savings", result.Savings.StringFixed(2), result.Savings.StringFixed(2)},
	}
	if err := writer.WriteAll(rows); err != nil {
		return "", err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a single item as a CSV row
func (cf *CSVFormatter) formatRow(item string, old, new decimal.Decimal) []string {
	return []string{item, old.StringFixed(2), new.StringFixed(2)}
}
