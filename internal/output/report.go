// Package output renders single-regime tax calculations in the formats the CLI offers.
package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/money"
)

// Calculation is one regime's result with the inputs and slab walk behind it
type Calculation struct {
	Regime        domain.Regime         `json:"regime"`
	FinancialYear string                `json:"financialYear"`
	Income        decimal.Decimal       `json:"income"`
	Deductions    decimal.Decimal       `json:"deductions"`
	Result        domain.TaxResult      `json:"result"`
	Slabs         []calculation.SlabTax `json:"slabs"`
}

// NewCalculation runs calc on input and captures the breakdown
func NewCalculation(calc *calculation.RegimeTaxCalculator, input domain.TaxInput) *Calculation {
	return &Calculation{
		Regime:        input.Regime,
		FinancialYear: calc.FinancialYear,
		Income:        input.Income,
		Deductions:    calc.EffectiveDeduction(input),
		Result:        calc.Calculate(input),
		Slabs:         calc.SlabBreakdown(input),
	}
}

// Formatter renders a calculation
type Formatter interface {
	Name() string
	Format(calc *Calculation) ([]byte, error)
}

// GetFormatterByName returns a formatter for the given name, or nil if unknown
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(name) {
	case "", "console", "text":
		return ConsoleFormatter{}
	case "verbose":
		return ConsoleFormatter{Verbose: true}
	case "json":
		return JSONFormatter{}
	case "csv":
		return CSVFormatter{}
	case "html":
		return HTMLFormatter{}
	default:
		return nil
	}
}

// FormatCurrency renders an amount in rupees with Indian grouping
func FormatCurrency(amount decimal.Decimal) string {
	return money.Rupees(amount)
}

// FormatPercentage renders a rate such as 0.05 as "5%"
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// SlabRange describes a slab's bounds for display
func SlabRange(slab calculation.SlabTax) string {
	if slab.UpTo == nil {
		return fmt.Sprintf("above %s", FormatCurrency(slab.From))
	}
	return fmt.Sprintf("%s - %s", FormatCurrency(slab.From), FormatCurrency(*slab.UpTo))
}
