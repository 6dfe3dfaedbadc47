package calculation

import (
	"github.com/finseva/finseva/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Slab table: the same six slabs are applied to both regimes
//    (0 / 5 / 10 / 15 / 20 / 30 percent, breakpoints every 3 lakh up to 15 lakh)
//
// 2. Old regime: the caller's aggregate deduction is subtracted in full
//
// 3. New regime: a fixed standard deduction of 75,000 replaces any itemized
//    deductions the caller supplies
//
// 4. Health and education cess: 4% of the slab tax (not of income)
//
// No rounding is applied here; callers round for display.

// SlabTax is the tax attributed to a single slab
type SlabTax struct {
	From   decimal.Decimal  `json:"from"`
	UpTo   *decimal.Decimal `json:"upTo,omitempty"`
	Rate   decimal.Decimal  `json:"rate"`
	Amount decimal.Decimal  `json:"amount"` // portion of taxable income inside the slab
	Tax    decimal.Decimal  `json:"tax"`
}

// RegimeTaxCalculator computes slab tax and cess for either regime
type RegimeTaxCalculator struct {
	FinancialYear     string
	Slabs             []domain.Slab
	CessRate          decimal.Decimal
	StandardDeduction decimal.Decimal // new regime only
}

// DefaultTaxRules returns the built-in slab table
func DefaultTaxRules() domain.TaxRules {
	return domain.TaxRules{
		FinancialYear: "2025-26",
		Slabs: []domain.Slab{
			{UpTo: limit(300000), Rate: decimal.Zero},
			{UpTo: limit(600000), Rate: decimal.NewFromFloat(0.05)},
			{UpTo: limit(900000), Rate: decimal.NewFromFloat(0.10)},
			{UpTo: limit(1200000), Rate: decimal.NewFromFloat(0.15)},
			{UpTo: limit(1500000), Rate: decimal.NewFromFloat(0.20)},
			{UpTo: nil, Rate: decimal.NewFromFloat(0.30)},
		},
		CessRate:                   decimal.NewFromFloat(0.04),
		NewRegimeStandardDeduction: decimal.NewFromInt(75000),
	}
}

func limit(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// NewDefaultRegimeTaxCalculator creates a calculator with the built-in slab table
func NewDefaultRegimeTaxCalculator() *RegimeTaxCalculator {
	return NewRegimeTaxCalculator(DefaultTaxRules())
}

// NewRegimeTaxCalculator creates a calculator with configurable rules. Any
// zero-valued field (no slabs, blank year, zero cess or zero standard
// deduction) takes the default value.
func NewRegimeTaxCalculator(rules domain.TaxRules) *RegimeTaxCalculator {
	defaults := DefaultTaxRules()
	slabs := append([]domain.Slab(nil), rules.Slabs...)
	if len(slabs) == 0 { // fallback defaults
		slabs = defaults.Slabs
	}
	year := rules.FinancialYear
	if year == "" {
		year = defaults.FinancialYear
	}
	cess := rules.CessRate
	if cess.IsZero() {
		cess = defaults.CessRate
	}
	standard := rules.NewRegimeStandardDeduction
	if standard.IsZero() {
		standard = defaults.NewRegimeStandardDeduction
	}
	return &RegimeTaxCalculator{
		FinancialYear:     year,
		Slabs:             slabs,
		CessRate:          cess,
		StandardDeduction: standard,
	}
}

// Rules returns the rules the calculator was built with
func (c *RegimeTaxCalculator) Rules() domain.TaxRules {
	return domain.TaxRules{
		FinancialYear:              c.FinancialYear,
		Slabs:                      append([]domain.Slab(nil), c.Slabs...),
		CessRate:                   c.CessRate,
		NewRegimeStandardDeduction: c.StandardDeduction,
	}
}

// EffectiveDeduction returns the deduction the regime actually allows
func (c *RegimeTaxCalculator) EffectiveDeduction(input domain.TaxInput) decimal.Decimal {
	if input.Regime == domain.RegimeOld {
		return input.Deductions
	}
	return c.StandardDeduction
}

// TaxableIncome is income less the effective deduction, floored at zero
func (c *RegimeTaxCalculator) TaxableIncome(input domain.TaxInput) decimal.Decimal {
	taxable := input.Income.Sub(c.EffectiveDeduction(input))
	if taxable.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return taxable
}

// Calculate computes taxable income, slab tax, cess and total tax
func (c *RegimeTaxCalculator) Calculate(input domain.TaxInput) domain.TaxResult {
	taxableIncome := c.TaxableIncome(input)

	tax := decimal.Zero
	for _, slab := range c.SlabBreakdown(input) {
		tax = tax.Add(slab.Tax)
	}

	cess := tax.Mul(c.CessRate)

	return domain.TaxResult{
		TaxableIncome: taxableIncome,
		Tax:           tax,
		Cess:          cess,
		TotalTax:      tax.Add(cess),
	}
}

// SlabBreakdown walks the slab table in ascending order and reports the
// portion of taxable income taxed in every slab. Unreached slabs are
// included with a zero amount.
func (c *RegimeTaxCalculator) SlabBreakdown(input domain.TaxInput) []SlabTax {
	taxableIncome := c.TaxableIncome(input)

	breakdown := make([]SlabTax, 0, len(c.Slabs))
	previousLimit := decimal.Zero
	for _, slab := range c.Slabs {
		entry := SlabTax{From: previousLimit, UpTo: slab.UpTo, Rate: slab.Rate}

		if taxableIncome.GreaterThan(previousLimit) {
			upper := taxableIncome
			if !slab.Unbounded() {
				upper = decimal.Min(taxableIncome, *slab.UpTo)
			}
			entry.Amount = upper.Sub(previousLimit)
			entry.Tax = entry.Amount.Mul(slab.Rate)
		}

		breakdown = append(breakdown, entry)
		if slab.Unbounded() {
			break
		}
		previousLimit = *slab.UpTo
	}

	return breakdown
}
