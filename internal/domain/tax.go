package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Regime identifies one of the two mutually exclusive income-tax rule sets.
type Regime string

const (
	// RegimeOld permits itemized deductions.
	RegimeOld Regime = "old"
	// RegimeNew allows only the fixed standard deduction.
	RegimeNew Regime = "new"
)

// ParseRegime converts user input into a Regime
func ParseRegime(s string) (Regime, error) {
	switch Regime(strings.ToLower(strings.TrimSpace(s))) {
	case RegimeOld:
		return RegimeOld, nil
	case RegimeNew:
		return RegimeNew, nil
	default:
		return "", fmt.Errorf("unknown regime %q (expected old or new)", s)
	}
}

// Valid reports whether r is one of the known regimes
func (r Regime) Valid() bool {
	return r == RegimeOld || r == RegimeNew
}

// Label returns the display label used in reports
func (r Regime) Label() string {
	switch r {
	case RegimeOld:
		return "OLD REGIME"
	case RegimeNew:
		return "NEW REGIME"
	default:
		return "UNKNOWN"
	}
}

// TaxInput is a single calculation request
type TaxInput struct {
	Income     decimal.Decimal `json:"income"`
	Deductions decimal.Decimal `json:"deductions"`
	Regime     Regime          `json:"regime"`
}

// TaxResult holds the outcome of a single-regime calculation.
// TotalTax is always Tax + Cess.
type TaxResult struct {
	TaxableIncome decimal.Decimal `json:"taxableIncome"`
	Tax           decimal.Decimal `json:"tax"`
	Cess          decimal.Decimal `json:"cess"`
	TotalTax      decimal.Decimal `json:"totalTax"`
}

// ComparisonResult pairs the old and new regime results with a recommendation
type ComparisonResult struct {
	OldRegime    TaxResult       `json:"oldRegime"`
	NewRegime    TaxResult       `json:"newRegime"`
	BetterRegime Regime          `json:"betterRegime"`
	Savings      decimal.Decimal `json:"savings"`
}

// Result returns the sub-result for the given regime
func (c ComparisonResult) Result(r Regime) TaxResult {
	if r == RegimeOld {
		return c.OldRegime
	}
	return c.NewRegime
}

// Slab is one marginal-rate bracket. A nil UpTo marks the unbounded top slab.
type Slab struct {
	UpTo *decimal.Decimal `yaml:"up_to,omitempty" json:"upTo,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the slab has no upper limit
func (s Slab) Unbounded() bool {
	return s.UpTo == nil
}

// TaxRules contains the regulatory data the calculator applies to both regimes
type TaxRules struct {
	FinancialYear              string          `yaml:"financial_year" json:"financialYear"`
	Slabs                      []Slab          `yaml:"slabs" json:"slabs"`
	CessRate                   decimal.Decimal `yaml:"cess_rate" json:"cessRate"`
	NewRegimeStandardDeduction decimal.Decimal `yaml:"new_regime_standard_deduction" json:"newRegimeStandardDeduction"`
}
