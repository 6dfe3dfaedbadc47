package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/money"
	"github.com/finseva/finseva/internal/tui/tuistyles"
)

// RegimeCard summarises one regime's result
type RegimeCard struct {
	Regime      domain.Regime
	Result      domain.TaxResult
	Recommended bool
	Width       int
	CessLabel   string
}

// NewRegimeCard creates a card for one side of a comparison
func NewRegimeCard(comparison domain.ComparisonResult, regime domain.Regime) *RegimeCard {
	return &RegimeCard{
		Regime:      regime,
		Result:      comparison.Result(regime),
		Recommended: comparison.BetterRegime == regime,
		Width:       34,
		CessLabel:   "Cess",
	}
}

// WithCessLabel sets the label of the cess line, e.g. "Cess (4%)"
func (c *RegimeCard) WithCessLabel(label string) *RegimeCard {
	c.CessLabel = label
	return c
}

// WithWidth sets the card width
func (c *RegimeCard) WithWidth(width int) *RegimeCard {
	c.Width = width
	return c
}

// Render returns the styled card
func (c *RegimeCard) Render() string {
	title := tuistyles.TableHeaderStyle.Render(c.Regime.Label())
	if c.Recommended {
		title += " " + tuistyles.WinnerStyle.Render("✓ recommended")
	}

	rows := []string{
		title,
		"",
		metricLine("Taxable Income", c.Result.TaxableIncome),
		metricLine("Base Tax", c.Result.Tax),
		metricLine(c.CessLabel, c.Result.Cess),
		"",
		tuistyles.MetricLabelStyle.Render("Total Tax Payable"),
		tuistyles.MetricValueStyle.Render(money.Rupees(c.Result.TotalTax)),
	}

	return tuistyles.CardStyle(c.Recommended, c.Width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func metricLine(label string, amount decimal.Decimal) string {
	return tuistyles.MetricLabelStyle.Render(label+": ") + tuistyles.TableCellStyle.Render(money.Rupees(amount))
}

// CardRow renders cards side by side
func CardRow(cards ...*RegimeCard) string {
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, card.Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
