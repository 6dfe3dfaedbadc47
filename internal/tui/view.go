package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/money"
	"github.com/finseva/finseva/internal/tui/components"
)

// View renders the current state of the application (required by tea.Model interface)
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneResults:
		content = m.renderResults()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = m.renderForm()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render("FinSeva · Tax Regime Comparator")
	scene := SubtitleStyle.Render(" " + m.currentScene.String())
	return title + scene + "\n"
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i, field := range m.fields {
		label := LabelStyle.Render(field.Label)
		if i == m.focus {
			label = FocusedLabelStyle.Render("› " + field.Label)
		}
		b.WriteString(label)
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	return BorderStyle.Render(b.String())
}

func (m Model) renderResults() string {
	if m.report == nil {
		return SubtitleStyle.Render("No comparison yet. Press esc to fill in the form.")
	}

	result := m.report.Result
	summary := fmt.Sprintf("Financial Year %s · Income %s · Deductions %s",
		m.report.FinancialYear, money.Rupees(m.report.Income), money.Rupees(m.report.Deductions))

	cessLabel := m.report.CessLabel()
	cards := components.CardRow(
		components.NewRegimeCard(result, domain.RegimeOld).WithCessLabel(cessLabel),
		components.NewRegimeCard(result, domain.RegimeNew).WithCessLabel(cessLabel),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		SubtitleStyle.Render(summary),
		"",
		renderResultTable(result, cessLabel),
		"",
		cards,
		"",
		renderRecommendation(result),
	)
}

// renderResultTable lays out both regimes side by side
func renderResultTable(result domain.ComparisonResult, cessLabel string) string {
	const labelWidth, numWidth = 20, 16

	row := func(label string, old, new decimal.Decimal, style lipgloss.Style) string {
		return style.Width(labelWidth).Render(label) +
			style.Width(numWidth).Align(lipgloss.Right).Render(money.Rupees(old)) +
			style.Width(numWidth).Align(lipgloss.Right).Render(money.Rupees(new))
	}

	header := TableHeaderStyle.Width(labelWidth).Render("") +
		TableHeaderStyle.Width(numWidth).Align(lipgloss.Right).Render("Old Regime") +
		TableHeaderStyle.Width(numWidth).Align(lipgloss.Right).Render("New Regime")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		row("Taxable Income", result.OldRegime.TaxableIncome, result.NewRegime.TaxableIncome, TableCellStyle),
		row("Base Tax", result.OldRegime.Tax, result.NewRegime.Tax, TableCellStyle),
		row(cessLabel, result.OldRegime.Cess, result.NewRegime.Cess, TableCellStyle),
		row("Total Tax", result.OldRegime.TotalTax, result.NewRegime.TotalTax, TableHighlightStyle),
	)
}

func renderRecommendation(result domain.ComparisonResult) string {
	if result.OldRegime.TotalTax.Equal(result.NewRegime.TotalTax) {
		return WinnerStyle.Render("Both regimes cost the same. " + result.BetterRegime.Label() + " recommended.")
	}
	return WinnerStyle.Render(fmt.Sprintf("%s recommended · you save %s",
		result.BetterRegime.Label(), money.Rupees(result.Savings)))
}

func (m Model) renderHelp() string {
	lines := []string{
		TitleStyle.Render("Keyboard Shortcuts"),
		"",
		formatShortcut("tab / ↓", "Next field"),
		formatShortcut("shift+tab / ↑", "Previous field"),
		formatShortcut("enter", "Compare regimes"),
		formatShortcut("esc", "Switch between form and results"),
		formatShortcut("?", "Toggle help"),
		formatShortcut("ctrl+c", "Quit"),
		"",
		SubtitleStyle.Render("Gross Salary is income; every other field is summed as a deduction."),
		SubtitleStyle.Render("The new regime applies its fixed standard deduction instead."),
	}
	return BorderStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneForm:
		compareHint := formatShortcut("enter", "compare")
		if !m.CanCompare() {
			compareHint = ErrorStyle.Render("fix errors to compare")
		}
		shortcuts = []string{formatShortcut("tab", "next"), compareHint, formatShortcut("?", "help")}
	case SceneResults:
		shortcuts = []string{formatShortcut("esc", "edit"), formatShortcut("?", "help"), formatShortcut("q", "quit")}
	default:
		shortcuts = []string{formatShortcut("esc", "back")}
	}
	return StatusBarStyle.Render(strings.Join(shortcuts, "  "))
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}
