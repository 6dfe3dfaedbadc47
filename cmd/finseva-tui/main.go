package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/compare"
	"github.com/finseva/finseva/internal/config"
	"github.com/finseva/finseva/internal/tui"
)

func main() {
	// Optional tax rules file; the built-in slab table is used otherwise
	calc := calculation.NewDefaultRegimeTaxCalculator()
	if len(os.Args) > 1 {
		rulesPath := os.Args[1]
		if _, err := os.Stat(rulesPath); os.IsNotExist(err) {
			fmt.Printf("Error: Rules file not found: %s\n", rulesPath)
			os.Exit(1)
		}
		rules, err := config.NewInputParser().LoadTaxRules(rulesPath)
		if err != nil {
			fmt.Printf("Error loading rules: %v\n", err)
			os.Exit(1)
		}
		calc = calculation.NewRegimeTaxCalculator(rules)
	}

	model := tui.NewModel(compare.NewRegimeComparator(calc))

	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
