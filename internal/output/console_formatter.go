package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter prints a plain-text summary. Verbose adds the slab walk and assumptions.
type ConsoleFormatter struct {
	Verbose bool
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(calc *Calculation) ([]byte, error) {
	var buf bytes.Buffer
	r := calc.Result

	fmt.Fprintf(&buf, "%s (FY %s)\n", calc.Regime.Label(), calc.FinancialYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 40))
	fmt.Fprintf(&buf, "  Income:         %s\n", FormatCurrency(calc.Income))
	fmt.Fprintf(&buf, "  Deduction:      %s\n", FormatCurrency(calc.Deductions))
	fmt.Fprintf(&buf, "  Taxable Income: %s\n", FormatCurrency(r.TaxableIncome))

	if c.Verbose {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "  Slab breakdown:")
		for _, slab := range calc.Slabs {
			fmt.Fprintf(&buf, "    %-28s @ %-4s %s\n", SlabRange(slab), FormatPercentage(slab.Rate), FormatCurrency(slab.Tax))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintf(&buf, "  Base Tax:       %s\n", FormatCurrency(r.Tax))
	fmt.Fprintf(&buf, "  Cess:           %s\n", FormatCurrency(r.Cess))
	fmt.Fprintf(&buf, "  Total Tax:      %s\n", FormatCurrency(r.TotalTax))

	if c.Verbose {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Assumptions:")
		for _, a := range DefaultAssumptions {
			fmt.Fprintf(&buf, "  • %s\n", a)
		}
	}
	return buf.Bytes(), nil
}
