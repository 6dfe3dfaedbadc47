package output

import (
	"bytes"
	"encoding/csv"
)

// CSVFormatter writes one row per slab followed by the totals
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(calc *Calculation) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"Row", "From", "UpTo", "Rate", "Amount", "Tax"}); err != nil {
		return nil, err
	}
	for _, slab := range calc.Slabs {
		upTo := ""
		if slab.UpTo != nil {
			upTo = slab.UpTo.StringFixed(2)
		}
		row := []string{"slab", slab.From.StringFixed(2), upTo, slab.Rate.String(), slab.Amount.StringFixed(2), slab.Tax.StringFixed(2)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	r := calc.Result
	totals := [][]string{
		{"taxable_income", "", "", "", "", r.TaxableIncome.StringFixed(2)},
		{"tax", "", "", "", "", r.Tax.StringFixed(2)},
		{"cess", "", "", "", "", r.Cess.StringFixed(2)},
		{"total_tax", "", "", "", "", r.TotalTax.StringFixed(2)},
	}
	if err := w.WriteAll(totals); err != nil {
		return nil, err
	}
	return buf.Bytes(), w.Error()
}
