// Package money formats rupee amounts the way Indian users read them.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// indian carries the lakh/crore grouping (first separator after three
// digits, then every two)
var indian = language.MustParse("en-IN")

// FormatINR renders d with Indian digit grouping (12,34,567.5). Amounts are
// rounded to two decimals and trailing fractional zeros are dropped.
//
// The integer part is grouped by x/text from an int64 and the paise are
// appended from the decimal itself, so no float conversion is involved.
// Callers bound amounts well inside int64 before they get here.
func FormatINR(d decimal.Decimal) string {
	negative := d.IsNegative()
	rounded := d.Abs().Round(2)

	_, frac, _ := strings.Cut(rounded.StringFixed(2), ".")
	frac = strings.TrimRight(frac, "0")

	out := message.NewPrinter(indian).Sprint(number.Decimal(rounded.IntPart()))
	if frac != "" {
		out += "." + frac
	}
	if negative && out != "0" {
		out = "-" + out
	}
	return out
}

// Rupees prefixes FormatINR with the rupee sign
func Rupees(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-₹" + FormatINR(d.Abs())
	}
	return "₹" + FormatINR(d)
}
