package output

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"The same slab table applies to both regimes",
	"Old regime: declared deductions are subtracted from income in full",
	"New regime: only the fixed standard deduction is allowed",
	"Health and education cess is charged on the slab tax, not on income",
	"Surcharge, rebate u/s 87A and capital gains are not modeled",
}
