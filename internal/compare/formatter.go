package compare

import "strings"

// Formatter renders a comparison report
type Formatter interface {
	Format(report *Report) (string, error)
}

// GetFormatterByName returns a formatter for the given name, or nil if unknown
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(name) {
	case "", "table", "console":
		return &TableFormatter{}
	case "json":
		return &JSONFormatter{Pretty: true}
	case "json-compact":
		return &JSONFormatter{}
	case "csv":
		return &CSVFormatter{}
	default:
		return nil
	}
}
