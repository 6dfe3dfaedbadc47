package output

import (
	"bytes"
	_ "embed"
	"html/template"
)

// HTMLFormatter produces a standalone HTML page
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/calculation.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("calculation").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"slab": SlabRange,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(calc *Calculation) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*Calculation
		Assumptions []string
	}{calc, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
