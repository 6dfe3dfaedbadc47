package output

import "encoding/json"

// JSONFormatter produces indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(calc *Calculation) ([]byte, error) {
	data, err := json.MarshalIndent(calc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
