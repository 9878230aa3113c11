package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatEngines formats a list of engines as JSON
func (f *Formatter) FormatEngines(engines []EngineDTO) error {
	return f.encode(engines)
}

// FormatPlan formats a tier plan as JSON
func (f *Formatter) FormatPlan(plan PlanDTO) error {
	return f.encode(plan)
}

// FormatResult formats an arbitrary result as JSON
func (f *Formatter) FormatResult(result any) error {
	return f.encode(result)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
