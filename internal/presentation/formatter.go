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

// FormatRoots formats scan roots as JSON
func (f *Formatter) FormatRoots(roots RootsDTO) error {
	return f.encode(roots)
}

// FormatFlags formats feature flags as JSON
func (f *Formatter) FormatFlags(flags []FlagDTO) error {
	return f.encode(flags)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
