package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Formatter is the interface for formatting command output.
type Formatter interface {
	// Format formats a value according to the specified density level.
	Format(v any, density Density) (string, error)

	// FormatToWriter writes formatted output directly to a writer.
	FormatToWriter(w io.Writer, v any, density Density) error
}

// YAMLFormatter formats values as YAML output.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format formats a value as YAML.
func (f *YAMLFormatter) Format(v any, density Density) (string, error) {
	var buf bytes.Buffer
	if err := f.FormatToWriter(&buf, v, density); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatToWriter writes YAML output to a writer.
func (f *YAMLFormatter) FormatToWriter(w io.Writer, v any, density Density) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(applyDensityFilter(v, density))
}

// JSONFormatter formats values as JSON output.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format formats a value as JSON.
func (f *JSONFormatter) Format(v any, density Density) (string, error) {
	var buf bytes.Buffer
	if err := f.FormatToWriter(&buf, v, density); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatToWriter writes JSON output to a writer.
func (f *JSONFormatter) FormatToWriter(w io.Writer, v any, density Density) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(applyDensityFilter(v, density))
}

// applyDensityFilter returns a copy of v with fields above the density
// level cleared. Types without density handling pass through unchanged.
func applyDensityFilter(v any, density Density) any {
	switch out := v.(type) {
	case *ExtractOutput:
		cp := *out
		cp.Methods = make([]MethodOutput, len(out.Methods))
		for i, m := range out.Methods {
			if !density.IncludesParameters() {
				m.Length = 0
				m.Parameters = nil
				m.Fingerprint = ""
			}
			if !density.IncludesSource() {
				m.Source = ""
			}
			cp.Methods[i] = m
		}
		return &cp
	case *DatasetOutput:
		if density.IncludesSource() {
			return out
		}
		cp := *out
		cp.Pairs = make([]PairOutput, len(out.Pairs))
		for i, p := range out.Pairs {
			p.Java8Source = ""
			p.Java11Source = ""
			cp.Pairs[i] = p
		}
		return &cp
	}
	return v
}

// GetFormatter returns a formatter for the specified format.
func GetFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatYAML:
		return NewYAMLFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
