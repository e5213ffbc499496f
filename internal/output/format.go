package output

import (
	"fmt"
	"strings"
)

// Format selects the encoding of command and tool output.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"

	DefaultFormat = FormatYAML
)

// Density selects how much of each method is printed: sparse gives name and
// location, medium adds length, parameters and fingerprint, dense adds the
// source.
type Density string

const (
	DensitySparse Density = "sparse"
	DensityMedium Density = "medium"
	DensityDense  Density = "dense"

	DefaultDensity = DensityMedium
)

var (
	formats   = []Format{FormatYAML, FormatJSON}
	densities = []Density{DensitySparse, DensityMedium, DensityDense}
)

// ParseFormat matches s case-insensitively against the known formats.
func ParseFormat(s string) (Format, error) {
	want := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range formats {
		if f == want {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format: %q (expected yaml or json)", s)
}

// ParseDensity matches s case-insensitively against the known densities.
func ParseDensity(s string) (Density, error) {
	want := Density(strings.ToLower(strings.TrimSpace(s)))
	for _, d := range densities {
		if d == want {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid density: %q (expected sparse, medium or dense)", s)
}

func (f Format) String() string  { return string(f) }
func (d Density) String() string { return string(d) }

func (d Density) IncludesParameters() bool { return d != DensitySparse }
func (d Density) IncludesSource() bool     { return d == DensityDense }
