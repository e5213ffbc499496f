package output

import (
	"fmt"

	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/extract"
)

// MethodOutput is one extracted method.
type MethodOutput struct {
	Name string `yaml:"name" json:"name"`

	// Location is the file and 1-based line range, e.g. "Sample.java:4-6"
	Location string `yaml:"location" json:"location"`

	Length      int      `yaml:"length,omitempty" json:"length,omitempty"`
	Parameters  []string `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Fingerprint string   `yaml:"fingerprint,omitempty" json:"fingerprint,omitempty"`
	Source      string   `yaml:"source,omitempty" json:"source,omitempty"`
}

// SkippedOutput is a method that could not be isolated.
type SkippedOutput struct {
	Name   string `yaml:"name" json:"name"`
	Line   int    `yaml:"line" json:"line"`
	Reason string `yaml:"reason" json:"reason"`
}

// ExtractOutput is the result of extracting every method of one file.
type ExtractOutput struct {
	File    string          `yaml:"file" json:"file"`
	Count   int             `yaml:"count" json:"count"`
	Short   int             `yaml:"short,omitempty" json:"short,omitempty"`
	Methods []MethodOutput  `yaml:"methods" json:"methods"`
	Skipped []SkippedOutput `yaml:"skipped,omitempty" json:"skipped,omitempty"`
}

// ParamsOutput is the parameter list read from a method text.
type ParamsOutput struct {
	Parameters []string `yaml:"parameters" json:"parameters"`
	Count      int      `yaml:"count" json:"count"`
}

// PairOutput summarizes one dataset pair.
type PairOutput struct {
	Name         string `yaml:"name" json:"name"`
	Origin       string `yaml:"origin,omitempty" json:"origin,omitempty"`
	Java8Length  int    `yaml:"java8_length" json:"java8_length"`
	Java11Length int    `yaml:"java11_length" json:"java11_length"`
	SameParams   bool   `yaml:"same_params" json:"same_params"`
	Java8Source  string `yaml:"java8_source,omitempty" json:"java8_source,omitempty"`
	Java11Source string `yaml:"java11_source,omitempty" json:"java11_source,omitempty"`
}

// DatasetOutput lists the pairs of a dataset file.
type DatasetOutput struct {
	File  string       `yaml:"file" json:"file"`
	Count int          `yaml:"count" json:"count"`
	Pairs []PairOutput `yaml:"pairs" json:"pairs"`
}

// NewExtractOutput builds the full-detail output for an extraction result.
// Density is applied when the value is formatted.
func NewExtractOutput(file string, res *extract.FileResult) *ExtractOutput {
	out := &ExtractOutput{
		File:    file,
		Count:   len(res.Functions),
		Short:   res.Short,
		Methods: make([]MethodOutput, 0, len(res.Functions)),
	}
	for i := range res.Functions {
		fn := &res.Functions[i]
		out.Methods = append(out.Methods, MethodOutput{
			Name:        fn.Name,
			Location:    fmt.Sprintf("%s:%d-%d", file, fn.StartLine+1, fn.StartLine+fn.Length),
			Length:      fn.Length,
			Parameters:  fn.Parameters,
			Fingerprint: extract.Fingerprint(fn),
			Source:      fn.Source,
		})
	}
	for _, s := range res.Skipped {
		out.Skipped = append(out.Skipped, SkippedOutput{Name: s.Name, Line: s.Line, Reason: s.Err.Error()})
	}
	return out
}

// NewDatasetOutput builds the listing for a dataset.
func NewDatasetOutput(file string, ds dataset.Dataset) *DatasetOutput {
	out := &DatasetOutput{File: file, Count: len(ds), Pairs: make([]PairOutput, 0, len(ds))}
	for _, p := range ds {
		out.Pairs = append(out.Pairs, PairOutput{
			Name:         p.Name,
			Origin:       string(p.Origin),
			Java8Length:  p.Java8.Length,
			Java11Length: p.Java11.Length,
			SameParams:   extract.SameParameters(p.Java8.Params, p.Java11.Params),
			Java8Source:  p.Java8.Source,
			Java11Source: p.Java11.Source,
		})
	}
	return out
}
