package output

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/extract"
)

// TestGetFormatter tests that GetFormatter returns the matching formatter
func TestGetFormatter(t *testing.T) {
	f, err := GetFormatter(FormatYAML)
	if err != nil {
		t.Fatalf("GetFormatter(FormatYAML) failed: %v", err)
	}
	if _, ok := f.(*YAMLFormatter); !ok {
		t.Errorf("expected *YAMLFormatter, got %T", f)
	}

	f, err = GetFormatter(FormatJSON)
	if err != nil {
		t.Fatalf("GetFormatter(FormatJSON) failed: %v", err)
	}
	if _, ok := f.(*JSONFormatter); !ok {
		t.Errorf("expected *JSONFormatter, got %T", f)
	}

	if _, err := GetFormatter(Format("cgf")); err == nil {
		t.Error("GetFormatter should return error for unknown format")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{" JSON ", FormatJSON, false},
		{"Yaml", FormatYAML, false},
		{"cgf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDensity(t *testing.T) {
	tests := []struct {
		input   string
		want    Density
		wantErr bool
	}{
		{"sparse", DensitySparse, false},
		{"MEDIUM", DensityMedium, false},
		{"dense", DensityDense, false},
		{"smart", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDensity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDensity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDensity(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDensityIncludes(t *testing.T) {
	tests := []struct {
		density Density
		params  bool
		source  bool
	}{
		{DensitySparse, false, false},
		{DensityMedium, true, false},
		{DensityDense, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.density.String(), func(t *testing.T) {
			if got := tt.density.IncludesParameters(); got != tt.params {
				t.Errorf("IncludesParameters() = %v, want %v", got, tt.params)
			}
			if got := tt.density.IncludesSource(); got != tt.source {
				t.Errorf("IncludesSource() = %v, want %v", got, tt.source)
			}
		})
	}
}

func sampleResult() *extract.FileResult {
	return &extract.FileResult{
		Functions: []extract.ExtractedFunction{{
			Name:       "add",
			StartLine:  9,
			Length:     5,
			Source:     "int add(int a, int b) {\n  return a + b;\n}\n",
			Parameters: []string{"int a", "int b"},
		}},
		Skipped: []extract.SkippedMethod{{Name: "open", Line: 20, Err: errors.New("unbalanced")}},
		Short:   2,
	}
}

func TestNewExtractOutput(t *testing.T) {
	out := NewExtractOutput("Sample.java", sampleResult())

	if out.Count != 1 || out.Short != 2 {
		t.Errorf("unexpected counts: %+v", out)
	}
	m := out.Methods[0]
	if m.Location != "Sample.java:10-14" {
		t.Errorf("location = %s, want Sample.java:10-14", m.Location)
	}
	if !strings.Contains(m.Fingerprint, ":") {
		t.Errorf("fingerprint = %q", m.Fingerprint)
	}
	if len(out.Skipped) != 1 || out.Skipped[0].Reason != "unbalanced" {
		t.Errorf("skipped = %+v", out.Skipped)
	}
}

func TestYAMLFormatterDensity(t *testing.T) {
	out := NewExtractOutput("Sample.java", sampleResult())
	f := NewYAMLFormatter()

	sparse, err := f.Format(out, DensitySparse)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if strings.Contains(sparse, "parameters:") || strings.Contains(sparse, "source:") {
		t.Errorf("sparse output has detail fields:\n%s", sparse)
	}
	if !strings.Contains(sparse, "location: Sample.java:10-14") {
		t.Errorf("sparse output missing location:\n%s", sparse)
	}

	medium, _ := f.Format(out, DensityMedium)
	if !strings.Contains(medium, "parameters:") || strings.Contains(medium, "source:") {
		t.Errorf("unexpected medium output:\n%s", medium)
	}

	dense, _ := f.Format(out, DensityDense)
	if !strings.Contains(dense, "source:") {
		t.Errorf("dense output missing source:\n%s", dense)
	}

	// Filtering works on a copy.
	if out.Methods[0].Source == "" {
		t.Error("formatting modified the input value")
	}
}

func TestJSONFormatterDataset(t *testing.T) {
	ds := dataset.Dataset{{
		Name:   "encode",
		Origin: dataset.OriginWebSameParams,
		Java8:  dataset.Function{Name: "encode", Length: 6, Source: "a", Params: []string{"int x"}},
		Java11: dataset.Function{Name: "encode", Length: 4, Source: "b", Params: []string{"int x"}},
	}}
	out := NewDatasetOutput("web.json", ds)

	s, err := NewJSONFormatter().Format(out, DensityMedium)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	var decoded DatasetOutput
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, s)
	}
	if decoded.Count != 1 || !decoded.Pairs[0].SameParams {
		t.Errorf("unexpected decoded output: %+v", decoded)
	}
	if decoded.Pairs[0].Java8Source != "" {
		t.Error("medium density should omit sources")
	}

	s, _ = NewJSONFormatter().Format(out, DensityDense)
	if !strings.Contains(s, `"java8_source": "a"`) {
		t.Errorf("dense output missing source:\n%s", s)
	}
}

func TestFormatterPassesThroughOtherTypes(t *testing.T) {
	s, err := NewYAMLFormatter().Format(&ParamsOutput{Parameters: []string{"int a"}, Count: 1}, DensitySparse)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(s, "- int a") {
		t.Errorf("unexpected output:\n%s", s)
	}
}
