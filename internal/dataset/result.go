package dataset

import "github.com/jdkbench/jdkmig/internal/codebleu"

// Result is a pair after migration: the generated Java 11 method and two
// CodeBLEU scores against the reference Java 11 method, one for the
// generated code and one for the unmodified Java 8 input as a baseline.
type Result struct {
	Pair
	Model         string         `json:"model,omitempty" yaml:"model,omitempty"`
	Generated     string         `json:"generated_java_11_string" yaml:"generated_java_11_string"`
	Java8Vs11     codebleu.Score `json:"java_8_11_comparison" yaml:"java_8_11_comparison"`
	GeneratedVs11 codebleu.Score `json:"java_11_11_comparison" yaml:"java_11_11_comparison"`
}

// LoadResults reads a results file written by SaveResults.
func LoadResults(path string) ([]Result, error) {
	var results []Result
	if err := readJSON(path, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// SaveResults writes results to path as a JSON array, replacing any
// existing file.
func SaveResults(path string, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	return writeJSON(path, results)
}

// ConcatResults loads every path and returns the results in order.
func ConcatResults(paths ...string) ([]Result, error) {
	var all []Result
	for _, p := range paths {
		rs, err := LoadResults(p)
		if err != nil {
			return nil, err
		}
		all = append(all, rs...)
	}
	return all, nil
}
