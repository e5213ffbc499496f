package report

import (
	"github.com/jdkbench/jdkmig/internal/codebleu"
	"github.com/jdkbench/jdkmig/internal/dataset"
)

// MetricAverage compares one metric for generated code and for the Java 8
// input, both scored against the Java 11 reference.
type MetricAverage struct {
	Metric    string  `yaml:"metric" json:"metric"`
	Generated float64 `yaml:"generated" json:"generated"`
	Baseline  float64 `yaml:"baseline" json:"baseline"`
	// Difference is Baseline minus Generated.
	Difference float64 `yaml:"difference" json:"difference"`
}

// ScoresReport averages the scores of a results set.
type ScoresReport struct {
	Report ReportHeader `yaml:"report" json:"report"`

	// Scored counts results with a usable dataflow score; Total counts all.
	Scored int `yaml:"scored" json:"scored"`
	Total  int `yaml:"total" json:"total"`

	Metrics []MetricAverage `yaml:"metrics" json:"metrics"`

	// CompleteMatches names results whose generated code scored 1.
	CompleteMatches []string `yaml:"complete_matches" json:"complete_matches"`
	// Failed names results skipped because dataflow could not be scored.
	Failed []string `yaml:"failed" json:"failed"`
}

// AverageScores averages every metric over the results whose generated
// code has a dataflow score.
func AverageScores(results []dataset.Result) *ScoresReport {
	r := &ScoresReport{
		Report:          newHeader(ReportTypeScores),
		Total:           len(results),
		CompleteMatches: []string{},
		Failed:          []string{},
	}

	generated := make(map[string]float64)
	baseline := make(map[string]float64)
	for _, res := range results {
		if res.GeneratedVs11.Failed() {
			r.Failed = append(r.Failed, res.Name)
			continue
		}
		r.Scored++
		if res.GeneratedVs11.CodeBLEU == 1 {
			r.CompleteMatches = append(r.CompleteMatches, res.Name)
		}
		for _, m := range codebleu.Metrics {
			generated[m] += res.GeneratedVs11.Get(m)
			baseline[m] += res.Java8Vs11.Get(m)
		}
	}

	for _, m := range codebleu.Metrics {
		avg := MetricAverage{Metric: m}
		if r.Scored > 0 {
			avg.Generated = generated[m] / float64(r.Scored)
			avg.Baseline = baseline[m] / float64(r.Scored)
			avg.Difference = avg.Baseline - avg.Generated
		}
		r.Metrics = append(r.Metrics, avg)
	}
	return r
}
