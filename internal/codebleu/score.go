package codebleu

// Score holds the CodeBLEU components for one candidate/reference pair.
// Every value lies in [0, 1].
type Score struct {
	CodeBLEU           float64 `json:"codebleu" yaml:"codebleu"`
	NgramMatch         float64 `json:"ngram_match_score" yaml:"ngram_match_score"`
	WeightedNgramMatch float64 `json:"weighted_ngram_match_score" yaml:"weighted_ngram_match_score"`
	SyntaxMatch        float64 `json:"syntax_match_score" yaml:"syntax_match_score"`
	DataflowMatch      float64 `json:"dataflow_match_score" yaml:"dataflow_match_score"`
}

// Metric names in reporting order.
const (
	MetricCodeBLEU      = "codebleu"
	MetricNgram         = "ngram_match_score"
	MetricWeightedNgram = "weighted_ngram_match_score"
	MetricSyntax        = "syntax_match_score"
	MetricDataflow      = "dataflow_match_score"
)

// Metrics lists the metric names in reporting order.
var Metrics = []string{MetricCodeBLEU, MetricNgram, MetricWeightedNgram, MetricSyntax, MetricDataflow}

// Get returns the named metric, or 0 for an unknown name.
func (s Score) Get(metric string) float64 {
	switch metric {
	case MetricCodeBLEU:
		return s.CodeBLEU
	case MetricNgram:
		return s.NgramMatch
	case MetricWeightedNgram:
		return s.WeightedNgramMatch
	case MetricSyntax:
		return s.SyntaxMatch
	case MetricDataflow:
		return s.DataflowMatch
	}
	return 0
}

// Failed reports whether the dataflow component could not be measured,
// which happens when the reference has no def-use edges. Averages skip
// such scores.
func (s Score) Failed() bool {
	return s.DataflowMatch == 0
}
