package report

import (
	"math"
	"sort"

	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/deprecation"
	"github.com/jdkbench/jdkmig/internal/extract"
)

// LengthStats summarizes the methods of one Java version.
type LengthStats struct {
	Average   float64 `yaml:"average_length" json:"average_length"`
	Max       int     `yaml:"maximum_length" json:"maximum_length"`
	Min       int     `yaml:"minimum_length" json:"minimum_length"`
	AvgParams float64 `yaml:"avg_params" json:"avg_params"`

	// Quartiles use linear interpolation between closest ranks.
	Median float64 `yaml:"median" json:"median"`
	Q1     float64 `yaml:"q1" json:"q1"`
	Q3     float64 `yaml:"q3" json:"q3"`
	IQR    float64 `yaml:"iqr" json:"iqr"`
	Range  int     `yaml:"range" json:"range"`

	// MalformedSignatures counts methods whose parameter list could not be
	// read. They add no parameters to AvgParams but stay in its divisor.
	MalformedSignatures int `yaml:"malformed_signatures" json:"malformed_signatures"`

	// Lengths holds every method length in ascending order.
	Lengths []int `yaml:"lengths" json:"lengths"`
}

// SignatureChanges counts how the signature and body fingerprints of each
// pair differ.
type SignatureChanges struct {
	Signature int `yaml:"signature_changed" json:"signature_changed"`
	BodyOnly  int `yaml:"body_only" json:"body_only"`
	Unchanged int `yaml:"unchanged" json:"unchanged"`
}

// DatasetReport describes a dataset.
type DatasetReport struct {
	Report    ReportHeader `yaml:"report" json:"report"`
	Functions int          `yaml:"functions" json:"functions"`
	Java8     LengthStats  `yaml:"java_8" json:"java_8"`
	Java11    LengthStats  `yaml:"java_11" json:"java_11"`

	// KeywordDistribution maps each term, or its category when terms are
	// mapped, to the percentage of Java 8 methods containing it. A method
	// with several terms counts once per term.
	KeywordDistribution map[string]float64 `yaml:"keyword_distribution" json:"keyword_distribution"`

	Signatures SignatureChanges `yaml:"signatures" json:"signatures"`
}

// DatasetStats computes length, parameter and keyword statistics for ds.
// With mapTerms, keyword counts are grouped by deprecation category.
func DatasetStats(ds dataset.Dataset, terms []string, mapTerms bool) *DatasetReport {
	r := &DatasetReport{
		Report:              newHeader(ReportTypeDataset),
		Functions:           len(ds),
		KeywordDistribution: make(map[string]float64),
	}
	if len(ds) == 0 {
		return r
	}

	var j8, j11 []dataset.Function
	counts := make(map[string]int)
	for _, p := range ds {
		j8 = append(j8, p.Java8)
		j11 = append(j11, p.Java11)

		for _, term := range deprecation.Matches(p.Java8.Source, terms) {
			key := term
			if mapTerms {
				key = deprecation.Categorize(term)
			}
			counts[key]++
		}

		sig, body := extract.CompareHashes(fingerprint(p.Java8), fingerprint(p.Java11))
		switch {
		case sig:
			r.Signatures.Signature++
		case body:
			r.Signatures.BodyOnly++
		default:
			r.Signatures.Unchanged++
		}
	}

	r.Java8 = lengthStats(j8)
	r.Java11 = lengthStats(j11)
	for k, n := range counts {
		r.KeywordDistribution[k] = float64(n) / float64(len(ds)) * 100
	}
	return r
}

// fingerprint hashes a malformed signature as having no parameters; those
// methods are counted in LengthStats.MalformedSignatures.
func fingerprint(fn dataset.Function) string {
	params, _ := extract.ExtractParameters(fn.Source)
	return extract.Fingerprint(&extract.ExtractedFunction{Name: fn.Name, Source: fn.Source, Parameters: params})
}

func lengthStats(fns []dataset.Function) LengthStats {
	s := LengthStats{Min: math.MaxInt, Lengths: make([]int, 0, len(fns))}
	var total, params int
	for _, fn := range fns {
		total += fn.Length
		s.Lengths = append(s.Lengths, fn.Length)
		s.Max = max(s.Max, fn.Length)
		s.Min = min(s.Min, fn.Length)
		ps, err := extract.ExtractParameters(fn.Source)
		if err != nil {
			s.MalformedSignatures++
			continue
		}
		params += len(ps)
	}
	n := float64(len(fns))
	s.Average = float64(total) / n
	s.AvgParams = float64(params) / n

	sort.Ints(s.Lengths)
	s.Q1 = Percentile(s.Lengths, 25)
	s.Median = Percentile(s.Lengths, 50)
	s.Q3 = Percentile(s.Lengths, 75)
	s.IQR = s.Q3 - s.Q1
	s.Range = s.Max - s.Min
	return s
}

// Percentile returns the p-th percentile of sorted values, interpolating
// linearly between the two closest ranks.
func Percentile(sorted []int, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	frac := rank - float64(lo)
	return float64(sorted[lo]) + float64(sorted[hi]-sorted[lo])*frac
}
