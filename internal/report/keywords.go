package report

import (
	"slices"

	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/deprecation"
)

// CategoryRemoval counts deprecated term occurrences of one category.
type CategoryRemoval struct {
	Category string `yaml:"category" json:"category"`
	// Total counts Java 8 occurrences; Removed counts those whose category
	// no longer appears in the generated code.
	Total   int     `yaml:"total" json:"total"`
	Removed int     `yaml:"removed" json:"removed"`
	Rate    float64 `yaml:"rate" json:"rate"`
}

// KeywordReport measures how well generated code drops deprecated APIs.
type KeywordReport struct {
	Report ReportHeader `yaml:"report" json:"report"`

	Functions int `yaml:"functions" json:"functions"`
	// Succeeded counts generated methods without any deprecated term.
	Succeeded   int     `yaml:"succeeded" json:"succeeded"`
	SuccessRate float64 `yaml:"success_rate" json:"success_rate"`

	Categories []CategoryRemoval `yaml:"categories" json:"categories"`

	// TermsInJava8 and TermsRemoved give the overall removal rate, the
	// drop in term occurrences from input to output.
	TermsInJava8 int     `yaml:"terms_in_java_8" json:"terms_in_java_8"`
	TermsRemoved int     `yaml:"terms_removed" json:"terms_removed"`
	RemovalRate  float64 `yaml:"removal_rate" json:"removal_rate"`
}

// KeywordRemoval compares the deprecated terms of each Java 8 method with
// those left in the generated code.
func KeywordRemoval(results []dataset.Result, terms []string) *KeywordReport {
	r := &KeywordReport{Report: newHeader(ReportTypeKeywords), Functions: len(results)}

	byCat := make(map[string]*CategoryRemoval)
	for _, res := range results {
		in := categories(deprecation.Matches(res.Java8.Source, terms))
		out := categories(deprecation.Matches(res.Generated, terms))
		if len(out) == 0 {
			r.Succeeded++
		}
		r.TermsInJava8 += len(in)
		r.TermsRemoved += len(in) - len(out)

		for _, cat := range in {
			c, ok := byCat[cat]
			if !ok {
				c = &CategoryRemoval{Category: cat}
				byCat[cat] = c
			}
			c.Total++
			if !slices.Contains(out, cat) {
				c.Removed++
			}
		}
	}

	for _, name := range deprecation.Categories() {
		c, ok := byCat[name]
		if !ok {
			continue
		}
		c.Rate = float64(c.Removed) / float64(c.Total)
		r.Categories = append(r.Categories, *c)
	}
	if r.Functions > 0 {
		r.SuccessRate = float64(r.Succeeded) / float64(r.Functions)
	}
	if r.TermsInJava8 > 0 {
		r.RemovalRate = float64(r.TermsRemoved) / float64(r.TermsInJava8)
	}
	return r
}

func categories(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = deprecation.Categorize(t)
	}
	return out
}
