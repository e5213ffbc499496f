package scrape

import (
	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/deprecation"
	"github.com/jdkbench/jdkmig/internal/extract"
)

// DefaultMinFunctionLength is the shortest method, in lines, kept as a
// candidate.
const DefaultMinFunctionLength = 10

// Candidates holds the pairs mined from one or more file pairs.
type Candidates struct {
	SameParams dataset.Dataset
	DiffParams dataset.Dataset
	// Skipped counts methods dropped because their body or signature could
	// not be delimited.
	Skipped int
}

// Add appends other to c.
func (c *Candidates) Add(other *Candidates) {
	c.SameParams = append(c.SameParams, other.SameParams...)
	c.DiffParams = append(c.DiffParams, other.DiffParams...)
	c.Skipped += other.Skipped
}

// Len is the number of pairs in both sets.
func (c *Candidates) Len() int {
	return len(c.SameParams) + len(c.DiffParams)
}

// CandidatesFromSources extracts the methods of both versions of a file and
// pairs them. A Java 8 method is kept when it mentions a FileFilterTerms
// entry and the Java 11 file has a method of the same name with different
// text. Pairs with identical parameter lists go to SameParams, the rest to
// DiffParams. A file that does not parse returns the parser error.
func CandidatesFromSources(ex *extract.FileExtractor, java8Src, java11Src, java8URL, java11URL string, minLength int) (*Candidates, error) {
	j8, err := ex.ExtractAll([]byte(java8Src), minLength)
	if err != nil {
		return nil, err
	}
	j11, err := ex.ExtractAll([]byte(java11Src), minLength)
	if err != nil {
		return nil, err
	}

	out := &Candidates{Skipped: len(j8.Skipped) + len(j11.Skipped)}
	for _, f8 := range j8.Functions {
		if !deprecation.Contains(f8.Source, deprecation.FileFilterTerms) {
			continue
		}
		for _, f11 := range j11.Functions {
			if f8.Name != f11.Name || f8.Source == f11.Source {
				continue
			}
			pair := dataset.Pair{
				Name:   f8.Name,
				Java8:  toFunction(f8, java8URL),
				Java11: toFunction(f11, java11URL),
			}
			if extract.SameParameters(f8.Parameters, f11.Parameters) {
				pair.Origin = dataset.OriginWebSameParams
				out.SameParams = append(out.SameParams, pair)
			} else {
				pair.Origin = dataset.OriginWebDiffParams
				out.DiffParams = append(out.DiffParams, pair)
			}
		}
	}
	return out, nil
}

func toFunction(fn extract.ExtractedFunction, url string) dataset.Function {
	return dataset.Function{
		Name:   fn.Name,
		Length: fn.Length,
		Source: fn.Source,
		URL:    url,
		Params: fn.Parameters,
	}
}
