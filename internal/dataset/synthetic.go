package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// SyntheticEntry is one hand-written pair in the synthetic JSON source.
type SyntheticEntry struct {
	Name   string `json:"name"`
	Java8  string `json:"java8"`
	Java11 string `json:"java11"`
}

// ImportSynthetic reads a JSON array of {name, java8, java11} objects and
// builds a dataset. Lengths count the '\n'-separated pieces of each source,
// so a trailing newline adds one.
func ImportSynthetic(r io.Reader) (Dataset, error) {
	var entries []SyntheticEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode synthetic entries: %w", err)
	}

	ds := make(Dataset, 0, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("synthetic entry %d: missing name", i)
		}
		ds = append(ds, Pair{
			Name:   e.Name,
			Origin: OriginSynthetic,
			Java8:  NewFunction(e.Name, e.Java8),
			Java11: NewFunction(e.Name, e.Java11),
		})
	}
	return ds, nil
}

// NewFunction builds a Function from raw source without a URL or parsed
// parameters.
func NewFunction(name, source string) Function {
	return Function{
		Name:   name,
		Length: len(strings.Split(source, "\n")),
		Source: source,
	}
}
