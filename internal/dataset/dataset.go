// Package dataset defines the Java 8 / Java 11 function pair records and
// their on-disk JSON form.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a dataset file does not exist.
var ErrNotFound = errors.New("dataset not found")

// Origin records how a pair was collected.
type Origin string

const (
	OriginSynthetic     Origin = "synthetic"
	OriginWebSameParams Origin = "web-same-params"
	OriginWebDiffParams Origin = "web-diff-params"
)

// Function is one side of a pair. Source is stored under "string" to keep
// the field names of existing datasets. Params is nil when the parameters
// were never parsed (synthetic pairs) and an empty list for a method
// without parameters; the two survive a round trip as null and [].
type Function struct {
	Name   string   `json:"name" yaml:"name"`
	Length int      `json:"length" yaml:"length"`
	Source string   `json:"string" yaml:"string"`
	URL    string   `json:"url,omitempty" yaml:"url,omitempty"`
	Params []string `json:"params" yaml:"params"`
}

// Pair is one dataset item: a Java 8 method and its Java 11 counterpart.
type Pair struct {
	Name   string   `json:"name" yaml:"name"`
	Origin Origin   `json:"origin,omitempty" yaml:"origin,omitempty"`
	Java8  Function `json:"java_8_function" yaml:"java_8_function"`
	Java11 Function `json:"java_11_function" yaml:"java_11_function"`
}

// Dataset is an ordered list of pairs.
type Dataset []Pair

// Load reads a dataset from a JSON array file.
func Load(path string) (Dataset, error) {
	var ds Dataset
	if err := readJSON(path, &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Save writes ds to path as a JSON array, replacing any existing file.
func Save(path string, ds Dataset) error {
	if ds == nil {
		ds = Dataset{}
	}
	return writeJSON(path, ds)
}

// Concat loads every path and returns the pairs in order.
func Concat(paths ...string) (Dataset, error) {
	var all Dataset
	for _, p := range paths {
		ds, err := Load(p)
		if err != nil {
			return nil, err
		}
		all = append(all, ds...)
	}
	return all, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// writeJSON replaces path atomically through a temporary file in the same
// directory.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}
