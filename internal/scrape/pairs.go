// Package scrape builds the web-scraped dataset: it pairs Java 8 and
// Java 11 branches of the same repositories, finds files changed between
// them, and mines method pairs whose Java 8 side uses an API removed or
// deprecated by Java 11. It also screens repositories for migration
// activity in their commits, issues and releases.
package scrape

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoPairs is returned when a pairs file holds no repository pairs.
var ErrNoPairs = errors.New("no repository pairs")

// RepoPair names the Java 8 and Java 11 branch pages of one repository.
type RepoPair struct {
	Java8URL  string `json:"java8_url" yaml:"java8_url"`
	Java11URL string `json:"java11_url" yaml:"java11_url"`
}

// ParseRepoPairs reads blank-line separated blocks whose first line is the
// Java 8 branch URL and second line the Java 11 branch URL.
func ParseRepoPairs(r io.Reader) ([]RepoPair, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if content == "" {
		return nil, ErrNoPairs
	}

	var pairs []RepoPair
	for i, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			return nil, fmt.Errorf("repo pair %d: expected two urls, got %q", i+1, block)
		}
		pairs = append(pairs, RepoPair{
			Java8URL:  strings.TrimSpace(lines[0]),
			Java11URL: strings.TrimSpace(lines[1]),
		})
	}
	return pairs, nil
}
