package scrape

import "github.com/jdkbench/jdkmig/internal/github"

// FilePair is a file present in both branches with different content.
type FilePair struct {
	Path      string `json:"path"`
	Java8URL  string `json:"java_8_url"`
	Java11URL string `json:"java_11_url"`
}

// CommonFiles returns the entries of search whose path also appears in
// reference, in search order.
func CommonFiles(search, reference []github.TreeEntry) []github.TreeEntry {
	paths := make(map[string]bool, len(reference))
	for _, e := range reference {
		paths[e.Path] = true
	}

	var out []github.TreeEntry
	for _, e := range search {
		if paths[e.Path] {
			out = append(out, e)
		}
	}
	return out
}

// ModifiedFiles pairs entries of the two branches that share a path but
// point at different blobs. The result follows java8 order, and a path
// listed more than once on either side yields every combination.
func ModifiedFiles(java8, java11 []github.TreeEntry) []FilePair {
	byPath := make(map[string][]github.TreeEntry, len(java11))
	for _, e := range java11 {
		byPath[e.Path] = append(byPath[e.Path], e)
	}

	var out []FilePair
	for _, e8 := range java8 {
		for _, e11 := range byPath[e8.Path] {
			if e8.URL != e11.URL {
				out = append(out, FilePair{Path: e11.Path, Java8URL: e8.URL, Java11URL: e11.URL})
			}
		}
	}
	return out
}
