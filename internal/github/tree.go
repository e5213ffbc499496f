package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// TreeEntry is one node of a recursive git tree.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	// URL is the blob API URL. Two entries with the same URL have the same
	// content.
	URL string `json:"url"`
}

// BranchAPIURL converts a branch page URL such as
// https://github.com/jenkinsci/jenkins/tree/stable-2.346 into the branch
// endpoint under apiBase. Everything after "/tree/" is taken as the branch
// name, so names containing '/' survive.
func BranchAPIURL(webURL, apiBase string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(webURL))
	if err != nil {
		return "", fmt.Errorf("parse branch url %q: %w", webURL, err)
	}

	owner, rest, ok := strings.Cut(strings.Trim(u.Path, "/"), "/")
	if !ok || owner == "" {
		return "", fmt.Errorf("branch url %q: missing owner/repo", webURL)
	}
	name, branch, ok := strings.Cut(rest, "/tree/")
	if !ok || name == "" || branch == "" {
		return "", fmt.Errorf("branch url %q: expected /<owner>/<repo>/tree/<branch>", webURL)
	}

	if apiBase == "" {
		apiBase = DefaultAPIURL
	}
	return strings.TrimRight(apiBase, "/") + "/repos/" + owner + "/" + name + "/branches/" + branch, nil
}

type branchResponse struct {
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

type treeResponse struct {
	Tree      []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

// ErrTreeTruncated is returned with a partial file list when GitHub cut the
// recursive tree short.
var ErrTreeTruncated = errors.New("tree truncated by github")

// JavaFiles lists the .java blobs in the branch at branchURL, a URL
// returned by BranchAPIURL. The branch is resolved to its head commit and
// the commit's tree is read recursively. A truncated tree yields the files
// received along with an error wrapping ErrTreeTruncated.
func (c *Client) JavaFiles(ctx context.Context, branchURL string) ([]TreeEntry, error) {
	idx := strings.Index(branchURL, "branches/")
	if idx < 0 {
		return nil, fmt.Errorf("not a branch url: %s", branchURL)
	}

	var branch branchResponse
	if err := c.getJSON(ctx, branchURL, nil, &branch); err != nil {
		return nil, err
	}
	if branch.Commit.SHA == "" {
		return nil, fmt.Errorf("branch %s: no head commit", branchURL)
	}

	treeURL := branchURL[:idx] + "git/trees/" + branch.Commit.SHA
	var tree treeResponse
	if err := c.getJSON(ctx, treeURL, url.Values{"recursive": {"1"}}, &tree); err != nil {
		return nil, err
	}

	var files []TreeEntry
	for _, e := range tree.Tree {
		if e.Type == "blob" && strings.HasSuffix(e.Path, ".java") {
			files = append(files, e)
		}
	}
	if tree.Truncated {
		return files, fmt.Errorf("%s: %w", treeURL, ErrTreeTruncated)
	}
	return files, nil
}
