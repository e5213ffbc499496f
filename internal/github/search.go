package github

import (
	"context"
	"net/url"
	"strconv"
)

// Repository is a search hit.
type Repository struct {
	FullName      string `json:"full_name" yaml:"full_name"`
	HTMLURL       string `json:"html_url" yaml:"html_url"`
	Stars         int    `json:"stargazers_count" yaml:"stars"`
	Forks         int    `json:"forks_count" yaml:"forks"`
	DefaultBranch string `json:"default_branch" yaml:"default_branch"`
}

// SearchResult is one page of repository search results.
type SearchResult struct {
	TotalCount int          `json:"total_count" yaml:"total_count"`
	Items      []Repository `json:"items" yaml:"items"`
}

// SearchJavaRepos returns the first page of Java repositories with more
// than minStars stars, most forked first.
func (c *Client) SearchJavaRepos(ctx context.Context, minStars, perPage int) (*SearchResult, error) {
	q := url.Values{
		"q":     {"language:Java stars:>" + strconv.Itoa(minStars)},
		"sort":  {"forks"},
		"order": {"desc"},
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	q.Set("page", "1")

	var res SearchResult
	if err := c.getJSON(ctx, "/search/repositories", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RepoNames returns the full names of the repositories in res.
func (res *SearchResult) RepoNames() []string {
	names := make([]string, 0, len(res.Items))
	for _, r := range res.Items {
		if r.FullName != "" {
			names = append(names, r.FullName)
		}
	}
	return names
}
