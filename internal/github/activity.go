package github

import (
	"context"
	"net/url"
	"strconv"
)

// PageSize is the per_page value used for list endpoints.
const PageSize = 100

// Commit is a commit list entry.
type Commit struct {
	NodeID  string `json:"node_id"`
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

type commitResponse struct {
	NodeID string `json:"node_id"`
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
	} `json:"commit"`
}

// Issue is an issue list entry. Body is nil when the issue has no body.
type Issue struct {
	Number int     `json:"number"`
	Title  string  `json:"title"`
	Body   *string `json:"body"`
}

type issueResponse struct {
	Issue
	PullRequest *struct{} `json:"pull_request"`
}

// Release is a release list entry. Body is nil when the release has no
// notes.
type Release struct {
	TagName string  `json:"tag_name"`
	Body    *string `json:"body"`
}

func pageQuery() url.Values {
	return url.Values{"per_page": {strconv.Itoa(PageSize)}, "page": {"1"}}
}

// Commits returns the first page of commits of repo ("owner/name").
func (c *Client) Commits(ctx context.Context, repo string) ([]Commit, error) {
	var raw []commitResponse
	if err := c.getJSON(ctx, "/repos/"+repo+"/commits", pageQuery(), &raw); err != nil {
		return nil, err
	}
	out := make([]Commit, len(raw))
	for i, r := range raw {
		out[i] = Commit{NodeID: r.NodeID, SHA: r.SHA, Message: r.Commit.Message}
	}
	return out, nil
}

// Issues returns the first page of open issues of repo. Entries that are
// pull requests are dropped and counted in pullRequests.
func (c *Client) Issues(ctx context.Context, repo string) (issues []Issue, pullRequests int, err error) {
	q := pageQuery()
	q.Set("state", "open")

	var raw []issueResponse
	if err := c.getJSON(ctx, "/repos/"+repo+"/issues", q, &raw); err != nil {
		return nil, 0, err
	}
	for _, r := range raw {
		if r.PullRequest != nil {
			pullRequests++
			continue
		}
		issues = append(issues, r.Issue)
	}
	return issues, pullRequests, nil
}

// Releases returns the first page of releases of repo.
func (c *Client) Releases(ctx context.Context, repo string) ([]Release, error) {
	var releases []Release
	if err := c.getJSON(ctx, "/repos/"+repo+"/releases", pageQuery(), &releases); err != nil {
		return nil, err
	}
	return releases, nil
}
