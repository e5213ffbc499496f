package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkbench/jdkmig/internal/github"
)

// Keywords are the word lists a text must hit, one word from each, to be
// flagged as discussing a Java 8 to Java 11 migration.
type Keywords struct {
	Java8     []string `yaml:"java8" json:"java8"`
	Java11    []string `yaml:"java11" json:"java11"`
	Migration []string `yaml:"migration" json:"migration"`
}

// DefaultKeywords returns the stock keyword lists.
func DefaultKeywords() Keywords {
	return Keywords{
		Java8:     []string{"java8", "jdk8", "8", "1.8"},
		Java11:    []string{"java11", "jdk11", "11"},
		Migration: []string{"migrate", "migration", "migrated", "upgrade", "upgraded", "update", "updated", "transition", "switched"},
	}
}

// Match reports whether text contains a word from every list. Text is
// lower-cased and split on single spaces only, so "Java 8," does not match
// "8".
func (k Keywords) Match(text string) bool {
	var j8, j11, mig bool
	for _, word := range strings.Split(strings.ToLower(text), " ") {
		if contains(k.Java8, word) {
			j8 = true
		}
		if contains(k.Java11, word) {
			j11 = true
		}
		if contains(k.Migration, word) {
			mig = true
		}
	}
	return j8 && j11 && mig
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Place is where a flagged text was found.
type Place string

const (
	PlaceCommit  Place = "commit"
	PlaceIssue   Place = "issue"
	PlaceRelease Place = "release"
)

// Flagged is one commit, issue or release that matched the keywords.
type Flagged struct {
	Label string `json:"label" yaml:"label"`
	Text  string `json:"text" yaml:"text"`
	ID    string `json:"id" yaml:"id"`
	Place Place  `json:"place" yaml:"place"`
}

// String renders the flag-log line for f.
func (f Flagged) String() string {
	return fmt.Sprintf("    '%s' found in %s: %s", f.Label, f.Place, f.ID)
}

// RepoReport summarizes the migration activity found in one repository.
type RepoReport struct {
	Name            string    `json:"name" yaml:"name"`
	Commits         int       `json:"commits" yaml:"commits"`
	FlaggedCommits  []Flagged `json:"flagged_commits,omitempty" yaml:"flagged_commits,omitempty"`
	Issues          int       `json:"issues" yaml:"issues"`
	PullRequests    int       `json:"pull_requests" yaml:"pull_requests"`
	FlaggedIssues   []Flagged `json:"flagged_issues,omitempty" yaml:"flagged_issues,omitempty"`
	Releases        int       `json:"releases" yaml:"releases"`
	FlaggedReleases []Flagged `json:"flagged_releases,omitempty" yaml:"flagged_releases,omitempty"`
}

// AllFlagged returns issues, then releases, then commits.
func (r *RepoReport) AllFlagged() []Flagged {
	out := make([]Flagged, 0, len(r.FlaggedIssues)+len(r.FlaggedReleases)+len(r.FlaggedCommits))
	out = append(out, r.FlaggedIssues...)
	out = append(out, r.FlaggedReleases...)
	return append(out, r.FlaggedCommits...)
}

// ActivitySource is the part of the GitHub client the analyzer needs.
type ActivitySource interface {
	Commits(ctx context.Context, repo string) ([]github.Commit, error)
	Issues(ctx context.Context, repo string) ([]github.Issue, int, error)
	Releases(ctx context.Context, repo string) ([]github.Release, error)
}

// Analyzer flags migration activity in repositories.
type Analyzer struct {
	Source   ActivitySource
	Keywords Keywords
}

// AnalyzeRepo reads the first page of commits, open issues and releases of
// repo and flags every text that matches the keywords.
func (a *Analyzer) AnalyzeRepo(ctx context.Context, repo string) (*RepoReport, error) {
	kw := a.Keywords
	if len(kw.Java8) == 0 && len(kw.Java11) == 0 && len(kw.Migration) == 0 {
		kw = DefaultKeywords()
	}
	report := &RepoReport{Name: repo}

	commits, err := a.Source.Commits(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("commits of %s: %w", repo, err)
	}
	report.Commits = len(commits)
	for _, c := range commits {
		if kw.Match(c.Message) {
			report.FlaggedCommits = append(report.FlaggedCommits, Flagged{
				Label: "Match in Commit: ", Text: c.Message, ID: c.NodeID, Place: PlaceCommit,
			})
		}
	}

	issues, prs, err := a.Source.Issues(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("issues of %s: %w", repo, err)
	}
	report.Issues = len(issues)
	report.PullRequests = prs
	for _, is := range issues {
		text := is.Title
		if is.Body != nil {
			text += *is.Body
		}
		if kw.Match(text) {
			report.FlaggedIssues = append(report.FlaggedIssues, Flagged{
				Label: "Match in Issue: ", Text: text, ID: fmt.Sprint(is.Number), Place: PlaceIssue,
			})
		}
	}

	releases, err := a.Source.Releases(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("releases of %s: %w", repo, err)
	}
	report.Releases = len(releases)
	for _, rel := range releases {
		if rel.Body == nil {
			continue
		}
		if kw.Match(*rel.Body) {
			report.FlaggedReleases = append(report.FlaggedReleases, Flagged{
				Label: "Match in Release: ", Text: *rel.Body, ID: rel.TagName, Place: PlaceRelease,
			})
		}
	}

	return report, nil
}
