package scrape

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// StatsHeader is the first row of the repository statistics CSV.
var StatsHeader = []string{
	"Repo Name",
	"Total Commits", "Flagged Commits",
	"Total Issues", "Flagged Issues",
	"Total Releases", "Flagged Releases",
}

// AppendFlagLog appends the flagged items of report to the text log at
// path. Nothing is written for a repository without flagged items.
func AppendFlagLog(path string, report *RepoReport) error {
	flagged := report.AllFlagged()
	if len(flagged) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open flag log: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString("\n" + report.Name + "\n")
	for _, item := range flagged {
		b.WriteString(item.String())
		b.WriteByte('\n')
	}
	_, err = f.WriteString(b.String())
	return err
}

// AppendStats appends one row for report to the CSV at path, writing the
// header first when the file is new.
func AppendStats(path string, report *RepoReport) error {
	_, statErr := os.Stat(path)
	exists := statErr == nil

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open stats csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !exists {
		if err := w.Write(StatsHeader); err != nil {
			return err
		}
	}
	row := []string{
		report.Name,
		strconv.Itoa(report.Commits), strconv.Itoa(len(report.FlaggedCommits)),
		strconv.Itoa(report.Issues), strconv.Itoa(len(report.FlaggedIssues)),
		strconv.Itoa(report.Releases), strconv.Itoa(len(report.FlaggedReleases)),
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// StatsRow is one parsed row of the statistics CSV.
type StatsRow struct {
	Repo            string
	Commits         int
	FlaggedCommits  int
	Issues          int
	FlaggedIssues   int
	Releases        int
	FlaggedReleases int
}

// ReadStats parses the statistics CSV, skipping the header.
func ReadStats(path string) ([]StatsRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) > 0 {
		records = records[1:]
	}

	rows := make([]StatsRow, 0, len(records))
	for i, rec := range records {
		if len(rec) < len(StatsHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns", path, i+2, len(StatsHeader))
		}
		var nums [6]int
		for j := range nums {
			n, err := strconv.Atoi(rec[j+1])
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
			}
			nums[j] = n
		}
		rows = append(rows, StatsRow{
			Repo: rec[0], Commits: nums[0], FlaggedCommits: nums[1],
			Issues: nums[2], FlaggedIssues: nums[3],
			Releases: nums[4], FlaggedReleases: nums[5],
		})
	}
	return rows, nil
}

// LastRepo returns the repository on the last row of the statistics CSV.
// ok is false when the file does not exist or has no data rows.
func LastRepo(path string) (name string, ok bool, err error) {
	rows, err := ReadStats(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[len(rows)-1].Repo, true, nil
}

// ResumeAfter returns the names following last.
func ResumeAfter(names []string, last string) ([]string, error) {
	for i, n := range names {
		if n == last {
			return names[i+1:], nil
		}
	}
	return nil, fmt.Errorf("last analysed repository %q is not in the repository list", last)
}

// Averages are the per-repository means over the statistics CSV.
type Averages struct {
	Repos    int     `json:"repos" yaml:"repos"`
	Commits  float64 `json:"commits" yaml:"commits"`
	Issues   float64 `json:"issues" yaml:"issues"`
	Releases float64 `json:"releases" yaml:"releases"`
}

// ComputeAverages averages commit, issue and release counts over rows.
func ComputeAverages(rows []StatsRow) Averages {
	avg := Averages{Repos: len(rows)}
	if len(rows) == 0 {
		return avg
	}
	var commits, issues, releases int
	for _, r := range rows {
		commits += r.Commits
		issues += r.Issues
		releases += r.Releases
	}
	n := float64(len(rows))
	avg.Commits = float64(commits) / n
	avg.Issues = float64(issues) / n
	avg.Releases = float64(releases) / n
	return avg
}

// SaveRepoNames writes the gathered repository names as a JSON array.
func SaveRepoNames(path string, names []string) error {
	if names == nil {
		names = []string{}
	}
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadRepoNames reads a file written by SaveRepoNames.
func LoadRepoNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return names, nil
}
