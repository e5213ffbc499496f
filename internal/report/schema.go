// Package report computes the statistics published for datasets and
// migration results.
//
// Every report carries a ReportHeader and marshals to YAML or JSON, so the
// numbers behind the published charts can be regenerated and diffed.
package report

import (
	"fmt"
	"strings"
	"time"
)

// ReportType represents the type of report being generated.
type ReportType string

const (
	// ReportTypeDataset describes function lengths, parameters and the
	// deprecated terms found in a dataset.
	ReportTypeDataset ReportType = "dataset"

	// ReportTypeScores averages CodeBLEU scores of a results file.
	ReportTypeScores ReportType = "scores"

	// ReportTypeKeywords measures how many deprecated terms the model
	// removed.
	ReportTypeKeywords ReportType = "keywords"
)

// String returns the string representation of the report type.
func (rt ReportType) String() string {
	return string(rt)
}

// ParseReportType parses a string into a ReportType.
func ParseReportType(s string) (ReportType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dataset":
		return ReportTypeDataset, nil
	case "scores":
		return ReportTypeScores, nil
	case "keywords":
		return ReportTypeKeywords, nil
	default:
		return "", fmt.Errorf("invalid report type: %q (expected dataset, scores, or keywords)", s)
	}
}

// ReportHeader contains the common header fields for all report types.
type ReportHeader struct {
	// Type identifies the kind of report.
	Type ReportType `yaml:"type" json:"type"`

	// GeneratedAt is the timestamp when the report was generated.
	GeneratedAt time.Time `yaml:"generated_at" json:"generated_at"`

	// Label names the data the report covers, such as a model or dataset.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
}

func newHeader(rt ReportType) ReportHeader {
	return ReportHeader{Type: rt, GeneratedAt: time.Now()}
}
