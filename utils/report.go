package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// ReportVersion is bumped when the report layout changes.
const ReportVersion = "1"

// Report is the serialisable output of one CLI invocation.
type Report struct {
	Version   string    `json:"version" yaml:"version"`
	RunID     string    `json:"run_id" yaml:"run_id"`
	Kind      string    `json:"kind" yaml:"kind"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Config    *Config   `json:"config,omitempty" yaml:"config,omitempty"`
	Rows      any       `json:"rows" yaml:"rows"`
}

// NewReport stamps rows with a fresh run ID and the current time.
func NewReport(kind string, cfg *Config, rows any) *Report {
	return &Report{
		Version:   ReportVersion,
		RunID:     uuid.NewString(),
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
		Rows:      rows,
	}
}

// SaveReport saves a report to a JSON file
func SaveReport(filepath string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(filepath, data, 0644)
}

// LoadReport loads a report from a JSON file. Rows are left as raw JSON so
// the caller can decode them into the row type of the report's Kind.
func LoadReport(filepath string) (*Report, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}
	var raw struct {
		Report
		Rows json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	if _, err := uuid.Parse(raw.RunID); err != nil {
		return nil, fmt.Errorf("report has invalid run id %q: %w", raw.RunID, err)
	}
	report := raw.Report
	report.Rows = raw.Rows
	return &report, nil
}
