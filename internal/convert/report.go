// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Report is the on-disk form of a batch run.
type Report struct {
	GeneratedAt time.Time   `yaml:"generated_at"`
	Summary     ReportTotal `yaml:"summary"`
	Result      BatchResult `yaml:",inline"`
}

// ReportTotal summarises a batch run.
type ReportTotal struct {
	Total       int  `yaml:"total"`
	HasFailures bool `yaml:"has_failures"`
}

// WriteReport saves result to path as YAML.
func WriteReport(path string, result BatchResult) error {
	r := Report{
		GeneratedAt: time.Now().UTC(),
		Summary: ReportTotal{
			Total:       result.Total(),
			HasFailures: result.HasFailures(),
		},
		Result: result,
	}
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}
