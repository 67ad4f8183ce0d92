package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ttp/internal/domain"
)

// Save writes the run report to the configured JSON output file.
func (s *JSONStorage) Save(output *domain.RunOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last run report from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// FailedIDs returns the IDs of failed or inconclusive cases recorded in output.
func FailedIDs(output *domain.RunOutput) []string {
	if output == nil {
		return nil
	}
	ids := make([]string, 0, len(output.Details))
	for _, f := range output.Details {
		ids = append(ids, f.CaseID)
	}
	return ids
}
