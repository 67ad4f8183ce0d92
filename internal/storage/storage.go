package storage

import (
	"time"

	"ttp/internal/config"
	"ttp/internal/domain"
	"ttp/internal/execution"
)

// Storage persists and loads run reports (e.g. for the faills viewer).
type Storage interface {
	Save(output *domain.RunOutput) error
	Load() (*domain.RunOutput, error)
}

// RunInfo describes where a run's cases came from and how they were driven
type RunInfo struct {
	Source string
	Driver string
}

// BuildOutput assembles the report of a run and fingerprints its failures.
func BuildOutput(results []domain.CaseResult, failures []domain.Failure, duration time.Duration, info RunInfo) (*domain.RunOutput, error) {
	summary := execution.Summarize(results)
	if failures == nil {
		failures = []domain.Failure{}
	}

	fingerprint, err := Fingerprint(failures)
	if err != nil {
		return nil, err
	}

	return &domain.RunOutput{
		Meta: domain.RunMeta{
			TotalCases:        summary.Total(),
			PassedCases:       summary.Passed,
			FailedCases:       summary.Failed,
			InconclusiveCases: summary.Inconclusive,
			Source:            info.Source,
			Driver:            info.Driver,
			Duration:          duration.String(),
			DurationSeconds:   duration.Seconds(),
			Timestamp:         time.Now().Format(time.RFC3339),
			Fingerprint:       fingerprint,
		},
		Details: failures,
	}, nil
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
