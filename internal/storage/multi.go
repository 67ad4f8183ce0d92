package storage

import (
	"errors"

	"ttp/internal/domain"
)

// Multi saves to every storage and loads from the first one.
type Multi []Storage

// Save saves output to every storage and joins their errors
func (m Multi) Save(output *domain.RunOutput) error {
	var errs []error
	for _, s := range m {
		if err := s.Save(output); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Load loads from the primary storage
func (m Multi) Load() (*domain.RunOutput, error) {
	if len(m) == 0 {
		return nil, errors.New("no storage configured")
	}
	return m[0].Load()
}
