package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"ttp/internal/domain"
)

// fingerprintFields is the part of a failure that identifies it across runs
type fingerprintFields struct {
	CaseID   string         `json:"case_id"`
	Outcome  domain.Outcome `json:"outcome"`
	Observed string         `json:"observed"`
	Message  string         `json:"message"`
}

// Fingerprint hashes the RFC 8785 canonical form of the failures, so two runs
// that fail the same way share a fingerprint whatever their timing.
func Fingerprint(failures []domain.Failure) (string, error) {
	fields := make([]fingerprintFields, len(failures))
	for i, f := range failures {
		fields[i] = fingerprintFields{
			CaseID:   f.CaseID,
			Outcome:  f.Outcome,
			Observed: f.Observed,
			Message:  f.Message,
		}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshal failures: %w", err)
	}
	canonical, err := jsoncanonicalizer.Transform(data)
	if err != nil {
		return "", fmt.Errorf("canonicalize failures: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
