package cases

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ttp/internal/domain"
)

//go:embed fixtures/swifttranslator.yaml fixtures/cases.schema.json
var fixtures embed.FS

const builtinFixture = "fixtures/swifttranslator.yaml"

// document is the on-disk layout of a case fixture
type document struct {
	Suite string            `yaml:"suite"`
	Cases []domain.TestCase `yaml:"cases"`
}

// LiteralSource serves the case set compiled into the binary
type LiteralSource struct{}

// Name describes the source
func (LiteralSource) Name() string {
	return "builtin"
}

// Load decodes the embedded fixture
func (LiteralSource) Load() ([]domain.TestCase, error) {
	data, err := fixtures.ReadFile(builtinFixture)
	if err != nil {
		return nil, fmt.Errorf("read builtin fixture: %w", err)
	}
	return decodeFixture(builtinFixture, data)
}

// FileSource reads a YAML fixture from disk
type FileSource struct {
	Path string
}

// Name describes the source
func (s FileSource) Name() string {
	return s.Path
}

// Load reads and decodes the fixture file
func (s FileSource) Load() ([]domain.TestCase, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrConfiguration, s.Path, err)
	}
	return decodeFixture(s.Path, data)
}

// decodeFixture validates data against the case schema and decodes the cases
func decodeFixture(name string, data []byte) ([]domain.TestCase, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, configError(ErrInvalidFixture, "%s: %v", name, err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, configError(ErrInvalidFixture, "%s: %v", name, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, configError(ErrInvalidFixture, "%s: %v", name, err)
	}
	for i := range doc.Cases {
		doc.Cases[i] = normalizeCase(doc.Cases[i])
	}
	return doc.Cases, nil
}

// normalizeCase trims the identifying fields and canonicalizes the disposition.
// Input and reference texts are kept as written.
func normalizeCase(tc domain.TestCase) domain.TestCase {
	tc.ID = strings.TrimSpace(tc.ID)
	tc.Name = strings.TrimSpace(tc.Name)
	tc.Disposition = domain.ParseDisposition(string(tc.Disposition))
	return tc
}
