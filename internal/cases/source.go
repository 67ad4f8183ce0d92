// Package cases loads translation cases from the embedded suite, YAML
// fixtures and spreadsheets.
package cases

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"

	"ttp/internal/config"
	"ttp/internal/domain"
)

// Source yields an ordered case set
type Source interface {
	Name() string
	Load() ([]domain.TestCase, error)
}

// MultiSource concatenates several sources in order
type MultiSource []Source

// Name describes the source
func (m MultiSource) Name() string {
	names := make([]string, len(m))
	for i, s := range m {
		names[i] = s.Name()
	}
	return strings.Join(names, ", ")
}

// Load loads every source in order
func (m MultiSource) Load() ([]domain.TestCase, error) {
	var all []domain.TestCase
	for _, s := range m {
		cases, err := s.Load()
		if err != nil {
			return nil, err
		}
		all = append(all, cases...)
	}
	return all, nil
}

// Open picks the source named by cfg.Source: "builtin", a YAML fixture,
// a workbook, or a directory of fixtures.
func Open(cfg *config.Config) (Source, error) {
	if cfg.Source == "" || cfg.Source == config.DefaultSource {
		return LiteralSource{}, nil
	}

	path := cfg.GetSourcePath()
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: case source %s: %v", ErrConfiguration, path, err)
	}

	if !info.IsDir() {
		return fileSource(cfg, path)
	}

	files, err := NewScanner(cfg.PathsToIgnore).Scan(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no case fixtures in %s", ErrConfiguration, path)
	}
	var multi MultiSource
	for _, file := range files {
		s, err := fileSource(cfg, file)
		if err != nil {
			return nil, err
		}
		multi = append(multi, s)
	}
	return multi, nil
}

func fileSource(cfg *config.Config, path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FileSource{Path: path}, nil
	case ".xlsx":
		return SheetSource{Path: path, Sheet: cfg.Sheet, HeaderLabel: cfg.HeaderLabel}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported case source %s", ErrConfiguration, path)
	}
}

// Load opens the configured source, rejects duplicate IDs and applies the
// allow-list. Allow-listed IDs that are absent are logged, not fatal.
func Load(cfg *config.Config, log logr.Logger) ([]domain.TestCase, error) {
	src, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	all, err := src.Load()
	if err != nil {
		return nil, err
	}
	if err := Validate(all); err != nil {
		return nil, err
	}

	allow, err := expandAllowList(cfg.AllowList)
	if err != nil {
		return nil, err
	}
	selected, missing := Select(all, allow)
	if len(missing) > 0 {
		log.Info("allow-listed cases not found", "source", src.Name(), "missing", strings.Join(missing, ", "))
	}
	return selected, nil
}

// expandAllowList replaces the "builtin" entry with the embedded suite's IDs
func expandAllowList(allow []string) ([]string, error) {
	var out []string
	for _, id := range allow {
		if id != config.DefaultSource {
			out = append(out, id)
			continue
		}
		ids, err := BuiltinIDs()
		if err != nil {
			return nil, err
		}
		out = append(out, ids...)
	}
	return out, nil
}
