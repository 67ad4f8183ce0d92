package cli

import "ttp/internal/config"

// Flags holds command-line flags
type Flags struct {
	Source     string
	Sheet      string
	Only       []string
	Filter     string
	Driver     string
	Headed     bool
	FailFast   bool
	OnlyFailed bool
	Shard      string
	OpenFaills bool
	Sources    bool
	Verbosity  int
	CaseID     string
}

// ToConfigFlags converts CLI flags to config flags. --only accepts both
// repeated flags and comma separated lists.
func (f *Flags) ToConfigFlags() config.Flags {
	var only []string
	for _, item := range f.Only {
		only = append(only, config.SplitList(item)...)
	}
	return config.Flags{
		Source:     f.Source,
		Sheet:      f.Sheet,
		Only:       only,
		Filter:     f.Filter,
		Driver:     f.Driver,
		Headed:     f.Headed,
		FailFast:   f.FailFast,
		OnlyFailed: f.OnlyFailed,
		Shard:      f.Shard,
		OpenFaills: f.OpenFaills,
		Sources:    f.Sources,
		Verbosity:  f.Verbosity,
		CaseID:     f.CaseID,
	}
}
