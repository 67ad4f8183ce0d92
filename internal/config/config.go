package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Target page
	TargetURL      string
	InputRole      string
	OutputSelector string

	// Interaction bounds
	ActionTimeout     time.Duration
	NavigationTimeout time.Duration
	ReadyTimeout      time.Duration
	PollInterval      time.Duration
	PollAttempts      int
	NudgeAfter        int
	NudgeDelay        time.Duration
	MaxCycles         int
	SettleDelay       time.Duration
	TypeDelay         time.Duration
	UIOutputTimeout   time.Duration

	// Oracle
	PrefixLength int

	// Browser
	Driver   string
	Headless bool
	Width    int
	Height   int

	// Case source
	Source      string
	Sheet       string
	HeaderLabel string
	AllowList   []string

	// Output settings
	ProjectPath    string
	OutputJSONFile string
	OutputJSONDir  string
	DatabaseDSN    string

	// Logging
	LogEncoding string
	Verbosity   int

	// Paths to ignore when scanning for fixtures
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		TargetURL:         DefaultTargetURL,
		InputRole:         DefaultInputRole,
		OutputSelector:    DefaultOutputSelector,
		ActionTimeout:     DefaultActionTimeout,
		NavigationTimeout: DefaultNavigationTimeout,
		ReadyTimeout:      DefaultReadyTimeout,
		PollInterval:      DefaultPollInterval,
		PollAttempts:      DefaultPollAttempts,
		NudgeAfter:        DefaultNudgeAfter,
		NudgeDelay:        DefaultNudgeDelay,
		MaxCycles:         DefaultMaxCycles,
		SettleDelay:       DefaultSettleDelay,
		TypeDelay:         DefaultTypeDelay,
		UIOutputTimeout:   DefaultUIOutputTimeout,
		PrefixLength:      DefaultPrefixLength,
		Driver:            DefaultDriver,
		Headless:          DefaultHeadless,
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		Source:            DefaultSource,
		Sheet:             DefaultSheet,
		HeaderLabel:       DefaultHeaderLabel,
		ProjectPath:       DefaultProjectPath,
		OutputJSONFile:    DefaultOutputJSONFile,
		OutputJSONDir:     DefaultOutputJSONDir,
		LogEncoding:       DefaultLogEncoding,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config from defaults, the project .env file and TTP_* variables
func Load() (*Config, error) {
	cfg := New()

	envPath := filepath.Join(cfg.ProjectPath, DefaultEnvFile)
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", envPath, err)
	}

	if err := cfg.ApplyEnv(NewEnv()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnvPrefix prefixes every environment variable the config reads
const EnvPrefix = "TTP"

// NewEnv returns a viper instance bound to TTP_* variables. A key such as
// "poll_interval" is read from TTP_POLL_INTERVAL.
func NewEnv() *viper.Viper {
	vp := viper.NewWithOptions(viper.EnvKeyReplacer(strings.NewReplacer(".", "_")))
	vp.SetEnvPrefix(EnvPrefix)
	vp.AutomaticEnv()
	return vp
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

func updateStringIfSet(vp *viper.Viper, key string, item *string) {
	if vp.IsSet(key) {
		if v := vp.GetString(key); v != "" {
			*item = v
		}
	}
}

func updateDurationIfSet(vp *viper.Viper, key string, item *time.Duration) error {
	if !vp.IsSet(key) || vp.GetString(key) == "" {
		return nil
	}
	d, err := cast.ToDurationE(vp.Get(key))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", envName(key), err)
	}
	*item = d
	return nil
}

func updateIntIfSet(vp *viper.Viper, key string, item *int) error {
	if !vp.IsSet(key) || vp.GetString(key) == "" {
		return nil
	}
	n, err := cast.ToIntE(vp.Get(key))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", envName(key), err)
	}
	*item = n
	return nil
}

func updateBoolIfSet(vp *viper.Viper, key string, item *bool) error {
	if !vp.IsSet(key) || vp.GetString(key) == "" {
		return nil
	}
	b, err := cast.ToBoolE(vp.Get(key))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", envName(key), err)
	}
	*item = b
	return nil
}

// ApplyEnv overrides fields from the values set in vp (see NewEnv)
func (c *Config) ApplyEnv(vp *viper.Viper) error {
	updateStringIfSet(vp, "target_url", &c.TargetURL)
	updateStringIfSet(vp, "input_role", &c.InputRole)
	updateStringIfSet(vp, "output_selector", &c.OutputSelector)
	updateStringIfSet(vp, "driver", &c.Driver)
	updateStringIfSet(vp, "source", &c.Source)
	updateStringIfSet(vp, "sheet", &c.Sheet)
	updateStringIfSet(vp, "header_label", &c.HeaderLabel)
	updateStringIfSet(vp, "project_path", &c.ProjectPath)
	updateStringIfSet(vp, "output_dir", &c.OutputJSONDir)
	updateStringIfSet(vp, "output_file", &c.OutputJSONFile)
	updateStringIfSet(vp, "database_dsn", &c.DatabaseDSN)
	updateStringIfSet(vp, "log_encoding", &c.LogEncoding)

	durations := []struct {
		key  string
		item *time.Duration
	}{
		{"action_timeout", &c.ActionTimeout},
		{"navigation_timeout", &c.NavigationTimeout},
		{"ready_timeout", &c.ReadyTimeout},
		{"poll_interval", &c.PollInterval},
		{"nudge_delay", &c.NudgeDelay},
		{"settle_delay", &c.SettleDelay},
		{"type_delay", &c.TypeDelay},
		{"ui_output_timeout", &c.UIOutputTimeout},
	}
	for _, d := range durations {
		if err := updateDurationIfSet(vp, d.key, d.item); err != nil {
			return err
		}
	}

	ints := []struct {
		key  string
		item *int
	}{
		{"poll_attempts", &c.PollAttempts},
		{"nudge_after", &c.NudgeAfter},
		{"max_cycles", &c.MaxCycles},
		{"prefix_length", &c.PrefixLength},
		{"verbosity", &c.Verbosity},
	}
	for _, n := range ints {
		if err := updateIntIfSet(vp, n.key, n.item); err != nil {
			return err
		}
	}

	if err := updateBoolIfSet(vp, "headless", &c.Headless); err != nil {
		return err
	}
	if only := vp.GetString("only"); only != "" {
		c.AllowList = SplitList(only)
	}
	return nil
}

// ApplyFlags copies parsed command flags onto the config
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Source != "" {
		c.Source = flags.Source
	}
	if flags.Sheet != "" {
		c.Sheet = flags.Sheet
	}
	if len(flags.Only) > 0 {
		c.AllowList = flags.Only
	}
	if flags.Driver != "" {
		c.Driver = flags.Driver
	}
	if flags.Headed {
		c.Headless = false
	}
	if flags.Verbosity > c.Verbosity {
		c.Verbosity = flags.Verbosity
	}
}

// Validate checks that every bound is positive so no wait is unbounded
func (c *Config) Validate() error {
	positive := []struct {
		name string
		ok   bool
	}{
		{"action timeout", c.ActionTimeout > 0},
		{"navigation timeout", c.NavigationTimeout > 0},
		{"ready timeout", c.ReadyTimeout > 0},
		{"poll interval", c.PollInterval > 0},
		{"poll attempts", c.PollAttempts > 0},
		{"max cycles", c.MaxCycles > 0},
		{"ui output timeout", c.UIOutputTimeout > 0},
	}
	for _, p := range positive {
		if !p.ok {
			return fmt.Errorf("%s must be positive", p.name)
		}
	}
	if c.TargetURL == "" {
		return fmt.Errorf("target url is required")
	}
	if c.OutputSelector == "" {
		return fmt.Errorf("output selector is required")
	}
	return nil
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and faills always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetSourcePath returns the case source resolved against the project path.
// The builtin source is returned unchanged.
func (c *Config) GetSourcePath() string {
	if c.Source == DefaultSource || c.Source == "" || filepath.IsAbs(c.Source) {
		return c.Source
	}
	return filepath.Join(c.ProjectPath, c.Source)
}

// SplitList splits a comma or whitespace separated list, dropping empty items
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}
