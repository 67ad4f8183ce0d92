package config

import "time"

const (
	// DefaultTargetURL is the translator page under test
	DefaultTargetURL = "https://www.swifttranslator.com/"
	// DefaultInputRole is the ARIA role of the Singlish input box
	DefaultInputRole = "textbox"
	// DefaultOutputSelector is the CSS selector of the Sinhala output box
	DefaultOutputSelector = ".w-full.h-80.p-3.rounded-lg.ring-1.ring-slate-300.whitespace-pre-wrap"

	DefaultActionTimeout     = 30 * time.Second
	DefaultNavigationTimeout = 60 * time.Second
	DefaultReadyTimeout      = 30 * time.Second
	DefaultPollInterval      = 1500 * time.Millisecond
	DefaultPollAttempts      = 6
	DefaultNudgeAfter        = 3
	DefaultNudgeDelay        = 25 * time.Millisecond
	DefaultMaxCycles         = 3
	DefaultSettleDelay       = 150 * time.Millisecond
	DefaultTypeDelay         = 80 * time.Millisecond
	DefaultUIOutputTimeout   = 60 * time.Second
	DefaultPrefixLength      = 8

	// DefaultDriver is the browser automation engine
	DefaultDriver   = "playwright"
	DefaultHeadless = true
	DefaultWidth    = 1280
	DefaultHeight   = 720

	// DefaultSource selects the embedded case fixture
	DefaultSource = "builtin"
	// DefaultSheet is the workbook sheet holding the cases
	DefaultSheet = "TestCases"
	// DefaultHeaderLabel is the first cell of the header row
	DefaultHeaderLabel = "TC ID"

	// DefaultProjectPath is where storage and .env are resolved from
	DefaultProjectPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "translation-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultEnvFile is loaded from the project path when present
	DefaultEnvFile = ".env"

	DefaultLogEncoding = "console"
)

// DefaultPathsToIgnore are the directories skipped when scanning for fixture files
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"storage",
	"playwright-report",
	"test-results",
}
