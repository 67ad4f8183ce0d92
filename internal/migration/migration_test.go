package migration

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttp/internal/config"
)

func TestIsValidDatabaseName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "ttp_results", true},
		{"empty", "", false},
		{"too long", strings.Repeat("a", 65), false},
		{"quote", "ttp'results", false},
		{"backtick", "ttp`results", false},
		{"statement", "x;drop", false},
		{"comment", "ttp--", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isValidDatabaseName(tt.input))
		})
	}
}

func TestDatabaseManager_Config(t *testing.T) {
	t.Run("disabled without dsn", func(t *testing.T) {
		dm := NewDatabaseManager(config.New())
		assert.False(t, dm.Enabled())
		_, err := dm.mysqlConfig()
		assert.ErrorIs(t, err, ErrNoDSN)
		_, err = dm.Open(context.Background())
		assert.ErrorIs(t, err, ErrNoDSN)
	})

	t.Run("parses dsn and enables parseTime", func(t *testing.T) {
		cfg := config.New()
		cfg.DatabaseDSN = "ttp:secret@tcp(db.internal:3306)/ttp_results"
		dm := NewDatabaseManager(cfg)

		c, err := dm.mysqlConfig()
		require.NoError(t, err)
		assert.Equal(t, "ttp_results", c.DBName)
		assert.Equal(t, "db.internal:3306", c.Addr)
		assert.True(t, c.ParseTime)
	})

	t.Run("dsn must name a database", func(t *testing.T) {
		cfg := config.New()
		cfg.DatabaseDSN = "ttp:secret@tcp(localhost:3306)/"
		_, err := NewDatabaseManager(cfg).mysqlConfig()
		assert.Error(t, err)
	})
}

func TestPending(t *testing.T) {
	all := pending(Migrations, nil)
	require.Len(t, all, 2)
	assert.Equal(t, "0001_create_translation_runs", all[0].Name)

	rest := pending(Migrations, map[string]bool{"0001_create_translation_runs": true})
	require.Len(t, rest, 1)
	assert.Equal(t, "0002_create_translation_failures", rest[0].Name)

	assert.Empty(t, pending(Migrations, map[string]bool{
		"0001_create_translation_runs":     true,
		"0002_create_translation_failures": true,
	}))
}

func TestMigrations_CoverStorageColumns(t *testing.T) {
	columns := map[string][]string{
		"translation_runs":     {"source", "driver", "total_cases", "passed_cases", "failed_cases", "inconclusive_cases", "duration_seconds", "fingerprint", "started_at"},
		"translation_failures": {"run_id", "case_id", "name", "category", "outcome", "input", "reference", "observed", "message", "cycles"},
	}
	for _, m := range Migrations {
		for table, cols := range columns {
			if !strings.Contains(m.Up, "EXISTS "+table+" (") {
				continue
			}
			for _, col := range cols {
				assert.Contains(t, m.Up, col+" ", "%s.%s", table, col)
			}
		}
	}
}
