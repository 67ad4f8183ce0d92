package migration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"ttp/internal/config"
	"ttp/internal/domain"
)

// Migrator runs database migrations
type Migrator interface {
	Run(ctx context.Context, fresh bool) error
}

// SchemaMigrator applies Migrations to the results database
type SchemaMigrator struct {
	config          *config.Config
	databaseManager *DatabaseManager
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(cfg *config.Config, dbManager *DatabaseManager) *SchemaMigrator {
	return &SchemaMigrator{
		config:          cfg,
		databaseManager: dbManager,
	}
}

// Run creates the database if needed and applies pending migrations.
// With fresh, existing tables are dropped first.
func (sm *SchemaMigrator) Run(ctx context.Context, fresh bool) error {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║               Running Database Migrations                  ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	created, err := sm.databaseManager.EnsureDatabase(ctx)
	if err != nil {
		return fmt.Errorf("failed to check database: %w", err)
	}
	if created {
		color.White("Created results database\n")
	}

	db, err := sm.databaseManager.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if fresh {
		for _, stmt := range dropTables {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("drop tables: %w", err)
			}
		}
	}

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}
	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return err
	}

	todo := pending(Migrations, applied)
	color.White("Migrations: %d | Applied: %d | Pending: %d\n\n", len(Migrations), len(applied), len(todo))
	if len(todo) == 0 {
		color.Green("✓ Nothing to migrate\n")
		return nil
	}

	bar := progressbar.NewOptions(len(todo),
		progressbar.OptionSetDescription(
			color.CyanString("Migrating: ")+
				color.GreenString("[completed: 0/%d]", len(todo)),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	startTime := time.Now()
	var failed []domain.MigrationResult
	for i, m := range todo {
		result := apply(ctx, db, m)
		if !result.Success {
			failed = append(failed, result)
			break
		}
		bar.Set(i + 1)
		bar.Describe(color.CyanString("Migrating: ") +
			color.GreenString("[completed: %d/%d]", i+1, len(todo)))
	}
	bar.Finish()

	duration := time.Since(startTime)

	// Print summary
	fmt.Print("\n")
	if len(failed) > 0 {
		for _, result := range failed {
			color.Red("✗ Migration %s failed: %v\n", result.Name, result.Error)
		}
		return fmt.Errorf("migration %s failed: %w", failed[0].Name, failed[0].Error)
	}
	color.Green("✓ Applied %d migration(s)\n", len(todo))
	color.White("Duration: %s\n", duration.Round(time.Millisecond))
	return nil
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("read applied migrations: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// apply runs one migration and records it
func apply(ctx context.Context, db *sql.DB, m Migration) domain.MigrationResult {
	if _, err := db.ExecContext(ctx, m.Up); err != nil {
		return domain.MigrationResult{Name: m.Name, Error: err}
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO schema_migrations (name) VALUES (?)", m.Name); err != nil {
		return domain.MigrationResult{Name: m.Name, Error: err}
	}
	return domain.MigrationResult{Name: m.Name, Success: true}
}
