package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"ttp/internal/config"
)

// ErrNoDSN is returned when no results database is configured
var ErrNoDSN = errors.New("no results database configured (set TTP_DATABASE_DSN)")

// DatabaseManager manages the results database
type DatabaseManager struct {
	config *config.Config
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config) *DatabaseManager {
	return &DatabaseManager{config: cfg}
}

// Enabled reports whether a results database is configured
func (dm *DatabaseManager) Enabled() bool {
	return dm.config.DatabaseDSN != ""
}

// mysqlConfig parses the configured DSN. Timestamps are scanned as time.Time.
func (dm *DatabaseManager) mysqlConfig() (*mysql.Config, error) {
	if !dm.Enabled() {
		return nil, ErrNoDSN
	}
	c, err := mysql.ParseDSN(dm.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("invalid database dsn: %w", err)
	}
	if c.DBName == "" {
		return nil, fmt.Errorf("database dsn must name a database")
	}
	c.ParseTime = true
	return c, nil
}

func connect(ctx context.Context, c *mysql.Config) (*sql.DB, error) {
	connector, err := mysql.NewConnector(c)
	if err != nil {
		return nil, fmt.Errorf("failed to configure database connection: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}
	return db, nil
}

// Open connects to the results database
func (dm *DatabaseManager) Open(ctx context.Context) (*sql.DB, error) {
	c, err := dm.mysqlConfig()
	if err != nil {
		return nil, err
	}
	return connect(ctx, c)
}

// EnsureDatabase creates the results database if it doesn't exist.
// Reports whether it was created.
func (dm *DatabaseManager) EnsureDatabase(ctx context.Context) (bool, error) {
	c, err := dm.mysqlConfig()
	if err != nil {
		return false, err
	}
	dbName := c.DBName

	// Connect to MySQL server (without specifying database)
	server := c.Clone()
	server.DBName = ""
	db, err := connect(ctx, server)
	if err != nil {
		return false, err
	}
	defer db.Close()

	exists, err := dm.databaseExists(ctx, db, dbName)
	if err != nil {
		return false, fmt.Errorf("failed to check database %s: %w", dbName, err)
	}
	if exists {
		return false, nil
	}
	if err := dm.createDatabase(ctx, db, dbName); err != nil {
		return false, fmt.Errorf("failed to create database %s: %w", dbName, err)
	}
	return true, nil
}

// databaseExists checks if a database exists
func (dm *DatabaseManager) databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func (dm *DatabaseManager) createDatabase(ctx context.Context, db *sql.DB, dbName string) error {
	// Sanitize database name to prevent SQL injection
	if !isValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", dbName)
	_, err := db.ExecContext(ctx, query)
	return err
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	// Check for SQL injection patterns
	invalidChars := []string{"'", "\"", "`", ";", "--", "/*", "*/", " ", "DROP", "DELETE", "TRUNCATE"}
	upperName := strings.ToUpper(name)
	for _, char := range invalidChars {
		if strings.Contains(upperName, char) {
			return false
		}
	}
	return true
}
