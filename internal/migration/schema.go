package migration

// Migration is one forward schema change
type Migration struct {
	Name string
	Up   string
}

const createMigrationsTable = "CREATE TABLE IF NOT EXISTS schema_migrations (" +
	"name VARCHAR(191) NOT NULL PRIMARY KEY, " +
	"applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP" +
	") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"

// Migrations creates the tables the run command writes to, in order
var Migrations = []Migration{
	{
		Name: "0001_create_translation_runs",
		Up: "CREATE TABLE IF NOT EXISTS translation_runs (" +
			"id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
			"source VARCHAR(512) NOT NULL, " +
			"driver VARCHAR(32) NOT NULL, " +
			"total_cases INT NOT NULL, " +
			"passed_cases INT NOT NULL, " +
			"failed_cases INT NOT NULL, " +
			"inconclusive_cases INT NOT NULL, " +
			"duration_seconds DOUBLE NOT NULL, " +
			"fingerprint CHAR(64) NOT NULL, " +
			"started_at DATETIME NOT NULL, " +
			"INDEX idx_translation_runs_fingerprint (fingerprint)" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	},
	{
		Name: "0002_create_translation_failures",
		Up: "CREATE TABLE IF NOT EXISTS translation_failures (" +
			"id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
			"run_id BIGINT UNSIGNED NOT NULL, " +
			"case_id VARCHAR(64) NOT NULL, " +
			"name VARCHAR(255) NOT NULL, " +
			"category VARCHAR(32) NOT NULL, " +
			"outcome VARCHAR(16) NOT NULL, " +
			"input TEXT NOT NULL, " +
			"reference TEXT NOT NULL, " +
			"observed TEXT NOT NULL, " +
			"message TEXT NOT NULL, " +
			"cycles INT NOT NULL, " +
			"INDEX idx_translation_failures_case (case_id), " +
			"CONSTRAINT fk_translation_failures_run FOREIGN KEY (run_id) REFERENCES translation_runs (id) ON DELETE CASCADE" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	},
}

// dropTables removes everything the migrations created, children first
var dropTables = []string{
	"DROP TABLE IF EXISTS translation_failures",
	"DROP TABLE IF EXISTS translation_runs",
	"DROP TABLE IF EXISTS schema_migrations",
}

// pending returns the migrations not yet in applied, in order
func pending(migrations []Migration, applied map[string]bool) []Migration {
	var out []Migration
	for _, m := range migrations {
		if !applied[m.Name] {
			out = append(out, m)
		}
	}
	return out
}
