package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS assessments (
		id              TEXT PRIMARY KEY,
		query           TEXT NOT NULL,
		task_name       TEXT NOT NULL DEFAULT '',
		task_goal       TEXT NOT NULL DEFAULT '',
		recommendation  TEXT NOT NULL
		                CHECK(recommendation IN ('REJECT','SUGGEST_MODIFICATION','ACCEPT_AND_EXECUTE')),
		low_count       INTEGER NOT NULL DEFAULT 0,
		moderate_count  INTEGER NOT NULL DEFAULT 0,
		high_count      INTEGER NOT NULL DEFAULT 0,
		critical_count  INTEGER NOT NULL DEFAULT 0,
		explanation     TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS assessment_findings (
		assessment_id     TEXT NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
		ordinal           INTEGER NOT NULL,
		proposition_value TEXT NOT NULL,
		risk_level        TEXT NOT NULL,
		risk_score        REAL NOT NULL DEFAULT 0,
		analysis          TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (assessment_id, ordinal)
	)`,

	// Runs that went through the intent scorer keep its score; NULL otherwise.
	`ALTER TABLE assessments ADD COLUMN intent_score INTEGER`,

	`CREATE INDEX IF NOT EXISTS idx_assessments_created ON assessments(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_assessments_recommendation ON assessments(recommendation)`,
}
