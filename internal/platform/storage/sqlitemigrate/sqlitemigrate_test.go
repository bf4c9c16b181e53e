package sqlitemigrate

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestApplyMigrationsRequiresDB(t *testing.T) {
	t.Parallel()

	if err := ApplyMigrations(nil, fstest.MapFS{}); err == nil {
		t.Fatalf("ApplyMigrations() error = nil, want error for nil db")
	}
}

func TestApplyMigrationsRunsInOrder(t *testing.T) {
	t.Parallel()

	sqlDB := openTestDB(t)
	migrationFS := fstest.MapFS{
		"0002_add_column.sql": {Data: []byte(`ALTER TABLE things ADD COLUMN label TEXT;`)},
		"0001_create.sql":     {Data: []byte(`CREATE TABLE things (id INTEGER PRIMARY KEY);`)},
	}

	if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}

	if _, err := sqlDB.Exec(`INSERT INTO things (id, label) VALUES (1, 'ok')`); err != nil {
		t.Fatalf("insert after migrations: %v", err)
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()

	sqlDB := openTestDB(t)
	migrationFS := fstest.MapFS{
		"0001_create.sql": {Data: []byte(`CREATE TABLE things (id INTEGER PRIMARY KEY);`)},
	}

	if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	// A rerun must skip applied files; CREATE TABLE without IF NOT EXISTS
	// would fail otherwise.
	if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
		t.Fatalf("ApplyMigrations() rerun error = %v", err)
	}

	var applied int
	if err := sqlDB.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if applied != 1 {
		t.Fatalf("applied = %d, want %d", applied, 1)
	}
}

func TestApplyMigrationsSkipsNonSQLEntries(t *testing.T) {
	t.Parallel()

	sqlDB := openTestDB(t)
	migrationFS := fstest.MapFS{
		"0001_create.sql": {Data: []byte(`CREATE TABLE things (id INTEGER PRIMARY KEY);`)},
		"README.md":       {Data: []byte(`not sql`)},
	}

	if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
}

func TestApplyMigrationsSurfacesBadSQL(t *testing.T) {
	t.Parallel()

	sqlDB := openTestDB(t)
	migrationFS := fstest.MapFS{
		"0001_broken.sql": {Data: []byte(`CREATE TABEL broken;`)},
	}

	if err := ApplyMigrations(sqlDB, migrationFS); err == nil {
		t.Fatalf("ApplyMigrations() error = nil, want error for invalid SQL")
	}
}
