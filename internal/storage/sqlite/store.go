// Package sqlite provides a SQLite-backed registry store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mergington/activities/internal/activities"
	"github.com/mergington/activities/internal/platform/storage/sqlitemigrate"
	"github.com/mergington/activities/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists the activity catalog and rosters in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a registry store at path. The path may be
// ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps the :memory: DSN coherent across the pool and
	// serializes roster transactions.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Seed inserts the catalog when the activities table is empty. Reopening
// an existing database keeps its roster untouched.
func (s *Store) Seed(ctx context.Context, catalog map[string]activities.Activity) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM activities`).Scan(&count); err != nil {
		return fmt.Errorf("count activities: %w", err)
	}
	if count > 0 {
		return nil
	}

	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		activity := catalog[name]
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO activities (name, description, schedule, max_participants) VALUES (?, ?, ?, ?)`,
			name, activity.Description, activity.Schedule, activity.MaxParticipants,
		); err != nil {
			return fmt.Errorf("seed activity %q: %w", name, err)
		}
		for position, email := range activity.Participants {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO participants (activity_name, email, position) VALUES (?, ?, ?)`,
				name, email, position,
			); err != nil {
				return fmt.Errorf("seed participant %q for %q: %w", email, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// List returns the full catalog with rosters in signup order.
func (s *Store) List(ctx context.Context) (map[string]activities.Activity, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT name, description, schedule, max_participants FROM activities`,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	catalog := make(map[string]activities.Activity)
	for rows.Next() {
		var name string
		var activity activities.Activity
		if err := rows.Scan(&name, &activity.Description, &activity.Schedule, &activity.MaxParticipants); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activity.Participants = []string{}
		catalog[name] = activity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	participantRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT activity_name, email FROM participants ORDER BY activity_name, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer participantRows.Close()

	for participantRows.Next() {
		var activityName, email string
		if err := participantRows.Scan(&activityName, &email); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		activity, ok := catalog[activityName]
		if !ok {
			continue
		}
		activity.Participants = append(activity.Participants, email)
		catalog[activityName] = activity
	}
	if err := participantRows.Err(); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	return catalog, nil
}

// Signup appends email to the named activity's roster.
func (s *Store) Signup(ctx context.Context, activityName, email string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin signup: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := activityExists(ctx, tx, activityName); err != nil {
		return err
	}

	var enrolled int
	if err := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM participants WHERE activity_name = ? AND email = ?`,
		activityName, email,
	).Scan(&enrolled); err != nil {
		return fmt.Errorf("check enrollment: %w", err)
	}
	if enrolled > 0 {
		return activities.ErrAlreadyRegistered
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO participants (activity_name, email, position)
		 SELECT ?, ?, COALESCE(MAX(position) + 1, 0) FROM participants WHERE activity_name = ?`,
		activityName, email, activityName,
	); err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit signup: %w", err)
	}
	return nil
}

// Unregister removes email from the named activity's roster. Positions of
// the remaining participants keep their relative order.
func (s *Store) Unregister(ctx context.Context, activityName, email string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin unregister: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := activityExists(ctx, tx, activityName); err != nil {
		return err
	}

	result, err := tx.ExecContext(
		ctx,
		`DELETE FROM participants WHERE activity_name = ? AND email = ?`,
		activityName, email,
	)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if affected == 0 {
		return activities.ErrNotRegistered
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit unregister: %w", err)
	}
	return nil
}

func activityExists(ctx context.Context, tx *sql.Tx, activityName string) error {
	var count int
	if err := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM activities WHERE name = ?`,
		activityName,
	).Scan(&count); err != nil {
		return fmt.Errorf("check activity: %w", err)
	}
	if count == 0 {
		return activities.ErrActivityNotFound
	}
	return nil
}
