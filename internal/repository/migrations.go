package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Migration represents a schema migration for one SQL dialect.
type Migration struct {
	Version int
	Name    string
	Up      string
}

var postgresMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up: `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL,
				email TEXT UNIQUE NOT NULL,
				role TEXT NOT NULL DEFAULT 'USER',
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);

			CREATE TABLE IF NOT EXISTS projects (
				id UUID PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				supervisor_id UUID REFERENCES users(id) ON DELETE SET NULL,
				approval_status TEXT NOT NULL DEFAULT 'PENDING',
				approved_at TIMESTAMPTZ,
				approved_by UUID REFERENCES users(id) ON DELETE SET NULL,
				rejection_reason TEXT,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_projects_supervisor_status ON projects(supervisor_id, approval_status);

			CREATE TABLE IF NOT EXISTS comments (
				id UUID PRIMARY KEY,
				project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				content TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_comments_project ON comments(project_id, created_at DESC);

			CREATE TABLE IF NOT EXISTS reactions (
				id UUID PRIMARY KEY,
				project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL,
				UNIQUE (project_id, user_id)
			);

			CREATE TABLE IF NOT EXISTS notifications (
				id UUID PRIMARY KEY,
				recipient_user_id UUID NOT NULL,
				message TEXT NOT NULL,
				notification_type TEXT NOT NULL,
				project_id UUID NOT NULL,
				comment_id UUID,
				project_title TEXT,
				comment_text TEXT,
				commenter_name TEXT,
				approver_name TEXT,
				rejection_reason TEXT,
				is_read BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_user_id, created_at DESC);
		`,
	},
}

var sqliteMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up: `
			CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				email TEXT UNIQUE NOT NULL,
				role TEXT NOT NULL DEFAULT 'USER',
				is_active BOOLEAN NOT NULL DEFAULT 1,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			);

			CREATE TABLE IF NOT EXISTS projects (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				supervisor_id TEXT REFERENCES users(id) ON DELETE SET NULL,
				approval_status TEXT NOT NULL DEFAULT 'PENDING',
				approved_at DATETIME,
				approved_by TEXT REFERENCES users(id) ON DELETE SET NULL,
				rejection_reason TEXT,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_projects_supervisor_status ON projects(supervisor_id, approval_status);

			CREATE TABLE IF NOT EXISTS comments (
				id TEXT PRIMARY KEY,
				project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
				user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				content TEXT NOT NULL,
				created_at DATETIME NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_comments_project ON comments(project_id, created_at);

			CREATE TABLE IF NOT EXISTS reactions (
				id TEXT PRIMARY KEY,
				project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
				user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at DATETIME NOT NULL,
				UNIQUE (project_id, user_id)
			);

			CREATE TABLE IF NOT EXISTS notifications (
				id TEXT PRIMARY KEY,
				recipient_user_id TEXT NOT NULL,
				message TEXT NOT NULL,
				notification_type TEXT NOT NULL,
				project_id TEXT NOT NULL,
				comment_id TEXT,
				project_title TEXT,
				comment_text TEXT,
				commenter_name TEXT,
				approver_name TEXT,
				rejection_reason TEXT,
				is_read BOOLEAN NOT NULL DEFAULT 0,
				created_at DATETIME NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_user_id, created_at);
		`,
	},
}

// Migrate applies pending migrations for the connection's driver, one
// transaction per migration.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	var (
		migrations []Migration
		ddl        string
	)
	switch db.DriverName() {
	case "postgres":
		migrations = postgresMigrations
		ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL
		)`
	case "sqlite":
		migrations = sqliteMigrations
		ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL
		)`
	default:
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var currentVersion int
	if err := db.GetContext(ctx, &currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"); err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction for migration %d: %w", m.Version, err)
		}

		if _, err := tx.ExecContext(ctx, m.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d (%s): %w", m.Version, m.Name, err)
		}

		record := tx.Rebind("INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)")
		if _, err := tx.ExecContext(ctx, record, m.Version, m.Name, time.Now().UTC()); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
