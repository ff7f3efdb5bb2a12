package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tsma-calendar-client/internal/models"
)

// SessionSchema creates the table used by PostgresSessionRepository.
const SessionSchema = `CREATE TABLE IF NOT EXISTS client_sessions (
    namespace  TEXT        NOT NULL,
    key        TEXT        NOT NULL,
    value      TEXT        NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (namespace, key)
)`

type sessionRow struct {
	Namespace string    `db:"namespace"`
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PostgresSessionRepository persists the session as key/value rows.
type PostgresSessionRepository struct {
	db        *sqlx.DB
	namespace string
}

// NewPostgresSessionRepository constructs the repository.
func NewPostgresSessionRepository(db *sqlx.DB, namespace string) *PostgresSessionRepository {
	if namespace == "" {
		namespace = "tsma"
	}
	return &PostgresSessionRepository{db: db, namespace: namespace}
}

// Migrate creates the sessions table when missing.
func (r *PostgresSessionRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, SessionSchema); err != nil {
		return fmt.Errorf("create client_sessions: %w", err)
	}
	return nil
}

// Load returns the stored session or nil.
func (r *PostgresSessionRepository) Load(ctx context.Context) (*models.Session, error) {
	const query = `SELECT namespace, key, value, updated_at FROM client_sessions WHERE namespace = $1`
	var rows []sessionRow
	if err := r.db.SelectContext(ctx, &rows, query, r.namespace); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return sessionFromValues(values), nil
}

// Save replaces the namespace's rows within a transaction.
func (r *PostgresSessionRepository) Save(ctx context.Context, s models.Session) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM client_sessions WHERE namespace = $1`, r.namespace); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("reset session: %w", err)
	}
	const insert = `INSERT INTO client_sessions (namespace, key, value, updated_at)
VALUES (:namespace, :key, :value, :updated_at)`
	now := time.Now().UTC()
	values := sessionValues(s)
	for _, key := range SessionKeys {
		value, ok := values[key]
		if !ok {
			continue
		}
		row := sessionRow{Namespace: r.namespace, Key: key, Value: value, UpdatedAt: now}
		if _, err := tx.NamedExecContext(ctx, insert, row); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save session key %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session tx: %w", err)
	}
	return nil
}

// Clear removes every session row for the namespace.
func (r *PostgresSessionRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM client_sessions WHERE namespace = $1`, r.namespace); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (r *PostgresSessionRepository) Close() error {
	return r.db.Close()
}
