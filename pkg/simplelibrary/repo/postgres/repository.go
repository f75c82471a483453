// Package postgres implements the metadata index on PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE library_content (
//	    id          UUID PRIMARY KEY,
//	    parent_path TEXT NOT NULL,
//	    name        TEXT NOT NULL,
//	    kind        TEXT NOT NULL,
//	    path        TEXT NOT NULL,
//	    blob_ref    TEXT,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE UNIQUE INDEX library_content_parent_name_key
//	    ON library_content (parent_path, name);
//
// The unique index is the concurrency-correctness mechanism: racing
// inserts for the same (parent_path, name) resolve to exactly one winner,
// the loser observes ErrDuplicateName.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-library/pkg/simplelibrary"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements simplelibrary.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) simplelibrary.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) simplelibrary.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return simplelibrary.ErrDuplicateName
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) Insert(ctx context.Context, record *simplelibrary.ContentRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	query := `
		INSERT INTO library_content (id, parent_path, name, kind, path, blob_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), COALESCE($7::timestamptz, NOW()))
		RETURNING created_at`

	var createdAt interface{}
	if !record.CreatedAt.IsZero() {
		createdAt = record.CreatedAt
	}

	err := r.db.QueryRow(ctx, query,
		record.ID, record.ParentPath, record.Name, string(record.Kind),
		record.Path, record.BlobRef, createdAt).Scan(&record.CreatedAt)
	if err != nil {
		return r.handlePostgresError("insert record", err)
	}

	return nil
}

func (r *Repository) FindByParentAndName(ctx context.Context, parentPath, name string) (*simplelibrary.ContentRecord, error) {
	query := `
		SELECT id, parent_path, name, kind, path, COALESCE(blob_ref, ''), created_at
		FROM library_content
		WHERE parent_path = $1 AND name = $2`

	var record simplelibrary.ContentRecord
	var kind string
	err := r.db.QueryRow(ctx, query, parentPath, name).Scan(
		&record.ID, &record.ParentPath, &record.Name, &kind,
		&record.Path, &record.BlobRef, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplelibrary.ErrRecordNotFound
		}
		return nil, r.handlePostgresError("find record", err)
	}
	record.Kind = simplelibrary.ContentKind(kind)

	return &record, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM library_content WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete record", err)
	}
	if tag.RowsAffected() == 0 {
		return simplelibrary.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*simplelibrary.ContentRecord, error) {
	query := `
		SELECT id, parent_path, name, kind, path, COALESCE(blob_ref, ''), created_at
		FROM library_content
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list records", err)
	}
	defer rows.Close()

	var records []*simplelibrary.ContentRecord
	for rows.Next() {
		var record simplelibrary.ContentRecord
		var kind string
		if err := rows.Scan(
			&record.ID, &record.ParentPath, &record.Name, &kind,
			&record.Path, &record.BlobRef, &record.CreatedAt); err != nil {
			return nil, r.handlePostgresError("scan record", err)
		}
		record.Kind = simplelibrary.ContentKind(kind)
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list records", err)
	}

	return records, nil
}
