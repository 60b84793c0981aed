// Package notes persists free-form notes in SQLite.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"medbill/m/domain"
)

var ErrNotFound = errors.New("note not found")

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type Repository interface {
	List(ctx context.Context) ([]domain.Note, error)
	Get(ctx context.Context, id string) (domain.Note, error)
	Create(ctx context.Context, title, content string) (domain.Note, error)
	Update(ctx context.Context, id, title, content string) (domain.Note, error)
	Delete(ctx context.Context, id string) error
}

type sqliteRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewRepository(db *sqlx.DB) Repository {
	return &sqliteRepository{db: db, now: time.Now}
}

func (r *sqliteRepository) stamp() string {
	return r.now().UTC().Format(timeLayout)
}

// List returns every note, newest first.
func (r *sqliteRepository) List(ctx context.Context) ([]domain.Note, error) {
	notes := []domain.Note{}
	err := r.db.SelectContext(ctx, &notes,
		`SELECT id, title, content, created_at, updated_at FROM notes ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *sqliteRepository) Get(ctx context.Context, id string) (domain.Note, error) {
	var n domain.Note
	err := r.db.GetContext(ctx, &n, `SELECT id, title, content, created_at, updated_at FROM notes WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Note{}, ErrNotFound
	}
	return n, err
}

func (r *sqliteRepository) Create(ctx context.Context, title, content string) (domain.Note, error) {
	now := r.stamp()
	n := domain.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO notes (id, title, content, created_at, updated_at) VALUES (:id, :title, :content, :created_at, :updated_at)`, n)
	if err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

func (r *sqliteRepository) Update(ctx context.Context, id, title, content string) (domain.Note, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?`, title, content, r.stamp(), id)
	if err != nil {
		return domain.Note{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Note{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *sqliteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
