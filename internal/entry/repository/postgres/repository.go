package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/watchjournal/backend/db"
	"github.com/watchjournal/backend/internal/entry/domain"
	apperrors "github.com/watchjournal/backend/internal/errors"
)

const entryViewColumns = `
	e.id, e.user_id, e.title, e.release_year, e.review, e.rating, e.status, e.poster_url,
	e.created_at, e.updated_at,
	u.display_name AS user_name,
	(SELECT COUNT(*) FROM likes WHERE entry_id = e.id) AS like_count`

type Repository struct {
	db *db.DB
}

func NewRepository(database *db.DB) *Repository {
	return &Repository{db: database}
}

func (r *Repository) List(ctx context.Context, filter domain.ListFilter) ([]domain.EntryView, error) {
	query := `SELECT` + entryViewColumns + `
		FROM entries e
		JOIN users u ON e.user_id = u.id`

	var conditions []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, "e.status = $"+strconv.Itoa(len(args)))
	}
	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		conditions = append(conditions, "e.user_id = $"+strconv.Itoa(len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.created_at DESC"

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.EntryView, 0)
	for rows.Next() {
		var e domain.EntryView
		if err := scanEntryView(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return entries, nil
}

func (r *Repository) GetView(ctx context.Context, id int64) (*domain.EntryView, error) {
	query := `SELECT` + entryViewColumns + `
		FROM entries e
		JOIN users u ON e.user_id = u.id
		WHERE e.id = $1`

	row := r.db.Pool.QueryRow(ctx, query, id)

	var e domain.EntryView
	if err := scanEntryView(row, &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	return &e, nil
}

func (r *Repository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	const query = `SELECT user_id FROM entries WHERE id = $1`

	var ownerID int64
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get entry owner: %w", err)
	}

	return ownerID, nil
}

func (r *Repository) Create(ctx context.Context, entry *domain.Entry) (int64, error) {
	const query = `
		INSERT INTO entries (user_id, title, release_year, review, rating, status, poster_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.db.Pool.QueryRow(ctx, query,
		entry.UserID, entry.Title, entry.ReleaseYear, entry.Review,
		entry.Rating, entry.Status, entry.PosterURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create entry: %w", err)
	}

	return id, nil
}

// Update builds a parameterized SET list from the provided changes only.
func (r *Repository) Update(ctx context.Context, id int64, changes domain.UpdateChanges) error {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if changes.Title != nil {
		add("title", *changes.Title)
	}
	if changes.ReleaseYear != nil {
		add("release_year", *changes.ReleaseYear)
	}
	if changes.Review != nil {
		add("review", nullIfEmpty(*changes.Review))
	}
	if changes.Rating != nil {
		add("rating", *changes.Rating)
	}
	if changes.Status != nil {
		add("status", *changes.Status)
	}
	if changes.PosterURL != nil {
		add("poster_url", nullIfEmpty(*changes.PosterURL))
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := "UPDATE entries SET " + strings.Join(sets, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args))

	if _, err := r.db.Pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM entries WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}

func (r *Repository) HasLike(ctx context.Context, entryID, userID int64) (bool, error) {
	const query = `SELECT 1 FROM likes WHERE entry_id = $1 AND user_id = $2`

	var one int
	err := r.db.Pool.QueryRow(ctx, query, entryID, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return true, nil
}

func (r *Repository) AddLike(ctx context.Context, entryID, userID int64) error {
	const query = `INSERT INTO likes (entry_id, user_id) VALUES ($1, $2)`

	_, err := r.db.Pool.Exec(ctx, query, entryID, userID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyLiked
		}
		return fmt.Errorf("failed to add like: %w", err)
	}

	return nil
}

func (r *Repository) RemoveLike(ctx context.Context, entryID, userID int64) (bool, error) {
	const query = `DELETE FROM likes WHERE entry_id = $1 AND user_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, entryID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove like: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanEntryView(row pgx.Row, e *domain.EntryView) error {
	return row.Scan(
		&e.ID, &e.UserID, &e.Title, &e.ReleaseYear, &e.Review, &e.Rating,
		&e.Status, &e.PosterURL, &e.CreatedAt, &e.UpdatedAt,
		&e.UserName, &e.LikeCount,
	)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
