package domain

//go:generate mockgen -destination=../../mocks/mock_entry_repository.go -package=mocks github.com/watchjournal/backend/internal/entry/domain EntryRepository

import "context"

// ListFilter narrows the entry listing; zero values mean no filtering.
type ListFilter struct {
	Status string
	UserID int64
}

// UpdateChanges carries the fields of a partial update; nil means unchanged.
// Review and PosterURL distinguish "unchanged" (nil) from "cleared"
// (pointer to empty string, stored as NULL).
type UpdateChanges struct {
	Title       *string
	ReleaseYear *int
	Review      *string
	Rating      *int
	Status      *string
	PosterURL   *string
}

// Empty reports whether no field is being changed.
func (c UpdateChanges) Empty() bool {
	return c.Title == nil && c.ReleaseYear == nil && c.Review == nil &&
		c.Rating == nil && c.Status == nil && c.PosterURL == nil
}

type EntryRepository interface {
	List(ctx context.Context, filter ListFilter) ([]EntryView, error)
	// GetView returns (nil, nil) when the entry does not exist.
	GetView(ctx context.Context, id int64) (*EntryView, error)
	// GetOwnerID returns (0, nil) when the entry does not exist.
	GetOwnerID(ctx context.Context, id int64) (int64, error)
	Create(ctx context.Context, entry *Entry) (int64, error)
	Update(ctx context.Context, id int64, changes UpdateChanges) error
	Delete(ctx context.Context, id int64) error

	HasLike(ctx context.Context, entryID, userID int64) (bool, error)
	AddLike(ctx context.Context, entryID, userID int64) error
	// RemoveLike reports whether a like row was actually deleted.
	RemoveLike(ctx context.Context, entryID, userID int64) (bool, error)
}
