package domain

import "time"

// Entry is a journal entry. The owning user is set at creation and never
// reassigned. Optional columns are pointers so NULL survives round-trips.
type Entry struct {
	ID          int64
	UserID      int64
	Title       string
	ReleaseYear *int
	Review      *string
	Rating      *int
	Status      string
	PosterURL   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EntryView is the read projection: an entry joined with its author's display
// name and the current like count.
type EntryView struct {
	Entry
	UserName  string
	LikeCount int
}

// Entry statuses.
const (
	StatusPlanning = "planning"
	StatusWatching = "watching"
	StatusWatched  = "watched"
)

// ValidStatus reports whether s is one of the allowed entry statuses.
func ValidStatus(s string) bool {
	return s == StatusPlanning || s == StatusWatching || s == StatusWatched
}
