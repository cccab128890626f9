package dto

import "time"

type EntryOutput struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	ReleaseYear *int      `json:"release_year"`
	Review      *string   `json:"review"`
	Rating      *int      `json:"rating"`
	Status      string    `json:"status"`
	PosterURL   *string   `json:"poster_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserName    string    `json:"user_name"`
	LikeCount   int       `json:"like_count"`
}

type CreateEntryInput struct {
	Title       string  `json:"title"`
	ReleaseYear *int    `json:"release_year"`
	Review      string  `json:"review"`
	Rating      *int    `json:"rating"`
	Status      string  `json:"status"`
	PosterURL   string  `json:"poster_url"`
}

// UpdateEntryInput uses pointers throughout so absent fields stay untouched.
type UpdateEntryInput struct {
	Title       *string `json:"title"`
	ReleaseYear *int    `json:"release_year"`
	Review      *string `json:"review"`
	Rating      *int    `json:"rating"`
	Status      *string `json:"status"`
	PosterURL   *string `json:"poster_url"`
}
