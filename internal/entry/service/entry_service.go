package service

import (
	"context"
	"strings"

	"github.com/watchjournal/backend/internal/entry/domain"
	"github.com/watchjournal/backend/internal/entry/dto"
	apperrors "github.com/watchjournal/backend/internal/errors"
)

type EntryService struct {
	repo domain.EntryRepository
}

func NewEntryService(repo domain.EntryRepository) *EntryService {
	return &EntryService{repo: repo}
}

func (s *EntryService) List(ctx context.Context, filter domain.ListFilter) ([]dto.EntryOutput, error) {
	views, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.EntryOutput, 0, len(views))
	for i := range views {
		entries = append(entries, toEntryOutput(&views[i]))
	}

	return entries, nil
}

func (s *EntryService) Get(ctx context.Context, id int64) (*dto.EntryOutput, error) {
	view, err := s.repo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, apperrors.ErrEntryNotFound
	}

	out := toEntryOutput(view)

	return &out, nil
}

func (s *EntryService) Create(ctx context.Context, userID int64, input dto.CreateEntryInput) (*dto.EntryOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &apperrors.ValidationError{Problems: []string{"Title is required"}}
	}

	status := input.Status
	if status == "" {
		status = domain.StatusPlanning
	}
	if !domain.ValidStatus(status) {
		return nil, &apperrors.ValidationError{Problems: []string{"Invalid status"}}
	}

	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 10) {
		return nil, &apperrors.ValidationError{Problems: []string{"Rating must be between 1 and 10"}}
	}

	entry := &domain.Entry{
		UserID:      userID,
		Title:       title,
		ReleaseYear: input.ReleaseYear,
		Review:      optionalText(input.Review),
		Rating:      input.Rating,
		Status:      status,
		PosterURL:   optionalText(input.PosterURL),
	}

	id, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *EntryService) Update(ctx context.Context, id, callerID int64, input dto.UpdateEntryInput) (*dto.EntryOutput, error) {
	if err := s.guardOwner(ctx, id, callerID); err != nil {
		return nil, err
	}

	changes := domain.UpdateChanges{
		ReleaseYear: input.ReleaseYear,
		Review:      trimmed(input.Review),
		Rating:      input.Rating,
		Status:      input.Status,
		PosterURL:   trimmed(input.PosterURL),
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, &apperrors.ValidationError{Problems: []string{"Title cannot be empty"}}
		}
		changes.Title = &title
	}
	if input.Status != nil && !domain.ValidStatus(*input.Status) {
		return nil, &apperrors.ValidationError{Problems: []string{"Invalid status"}}
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 10) {
		return nil, &apperrors.ValidationError{Problems: []string{"Rating must be between 1 and 10"}}
	}

	if !changes.Empty() {
		if err := s.repo.Update(ctx, id, changes); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

func (s *EntryService) Delete(ctx context.Context, id, callerID int64) error {
	if err := s.guardOwner(ctx, id, callerID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *EntryService) Like(ctx context.Context, entryID, userID int64) error {
	ownerID, err := s.repo.GetOwnerID(ctx, entryID)
	if err != nil {
		return err
	}
	if ownerID == 0 {
		return apperrors.ErrEntryNotFound
	}

	liked, err := s.repo.HasLike(ctx, entryID, userID)
	if err != nil {
		return err
	}
	if liked {
		return apperrors.ErrAlreadyLiked
	}

	// The unique constraint on likes settles concurrent double-likes.
	return s.repo.AddLike(ctx, entryID, userID)
}

func (s *EntryService) Unlike(ctx context.Context, entryID, userID int64) error {
	removed, err := s.repo.RemoveLike(ctx, entryID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrLikeNotFound
	}

	return nil
}

// guardOwner enforces the mutation ordering: a missing entry is NotFound
// before ownership is ever evaluated.
func (s *EntryService) guardOwner(ctx context.Context, entryID, callerID int64) error {
	ownerID, err := s.repo.GetOwnerID(ctx, entryID)
	if err != nil {
		return err
	}
	if ownerID == 0 {
		return apperrors.ErrEntryNotFound
	}
	if ownerID != callerID {
		return apperrors.ErrForbidden
	}

	return nil
}

func toEntryOutput(v *domain.EntryView) dto.EntryOutput {
	return dto.EntryOutput{
		ID:          v.ID,
		UserID:      v.UserID,
		Title:       v.Title,
		ReleaseYear: v.ReleaseYear,
		Review:      v.Review,
		Rating:      v.Rating,
		Status:      v.Status,
		PosterURL:   v.PosterURL,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		UserName:    v.UserName,
		LikeCount:   v.LikeCount,
	}
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}
