package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchjournal/backend/internal/entry/domain"
	"github.com/watchjournal/backend/internal/entry/dto"
	"github.com/watchjournal/backend/internal/entry/service"
	apperrors "github.com/watchjournal/backend/internal/errors"
	"github.com/watchjournal/backend/internal/mocks"
)

func newEntryService(t *testing.T) (*service.EntryService, *mocks.MockEntryRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockEntryRepository(ctrl)
	return service.NewEntryService(repo), repo
}

func TestEntryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("title is required", func(t *testing.T) {
		svc, _ := newEntryService(t)

		_, err := svc.Create(ctx, 1, dto.CreateEntryInput{Title: "   "})

		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"Title is required"}, ve.Problems)
	})

	t.Run("status defaults to planning", func(t *testing.T) {
		svc, repo := newEntryService(t)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *domain.Entry) (int64, error) {
				assert.Equal(t, domain.StatusPlanning, e.Status)
				assert.Equal(t, int64(1), e.UserID)
				assert.Nil(t, e.Review)
				return 3, nil
			})
		repo.EXPECT().GetView(gomock.Any(), int64(3)).Return(&domain.EntryView{
			Entry: domain.Entry{ID: 3, UserID: 1, Title: "Dune", Status: domain.StatusPlanning},
		}, nil)

		entry, err := svc.Create(ctx, 1, dto.CreateEntryInput{Title: "Dune"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), entry.ID)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc, _ := newEntryService(t)

		_, err := svc.Create(ctx, 1, dto.CreateEntryInput{Title: "Dune", Status: "abandoned"})

		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"Invalid status"}, ve.Problems)
	})

	t.Run("rating bounds", func(t *testing.T) {
		svc, _ := newEntryService(t)

		rating := 11
		_, err := svc.Create(ctx, 1, dto.CreateEntryInput{Title: "Dune", Rating: &rating})

		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"Rating must be between 1 and 10"}, ve.Problems)
	})
}

func TestEntryService_OwnershipGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("missing entry is NotFound before ownership, for any caller", func(t *testing.T) {
		svc, repo := newEntryService(t)

		repo.EXPECT().GetOwnerID(gomock.Any(), int64(9)).Return(int64(0), nil).Times(2)

		err := svc.Delete(ctx, 9, 1)
		require.ErrorIs(t, err, apperrors.ErrEntryNotFound)

		_, err = svc.Update(ctx, 9, 2, dto.UpdateEntryInput{})
		require.ErrorIs(t, err, apperrors.ErrEntryNotFound)
	})

	t.Run("non-owner mutation is Forbidden", func(t *testing.T) {
		svc, repo := newEntryService(t)

		repo.EXPECT().GetOwnerID(gomock.Any(), int64(9)).Return(int64(1), nil)

		err := svc.Delete(ctx, 9, 2)
		require.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("owner may delete", func(t *testing.T) {
		svc, repo := newEntryService(t)

		repo.EXPECT().GetOwnerID(gomock.Any(), int64(9)).Return(int64(1), nil)
		repo.EXPECT().Delete(gomock.Any(), int64(9)).Return(nil)

		require.NoError(t, svc.Delete(ctx, 9, 1))
	})
}

func TestEntryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("empty update re-reads without writing", func(t *testing.T) {
		svc, repo := newEntryService(t)

		repo.EXPECT().GetOwnerID(gomock.Any(), int64(3)).Return(int64(1), nil)
		repo.EXPECT().GetView(gomock.Any(), int64(3)).Return(&domain.EntryView{
			Entry: domain.Entry{ID: 3, UserID: 1, Title: "Dune", Status: domain.StatusPlanning},
		}, nil)

		entry, err := svc.Update(ctx, 3, 1, dto.UpdateEntryInput{})
		require.NoError(t, err)
		assert.Equal(t, "Dune", entry.Title)
	})

	t.Run("only provided fields change", func(t *testing.T) {
		svc, repo := newEntryService(t)

		status := domain.StatusWatched
		rating := 9
		repo.EXPECT().GetOwnerID(gomock.Any(), int64(3)).Return(int64(1), nil)
		repo.EXPECT().Update(gomock.Any(), int64(3), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, changes domain.UpdateChanges) error {
				assert.Nil(t, changes.Title)
				require.NotNil(t, changes.Status)
				assert.Equal(t, domain.StatusWatched, *changes.Status)
				require.NotNil(t, changes.Rating)
				assert.Equal(t, 9, *changes.Rating)
				return nil
			})
		repo.EXPECT().GetView(gomock.Any(), int64(3)).Return(&domain.EntryView{
			Entry: domain.Entry{ID: 3, UserID: 1, Title: "Dune", Status: status},
		}, nil)

		_, err := svc.Update(ctx, 3, 1, dto.UpdateEntryInput{Status: &status, Rating: &rating})
		require.NoError(t, err)
	})

	t.Run("title cannot be cleared", func(t *testing.T) {
		svc, repo := newEntryService(t)

		empty := "  "
		repo.EXPECT().GetOwnerID(gomock.Any(), int64(3)).Return(int64(1), nil)

		_, err := svc.Update(ctx, 3, 1, dto.UpdateEntryInput{Title: &empty})

		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"Title cannot be empty"}, ve.Problems)
	})
}

func TestEntryService_Like(t *testing.T) {
	ctx := context.Background()

	t.Run("missing entry", func(t *testing.T) {
		svc, repo := newEntryService(t)

		repo.EXPECT().GetOwnerID(gomock.Any(), int64(9)).Return(int64(0), nil)

		err := svc.Like(ctx, 9, 1)
		require.ErrorIs(t, err, apperrors.ErrEntryNotFound)
	})

	t.Run("duplicate like conflicts", func(t *testing.T) {
		svc, repo := newEntryService(t)

		repo.EXPECT().GetOwnerID(gomock.Any(), int64(9)).Return(int64(2), nil)
		repo.EXPECT().HasLike(gomock.Any(), int64(9), int64(1)).Return(true, nil)

		err := svc.Like(ctx, 9, 1)
		require.ErrorIs(t, err, apperrors.ErrAlreadyLiked)
	})

	t.Run("success", func(t *testing.T) {
		svc, repo := newEntryService(t)

		repo.EXPECT().GetOwnerID(gomock.Any(), int64(9)).Return(int64(2), nil)
		repo.EXPECT().HasLike(gomock.Any(), int64(9), int64(1)).Return(false, nil)
		repo.EXPECT().AddLike(gomock.Any(), int64(9), int64(1)).Return(nil)

		require.NoError(t, svc.Like(ctx, 9, 1))
	})
}

func TestEntryService_Unlike(t *testing.T) {
	ctx := context.Background()

	t.Run("no like to remove", func(t *testing.T) {
		svc, repo := newEntryService(t)

		repo.EXPECT().RemoveLike(gomock.Any(), int64(9), int64(1)).Return(false, nil)

		err := svc.Unlike(ctx, 9, 1)
		require.ErrorIs(t, err, apperrors.ErrLikeNotFound)
	})

	t.Run("success", func(t *testing.T) {
		svc, repo := newEntryService(t)

		repo.EXPECT().RemoveLike(gomock.Any(), int64(9), int64(1)).Return(true, nil)

		require.NoError(t, svc.Unlike(ctx, 9, 1))
	})
}
