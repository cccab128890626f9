package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdto "github.com/watchjournal/backend/internal/auth/dto"
	authhandler "github.com/watchjournal/backend/internal/auth/handler"
	"github.com/watchjournal/backend/internal/entry/domain"
	"github.com/watchjournal/backend/internal/entry/dto"
	"github.com/watchjournal/backend/internal/entry/handler"
	"github.com/watchjournal/backend/internal/entry/service"
	"github.com/watchjournal/backend/internal/mocks"
)

// setupEntryApp wires the entry routes with a stub identity instead of the
// real auth middleware; the dispatch-level auth behavior is covered by the
// server package tests.
func setupEntryApp(t *testing.T, callerID int64) (*fiber.App, *mocks.MockEntryRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockEntryRepository(ctrl)
	h := handler.NewEntryHandler(service.NewEntryService(repo))

	asUser := func(c *fiber.Ctx) error {
		c.Locals(authhandler.UserContextKey, &authdto.UserOutput{ID: callerID})
		return c.Next()
	}

	app := fiber.New()
	app.Get("/entries", h.List)
	app.Get("/entries/:id<regex(^\\d+$)>", h.Show)
	app.Post("/entries", asUser, h.Create)
	app.Put("/entries/:id<regex(^\\d+$)>", asUser, h.Update)
	app.Delete("/entries/:id<regex(^\\d+$)>", asUser, h.Delete)
	app.Post("/entries/:id<regex(^\\d+$)>/like", asUser, h.Like)
	app.Delete("/entries/:id<regex(^\\d+$)>/like", asUser, h.Unlike)

	return app, repo
}

func entryView(id, userID int64, title string) *domain.EntryView {
	now := time.Now()
	return &domain.EntryView{
		Entry: domain.Entry{
			ID: id, UserID: userID, Title: title,
			Status: domain.StatusPlanning, CreatedAt: now, UpdatedAt: now,
		},
		UserName: "A",
	}
}

func TestEntryHandler_List(t *testing.T) {
	app, repo := setupEntryApp(t, 1)

	repo.EXPECT().List(gomock.Any(), domain.ListFilter{Status: "watched", UserID: 2}).
		Return([]domain.EntryView{*entryView(1, 2, "Dune")}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/entries?status=watched&user_id=2", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Entries []dto.EntryOutput `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Entries, 1)
	assert.Equal(t, "Dune", body.Entries[0].Title)
}

func TestEntryHandler_Show(t *testing.T) {
	app, repo := setupEntryApp(t, 1)

	repo.EXPECT().GetView(gomock.Any(), int64(42)).Return(entryView(42, 2, "Dune"), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/entries/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	repo.EXPECT().GetView(gomock.Any(), int64(9)).Return(nil, nil)

	resp, err = app.Test(httptest.NewRequest("GET", "/entries/9", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Entry not found", body["message"])
}

func TestEntryHandler_Create(t *testing.T) {
	app, repo := setupEntryApp(t, 1)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(7), nil)
	repo.EXPECT().GetView(gomock.Any(), int64(7)).Return(entryView(7, 1, "Dune"), nil)

	body, _ := json.Marshal(dto.CreateEntryInput{Title: "Dune"})
	req := httptest.NewRequest("POST", "/entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out struct {
		Entry dto.EntryOutput `json:"entry"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, int64(7), out.Entry.ID)
}

func TestEntryHandler_CreateValidation(t *testing.T) {
	app, _ := setupEntryApp(t, 1)

	body, _ := json.Marshal(dto.CreateEntryInput{Title: ""})
	req := httptest.NewRequest("POST", "/entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Title is required", out["message"])
}

func TestEntryHandler_UpdateForbidden(t *testing.T) {
	app, repo := setupEntryApp(t, 2)

	repo.EXPECT().GetOwnerID(gomock.Any(), int64(7)).Return(int64(1), nil)

	body, _ := json.Marshal(dto.UpdateEntryInput{})
	req := httptest.NewRequest("PUT", "/entries/7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Forbidden", out["message"])
}

func TestEntryHandler_DeleteMissing(t *testing.T) {
	app, repo := setupEntryApp(t, 1)

	repo.EXPECT().GetOwnerID(gomock.Any(), int64(9)).Return(int64(0), nil)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/entries/9", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Entry not found", out["message"])
}

func TestEntryHandler_Like(t *testing.T) {
	app, repo := setupEntryApp(t, 1)

	repo.EXPECT().GetOwnerID(gomock.Any(), int64(7)).Return(int64(2), nil)
	repo.EXPECT().HasLike(gomock.Any(), int64(7), int64(1)).Return(false, nil)
	repo.EXPECT().AddLike(gomock.Any(), int64(7), int64(1)).Return(nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/entries/7/like", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Second like conflicts.
	repo.EXPECT().GetOwnerID(gomock.Any(), int64(7)).Return(int64(2), nil)
	repo.EXPECT().HasLike(gomock.Any(), int64(7), int64(1)).Return(true, nil)

	resp, err = app.Test(httptest.NewRequest("POST", "/entries/7/like", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Already liked", out["message"])
}

func TestEntryHandler_Unlike(t *testing.T) {
	app, repo := setupEntryApp(t, 1)

	repo.EXPECT().RemoveLike(gomock.Any(), int64(7), int64(1)).Return(false, nil)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/entries/7/like", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Like not found", out["message"])
}
