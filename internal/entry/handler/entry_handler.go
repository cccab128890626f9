package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	authhandler "github.com/watchjournal/backend/internal/auth/handler"
	"github.com/watchjournal/backend/internal/entry/domain"
	"github.com/watchjournal/backend/internal/entry/dto"
	"github.com/watchjournal/backend/internal/entry/service"
	apperrors "github.com/watchjournal/backend/internal/errors"
)

type EntryHandler struct {
	entryService *service.EntryService
}

func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

func (h *EntryHandler) List(c *fiber.Ctx) error {
	filter := domain.ListFilter{Status: c.Query("status")}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			filter.UserID = userID
		}
	}

	entries, err := h.entryService.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"entries": entries,
	})
}

func (h *EntryHandler) Show(c *fiber.Ctx) error {
	id, ok := entryID(c)
	if !ok {
		return notFound(c)
	}

	entry, err := h.entryService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Entry not found",
			})
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"entry": entry,
	})
}

func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateEntryInput
	_ = c.BodyParser(&input)

	user := authhandler.CurrentUser(c)

	entry, err := h.entryService.Create(c.Context(), user.ID, input)
	if err != nil {
		return respondEntryError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"entry": entry,
	})
}

func (h *EntryHandler) Update(c *fiber.Ctx) error {
	id, ok := entryID(c)
	if !ok {
		return notFound(c)
	}

	var input dto.UpdateEntryInput
	_ = c.BodyParser(&input)

	user := authhandler.CurrentUser(c)

	entry, err := h.entryService.Update(c.Context(), id, user.ID, input)
	if err != nil {
		return respondEntryError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"entry": entry,
	})
}

func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	id, ok := entryID(c)
	if !ok {
		return notFound(c)
	}

	user := authhandler.CurrentUser(c)

	if err := h.entryService.Delete(c.Context(), id, user.ID); err != nil {
		return respondEntryError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Entry deleted successfully",
	})
}

func (h *EntryHandler) Like(c *fiber.Ctx) error {
	id, ok := entryID(c)
	if !ok {
		return notFound(c)
	}

	user := authhandler.CurrentUser(c)

	if err := h.entryService.Like(c.Context(), id, user.ID); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyLiked) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Already liked",
			})
		}
		return respondEntryError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Entry liked",
	})
}

func (h *EntryHandler) Unlike(c *fiber.Ctx) error {
	id, ok := entryID(c)
	if !ok {
		return notFound(c)
	}

	user := authhandler.CurrentUser(c)

	if err := h.entryService.Unlike(c.Context(), id, user.ID); err != nil {
		if errors.Is(err, apperrors.ErrLikeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Like not found",
			})
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Entry unliked",
	})
}

func respondEntryError(c *fiber.Ctx, err error) error {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": ve.Problems[0],
		})
	case errors.Is(err, apperrors.ErrEntryNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Entry not found",
		})
	case errors.Is(err, apperrors.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden",
		})
	default:
		return err
	}
}

// entryID parses the :id path parameter. The route constraint already limits
// it to decimal digits, so this is a safety net: anything that still fails to
// parse as a positive id is a dispatch miss, not a conversion error.
func entryID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Not Found",
	})
}
