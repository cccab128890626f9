package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/watchjournal/backend/internal/auth/dto"
	"github.com/watchjournal/backend/internal/auth/service"
	apperrors "github.com/watchjournal/backend/internal/errors"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	// A malformed body validates the same as an empty one.
	_ = c.BodyParser(&input)

	resp, err := h.userService.Register(c.Context(), input)
	if err != nil {
		var ve *apperrors.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Invalid payload",
				"errors":  ve.Problems,
			})
		case errors.Is(err, apperrors.ErrEmailAlreadyInUse):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Email already registered",
			})
		default:
			return err
		}
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	_ = c.BodyParser(&input)

	resp, err := h.userService.Login(c.Context(), input)
	if err != nil {
		var ve *apperrors.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Invalid credentials",
				"details": "Email and password are required",
			})
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid credentials",
			})
		default:
			return err
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": CurrentUser(c),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.userService.Logout(c.Context(), CurrentToken(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}
