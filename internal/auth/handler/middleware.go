package handler

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/watchjournal/backend/internal/auth/domain"
	"github.com/watchjournal/backend/internal/auth/dto"
	"github.com/watchjournal/backend/internal/auth/service"
)

const (
	// UserContextKey stores the authenticated identity in the Fiber context.
	UserContextKey = "currentUser"
	// TokenContextKey stores the bearer token the identity was resolved from.
	TokenContextKey = "currentToken"
)

// Distinct authentication failure causes. They all map to the same 401 body;
// keeping them apart makes the middleware testable without leaking anything
// to clients.
var (
	errNoAuthHeader     = errors.New("missing authorization header")
	errMalformedBearer  = errors.New("malformed bearer header")
	errTokenNotResolved = errors.New("token not resolved")
	errUserGone         = errors.New("token user no longer exists")
)

var bearerPattern = regexp.MustCompile(`(?i)^Bearer\s+(.*)$`)

// Middleware is the single authorization gate: header parse, token
// resolution, then user existence, in that order.
type Middleware struct {
	tokens *service.TokenService
	users  domain.UserRepository
}

func NewMiddleware(tokens *service.TokenService, users domain.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

func (m *Middleware) RequireUser(c *fiber.Ctx) error {
	user, token, err := m.authenticate(c)
	if err != nil {
		if isAuthFailure(err) {
			return unauthorized(c)
		}
		// Storage failure, not an authentication verdict.
		return err
	}

	c.Locals(UserContextKey, user)
	c.Locals(TokenContextKey, token)

	return c.Next()
}

func (m *Middleware) authenticate(c *fiber.Ctx) (*dto.UserOutput, string, error) {
	token, err := extractBearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return nil, "", err
	}

	userID, err := m.tokens.ResolveUserID(c.Context(), token)
	if err != nil {
		return nil, "", err
	}
	if userID == 0 {
		return nil, "", errTokenNotResolved
	}

	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", errUserGone
	}

	return &dto.UserOutput{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}, token, nil
}

func isAuthFailure(err error) bool {
	return errors.Is(err, errNoAuthHeader) ||
		errors.Is(err, errMalformedBearer) ||
		errors.Is(err, errTokenNotResolved) ||
		errors.Is(err, errUserGone)
}

// CurrentUser returns the identity stashed by RequireUser. It is only valid
// on routes behind the middleware.
func CurrentUser(c *fiber.Ctx) *dto.UserOutput {
	user, _ := c.Locals(UserContextKey).(*dto.UserOutput)
	return user
}

// CurrentToken returns the bearer token the current identity was resolved from.
func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(TokenContextKey).(string)
	return token
}

func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", errNoAuthHeader
	}

	matches := bearerPattern.FindStringSubmatch(header)
	if matches == nil {
		return "", errMalformedBearer
	}

	token := strings.TrimSpace(matches[1])
	if token == "" {
		return "", errMalformedBearer
	}

	return token, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthorized",
	})
}
