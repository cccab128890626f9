package service

import (
	"context"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/watchjournal/backend/internal/auth/domain"
	"github.com/watchjournal/backend/internal/auth/dto"
	apperrors "github.com/watchjournal/backend/internal/errors"
)

type UserService struct {
	repo   domain.UserRepository
	tokens *TokenService
}

func NewUserService(repo domain.UserRepository, tokens *TokenService) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register creates a user and issues its first token.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	displayName := strings.TrimSpace(input.DisplayName)

	var problems []string
	if !validEmail(input.Email) {
		problems = append(problems, "Valid email is required")
	}
	if len(input.Password) < 8 {
		problems = append(problems, "Password must be at least 8 characters")
	}
	if displayName == "" {
		problems = append(problems, "Display name is required")
	}
	if len(problems) > 0 {
		return nil, &apperrors.ValidationError{Problems: problems}
	}

	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrEmailAlreadyInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, &domain.User{
		Email:        input.Email,
		PasswordHash: string(hashed),
		DisplayName:  displayName,
	})
	if err != nil {
		// The check above races with concurrent registrations; the unique
		// constraint on users.email settles it.
		return nil, err
	}

	return s.authResponse(ctx, id)
}

// Login verifies credentials and issues a fresh token; previously issued
// tokens stay valid.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	if !validEmail(input.Email) || input.Password == "" {
		return nil, &apperrors.ValidationError{Problems: []string{"Email and password are required"}}
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: toUserOutput(user)}, nil
}

// Logout revokes the presented token.
func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

func (s *UserService) authResponse(ctx context.Context, userID int64) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return &dto.AuthResponse{Token: token, User: toUserOutput(user)}, nil
}

func toUserOutput(u *domain.User) dto.UserOutput {
	return dto.UserOutput{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
