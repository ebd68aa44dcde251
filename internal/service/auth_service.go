package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/auth"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/models"
)

// AuthService handles registration and token issuance.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates a new user account.
// Username conflicts and weak passwords surface as field-level ValidationErrors.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	fields := map[string]string{}
	if username == "" {
		fields["username"] = "This field is required."
	}
	if password == "" {
		fields["password"] = "This field is required."
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	user, err := s.authenticator.Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			return nil, invalid("username", "A user with that username already exists.")
		}
		if errors.Is(err, auth.ErrWeakPassword) {
			return nil, invalid("password", err.Error())
		}
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login authenticates the credentials and returns a signed bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	if username == "" || password == "" {
		return "", nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return "", nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("authentication failed: %w", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return "", nil, err
	}

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return token, user, nil
}
