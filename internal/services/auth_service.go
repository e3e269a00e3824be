package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"dreamhome/internal/auth"
	"dreamhome/internal/domain"
	"dreamhome/internal/validate"
)

type AuthService struct {
	Users  UserStore
	Tokens *auth.TokenService
}

func NewAuthService(users UserStore, tokens *auth.TokenService) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

// Register creates an account. A taken email yields domain.ErrEmailInUse.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name, ok := validate.Name(name)
	if !ok {
		return nil, domain.Invalid("name", "Name is required")
	}
	email, ok = validate.Email(email)
	if !ok {
		return nil, domain.Invalid("email", "Invalid email address")
	}
	if !validate.Password(password) {
		return nil, domain.Invalid("password", "Password must be 8 to 72 characters")
	}

	_, err := s.Users.ByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailInUse
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Name: name, Email: email, Hash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email, ok := validate.Email(email)
	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	u, err := s.Users.ByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.Tokens.Issue(u.ID, u.Email)
}

// Authenticate verifies a bearer token.
func (s *AuthService) Authenticate(token string) (auth.Claims, error) {
	return s.Tokens.Verify(token)
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
