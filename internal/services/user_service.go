package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"dreamhome/internal/domain"
	"dreamhome/internal/validate"
)

type UserService struct {
	Users UserStore
}

func NewUserService(users UserStore) *UserService { return &UserService{Users: users} }

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.Users.ByID(ctx, userID)
}

// UpdateProfile changes name and email. The new email must not belong to
// another account.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, email string) error {
	name, ok := validate.Name(name)
	if !ok {
		return domain.Invalid("name", "Name is required")
	}
	email, ok = validate.Email(email)
	if !ok {
		return domain.Invalid("email", "Invalid email address")
	}
	u, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return err
	}
	if email != u.Email {
		other, err := s.Users.ByEmail(ctx, email)
		if err == nil && other.ID != u.ID {
			return domain.ErrEmailInUse
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
	}
	return s.Users.UpdateProfile(ctx, userID, name, email)
}

func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(current)) != nil {
		return domain.ErrWrongPassword
	}
	if !validate.Password(next) {
		return domain.Invalid("new_password", "Password must be 8 to 72 characters")
	}
	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, userID, hash)
}
