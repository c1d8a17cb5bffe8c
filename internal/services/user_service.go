package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/proxytool/proxytool/internal/models"
	pgrepo "github.com/proxytool/proxytool/internal/repositories/postgres"
	"github.com/proxytool/proxytool/internal/utils"
)

type UserService interface {
	SignUp(ctx context.Context, email string) (*models.User, error)
	Get(ctx context.Context, email string) (*models.User, error)
	// Delete removes the user and all their conversation turns; it returns
	// the deleted user's id.
	Delete(ctx context.Context, email string) (string, error)
}

type userService struct {
	users pgrepo.UserRepository
}

func NewUserService(users pgrepo.UserRepository) UserService {
	return &userService{users: users}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) SignUp(ctx context.Context, email string) (*models.User, error) {
	const op = "UserService.SignUp"

	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, utils.E(utils.CodeInvalidArgument, op, "a valid email is required", nil)
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check email existence", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "email address '"+email+"' is already registered", nil)
	}

	row := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return row, nil
}

func (s *userService) Get(ctx context.Context, email string) (*models.User, error) {
	const op = "UserService.Get"

	email = normalizeEmail(email)
	if email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}

	row, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "email address '"+email+"' not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}
	return row, nil
}

func (s *userService) Delete(ctx context.Context, email string) (string, error) {
	const op = "UserService.Delete"

	email = normalizeEmail(email)
	if email == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}

	row, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeNotFound, op, "email address '"+email+"' not found", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	if err := s.users.DeleteByEmail(ctx, email); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeNotFound, op, "email address '"+email+"' not found", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to delete user", err)
	}
	return row.ID, nil
}
