package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/utils"
)

// userService handles account registration and the credential check consumed
// by the login handler.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a new account with a bcrypt password hash.
func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if len(password) < 3 {
		return nil, fmt.Errorf("%w: password must be at least 3 characters", apperrors.ErrValidation)
	}

	exists, err := s.userRepo.UserExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("username " + username + " already exists")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	user := domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", username))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", username))
	return &user, nil
}

// VerifyCredentials checks a username/password pair. Unknown users verify as
// false without error.
func (s *userService) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return utils.CheckPasswordHash(password, user.PasswordHash), nil
}

// UserExists reports whether the username has an account.
func (s *userService) UserExists(ctx context.Context, username string) (bool, error) {
	return s.userRepo.UserExists(ctx, username)
}
