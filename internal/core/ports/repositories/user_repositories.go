package repositories

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UserExists(ctx context.Context, username string) (bool, error)
}
