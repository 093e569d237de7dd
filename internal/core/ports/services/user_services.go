package services

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// UserSvcFacade defines the account operations consumed by the auth handlers
// and the membership workflow.
type UserSvcFacade interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (bool, error)
	UserExists(ctx context.Context, username string) (bool, error)
}
