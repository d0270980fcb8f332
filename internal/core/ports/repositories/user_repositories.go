package repositories

import (
	"context"

	"github.com/SscSPs/easyledger/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user together with its default settings row.
	// Returns apperrors.ErrDuplicate when the email is taken.
	SaveUser(ctx context.Context, user domain.User, defaults domain.Settings) error

	// UpdateUser updates name, provider link and verification flag.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
