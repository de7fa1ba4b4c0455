package repositories

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// UserReader defines read operations for contacts
type UserReader interface {
	// FindUserByID retrieves a contact regardless of owner.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsersByOwner lists the contacts of one account.
	ListUsersByOwner(ctx context.Context, ownerAccountID string) ([]domain.User, error)

	// FindUserByConnection finds the contact of ownerAccountID that is linked
	// to connectedAccountID.
	FindUserByConnection(ctx context.Context, ownerAccountID, connectedAccountID string) (*domain.User, error)
}

// UserWriter defines write operations for contacts
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUserConnection sets or clears (nil) the linked account of a contact.
	// Returns apperrors.ErrDuplicate when another contact of the owner is
	// already linked to the same account.
	UpdateUserConnection(ctx context.Context, userID, ownerAccountID string, connectedAccountID *string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
