package repositories

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// AccountReader defines read operations for accounts
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// FindAccountByEmail looks an account up by its (case-insensitive) email.
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// AccountWriter defines write operations for accounts
type AccountWriter interface {
	// SaveAccount inserts the account together with its self user (user_id == account_id).
	// Returns apperrors.ErrDuplicate when the email is taken.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
