package services

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/dto"
)

// AuthSvcFacade covers account registration and session issuance.
type AuthSvcFacade interface {
	// Register creates an account (and its self user).
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error)

	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, req dto.LoginRequest) (string, *domain.Account, error)
}
