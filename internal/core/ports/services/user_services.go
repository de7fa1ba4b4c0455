package services

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/dto"
)

// UserReaderSvc defines read operations for contacts
type UserReaderSvc interface {
	// GetUser returns a contact owned by accountID.
	GetUser(ctx context.Context, accountID, userID string) (*domain.User, error)

	ListUsers(ctx context.Context, accountID string) ([]domain.User, error)
}

// UserWriterSvc defines write operations for contacts
type UserWriterSvc interface {
	CreateUser(ctx context.Context, accountID string, req dto.CreateUserRequest) (*domain.User, error)

	// ConnectUser links the contact to the account registered with req.AccountEmail.
	ConnectUser(ctx context.Context, accountID, userID string, req dto.ConnectUserRequest) (*domain.User, error)

	DisconnectUser(ctx context.Context, accountID, userID string) (*domain.User, error)
}

// CounterpartResolverSvc walks the connection graph.
type CounterpartResolverSvc interface {
	// ResolveCounterpart returns the account behind userID (owned by accountID)
	// and the contact that account keeps for accountID. Fails with
	// apperrors.ErrNotFound for an unknown contact and
	// apperrors.ErrPreconditionFailed when the link is not mutual.
	ResolveCounterpart(ctx context.Context, accountID, userID string) (*domain.Counterpart, error)

	// FindConnectedUser returns the contact of ownerAccountID linked to
	// connectedAccountID, or apperrors.ErrNotFound.
	FindConnectedUser(ctx context.Context, ownerAccountID, connectedAccountID string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	CounterpartResolverSvc
}
