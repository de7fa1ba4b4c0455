package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewUserService creates the contact service. accountRepo is used to look up
// accounts by email when connecting a contact.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, accountRepo: accountRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, accountID string, req dto.CreateUserRequest) (*domain.User, error) {
	user := domain.User{
		UserID:         uuid.NewString(),
		OwnerAccountID: accountID,
		Name:           req.Name,
		AuditFields:    domain.AuditFields{CreatedAt: now()},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUser hides contacts of other accounts behind ErrNotFound.
func (s *userService) GetUser(ctx context.Context, accountID, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.OwnerAccountID != accountID {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, accountID string) ([]domain.User, error) {
	users, err := s.userRepo.ListUsersByOwner(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *userService) ConnectUser(ctx context.Context, accountID, userID string, req dto.ConnectUserRequest) (*domain.User, error) {
	user, err := s.GetUser(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	if user.UserID == accountID {
		return nil, fmt.Errorf("cannot connect your own user: %w", apperrors.ErrBadRequest)
	}

	target, err := s.accountRepo.FindAccountByEmail(ctx, req.AccountEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no account registered with this email: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	if target.AccountID == accountID {
		return nil, fmt.Errorf("cannot connect a user to your own account: %w", apperrors.ErrBadRequest)
	}

	if err := s.userRepo.UpdateUserConnection(ctx, userID, accountID, &target.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("another user is already connected to this account: %w", apperrors.ErrConflict)
		}
		s.LogError(ctx, err, "Failed to connect user", slog.String("user_id", userID))
		return nil, err
	}

	user.ConnectedAccountID = &target.AccountID
	s.LogInfo(ctx, "User connected", slog.String("user_id", userID), slog.String("connected_account_id", target.AccountID))
	return user, nil
}

func (s *userService) DisconnectUser(ctx context.Context, accountID, userID string) (*domain.User, error) {
	user, err := s.GetUser(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	if user.UserID == accountID {
		return nil, fmt.Errorf("cannot disconnect your own user: %w", apperrors.ErrBadRequest)
	}
	if !user.IsConnected() {
		return user, nil
	}
	if err := s.userRepo.UpdateUserConnection(ctx, userID, accountID, nil); err != nil {
		s.LogError(ctx, err, "Failed to disconnect user", slog.String("user_id", userID))
		return nil, err
	}
	user.ConnectedAccountID = nil
	s.LogInfo(ctx, "User disconnected", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) ResolveCounterpart(ctx context.Context, accountID, userID string) (*domain.Counterpart, error) {
	user, err := s.GetUser(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsConnected() {
		return nil, fmt.Errorf("user %s is not connected to an account: %w", userID, apperrors.ErrPreconditionFailed)
	}
	back, err := s.userRepo.FindUserByConnection(ctx, *user.ConnectedAccountID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("user %s is not mutually connected: %w", userID, apperrors.ErrPreconditionFailed)
		}
		return nil, err
	}
	return &domain.Counterpart{AccountID: *user.ConnectedAccountID, UserID: back.UserID}, nil
}

func (s *userService) FindConnectedUser(ctx context.Context, ownerAccountID, connectedAccountID string) (*domain.User, error) {
	return s.userRepo.FindUserByConnection(ctx, ownerAccountID, connectedAccountID)
}
