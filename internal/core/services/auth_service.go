package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/platform/config"
	"github.com/SscSPs/splitledger/internal/utils"
	"github.com/google/uuid"
)

// authService registers accounts and issues JWT session tokens.
type authService struct {
	BaseService
	cfg         *config.Config
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, accountRepo portsrepo.AccountRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, accountRepo: accountRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	account := domain.Account{
		AccountID:    uuid.NewString(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		AuditFields:  domain.AuditFields{CreatedAt: now()},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("email already registered: %w", apperrors.ErrConflict)
		}
		s.LogError(ctx, err, "Failed to register account")
		return nil, err
	}

	s.LogInfo(ctx, "Account registered", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.Account, error) {
	account, err := s.accountRepo.FindAccountByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
		}
		return "", nil, err
	}
	if !utils.CheckPasswordHash(req.Password, account.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("account_id", account.AccountID))
		return "", nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(account.AccountID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate token", slog.String("account_id", account.AccountID))
		return "", nil, apperrors.NewAppError(500, "failed to generate token", err)
	}
	return token, account, nil
}
