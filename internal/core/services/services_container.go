package services

import (
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/platform/config"
	"github.com/SscSPs/splitledger/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// tracker may be nil when analytics is not configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, tracker utils.EventTracker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.User = NewUserService(repos.UserRepo, repos.AccountRepo)
	container.Auth = NewAuthService(cfg, repos.AccountRepo)

	// Debt and receipt services derive status and counterparts through the sync service.
	container.Sync = NewSyncService(
		repos.DebtRepo,
		repos.IntentionRepo,
		container.User,
		WithSyncTracker(tracker),
	)
	container.Debt = NewDebtService(
		repos.DebtRepo,
		repos.IntentionRepo,
		repos.ReceiptRepo,
		container.Currency,
		container.User,
		container.Sync,
		WithDebtTracker(tracker),
	)
	container.Receipt = NewReceiptService(
		repos.ReceiptRepo,
		repos.DebtRepo,
		repos.IntentionRepo,
		container.Currency,
		container.User,
		WithReceiptTracker(tracker),
	)

	return container
}
