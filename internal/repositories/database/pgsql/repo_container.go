package pgsql

import (
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		CurrencyRepo:  newPgxCurrencyRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
		DebtRepo:      newPgxDebtRepository(dbPool),
		IntentionRepo: newPgxSyncIntentionRepository(dbPool),
		ReceiptRepo:   newPgxReceiptRepository(dbPool),
	}
}
