package services_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
)

// memStore is an in-memory stand-in for the postgres repositories. It keeps
// the matching rules of the SQL (mirror lookup, receipt upsert key, the
// conditional claim in AcceptIntention) so whole protocol flows can be
// exercised without a database.
type memStore struct {
	mu         sync.Mutex
	accounts   map[string]domain.Account
	users      map[string]domain.User
	currencies map[string]domain.Currency
	debts      map[string]domain.Debt
	intentions map[string]domain.SyncIntention
	receipts   map[string]domain.Receipt
}

var (
	_ portsrepo.AccountRepositoryFacade       = (*memStore)(nil)
	_ portsrepo.UserRepositoryFacade          = (*memStore)(nil)
	_ portsrepo.CurrencyRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.DebtRepositoryFacade          = (*memStore)(nil)
	_ portsrepo.SyncIntentionRepositoryFacade = (*memStore)(nil)
	_ portsrepo.ReceiptRepositoryFacade       = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]domain.Account{},
		users:    map[string]domain.User{},
		currencies: map[string]domain.Currency{
			"USD": {CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
			"JPY": {CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0},
		},
		debts:      map[string]domain.Debt{},
		intentions: map[string]domain.SyncIntention{},
		receipts:   map[string]domain.Receipt{},
	}
}

func (s *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   s,
		CurrencyRepo:  s,
		UserRepo:      s,
		DebtRepo:      s,
		IntentionRepo: s,
		ReceiptRepo:   s,
	}
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, apperrors.ErrNotFound)
}

// --- accounts ---

func (s *memStore) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, notFound("account", accountID)
	}
	return &a, nil
}

func (s *memStore) FindAccountByEmail(_ context.Context, email string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, notFound("account", email)
}

func (s *memStore) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, account.Email) {
			return apperrors.ErrDuplicate
		}
	}
	s.accounts[account.AccountID] = account
	s.users[account.AccountID] = domain.User{UserID: account.AccountID, OwnerAccountID: account.AccountID, Name: account.Name}
	return nil
}

// --- users ---

func (s *memStore) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, notFound("user", userID)
	}
	return &u, nil
}

func (s *memStore) ListUsersByOwner(_ context.Context, ownerAccountID string) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := []domain.User{}
	for _, u := range s.users {
		if u.OwnerAccountID == ownerAccountID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

func (s *memStore) findUserByConnection(ownerAccountID, connectedAccountID string) (*domain.User, bool) {
	for _, u := range s.users {
		if u.OwnerAccountID == ownerAccountID && u.ConnectedAccountID != nil && *u.ConnectedAccountID == connectedAccountID {
			return &u, true
		}
	}
	return nil, false
}

func (s *memStore) FindUserByConnection(_ context.Context, ownerAccountID, connectedAccountID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.findUserByConnection(ownerAccountID, connectedAccountID)
	if !ok {
		return nil, notFound("user connected to", connectedAccountID)
	}
	return u, nil
}

func (s *memStore) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
	return nil
}

func (s *memStore) UpdateUserConnection(_ context.Context, userID, ownerAccountID string, connectedAccountID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.OwnerAccountID != ownerAccountID {
		return notFound("user", userID)
	}
	if connectedAccountID != nil {
		if other, ok := s.findUserByConnection(ownerAccountID, *connectedAccountID); ok && other.UserID != userID {
			return apperrors.ErrDuplicate
		}
	}
	u.ConnectedAccountID = connectedAccountID
	s.users[userID] = u
	return nil
}

// mutualCounterpart mirrors the SQL connection check: the owner's user
// points at an account that points back at the owner.
func (s *memStore) mutualCounterpart(ownerAccountID, userID string) (string, string, bool) {
	u, ok := s.users[userID]
	if !ok || u.OwnerAccountID != ownerAccountID || !u.IsConnected() {
		return "", "", false
	}
	back, ok := s.findUserByConnection(*u.ConnectedAccountID, ownerAccountID)
	if !ok {
		return "", "", false
	}
	return *u.ConnectedAccountID, back.UserID, true
}

// --- currencies ---

func (s *memStore) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	c, ok := s.currencies[currencyCode]
	if !ok {
		return nil, notFound("currency", currencyCode)
	}
	return &c, nil
}

func (s *memStore) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	res := make([]domain.Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CurrencyCode < res[j].CurrencyCode })
	return res, nil
}

// --- debts ---

func (s *memStore) FindDebtByID(_ context.Context, debtID string) (*domain.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.debts[debtID]
	if !ok {
		return nil, notFound("debt", debtID)
	}
	return &d, nil
}

func (s *memStore) ListDebts(_ context.Context, ownerAccountID string, filter portsrepo.DebtFilter) ([]domain.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	debts := []domain.Debt{}
	for _, d := range s.debts {
		if d.OwnerAccountID != ownerAccountID {
			continue
		}
		if filter.UserID != nil && d.UserID != *filter.UserID {
			continue
		}
		if c := filter.After; c != nil {
			if d.Timestamp.After(c.Timestamp) || (d.Timestamp.Equal(c.Timestamp) && d.DebtID >= c.ID) {
				continue
			}
		}
		debts = append(debts, d)
	}
	sort.Slice(debts, func(i, j int) bool {
		if !debts[i].Timestamp.Equal(debts[j].Timestamp) {
			return debts[i].Timestamp.After(debts[j].Timestamp)
		}
		return debts[i].DebtID > debts[j].DebtID
	})
	if filter.Limit > 0 && len(debts) > filter.Limit {
		debts = debts[:filter.Limit]
	}
	return debts, nil
}

func (s *memStore) ListDebtsByReceipt(_ context.Context, ownerAccountID, receiptID string) ([]domain.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	debts := []domain.Debt{}
	for _, d := range s.debts {
		if d.OwnerAccountID == ownerAccountID && d.ReceiptID != nil && *d.ReceiptID == receiptID {
			debts = append(debts, d)
		}
	}
	sort.Slice(debts, func(i, j int) bool { return debts[i].UserID < debts[j].UserID })
	return debts, nil
}

func (s *memStore) FindMirroredDebt(_ context.Context, ownerAccountID, userID string, debt domain.Debt) (*domain.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.debts {
		if d.OwnerAccountID != ownerAccountID || d.UserID != userID {
			continue
		}
		if debt.ReceiptID != nil {
			if d.ReceiptID != nil && *d.ReceiptID == *debt.ReceiptID {
				return &d, nil
			}
			continue
		}
		if d.ReceiptID == nil && d.CorrelationID == debt.CorrelationID {
			return &d, nil
		}
	}
	return nil, notFound("mirrored debt of", debt.DebtID)
}

func (s *memStore) SaveDebt(_ context.Context, debt domain.Debt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.debts[debt.DebtID]; ok {
		return apperrors.ErrDuplicate
	}
	s.debts[debt.DebtID] = debt
	return nil
}

func (s *memStore) UpdateDebt(_ context.Context, debt domain.Debt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.debts[debt.DebtID]
	if !ok || existing.OwnerAccountID != debt.OwnerAccountID {
		return notFound("debt", debt.DebtID)
	}
	existing.Amount = debt.Amount
	existing.CurrencyCode = debt.CurrencyCode
	existing.Timestamp = debt.Timestamp
	existing.Note = debt.Note
	existing.LockedTimestamp = debt.LockedTimestamp
	s.debts[debt.DebtID] = existing
	return nil
}

func (s *memStore) UpsertReceiptDebt(_ context.Context, debt domain.Debt) (*domain.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range s.debts {
		if d.OwnerAccountID == debt.OwnerAccountID && d.UserID == debt.UserID &&
			d.ReceiptID != nil && debt.ReceiptID != nil && *d.ReceiptID == *debt.ReceiptID {
			d.Amount = debt.Amount
			d.CurrencyCode = debt.CurrencyCode
			d.Timestamp = debt.Timestamp
			d.LockedTimestamp = debt.LockedTimestamp
			s.debts[id] = d
			return &d, nil
		}
	}
	s.debts[debt.DebtID] = debt
	return &debt, nil
}

func (s *memStore) DeleteDebt(_ context.Context, debtID, ownerAccountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.debts[debtID]
	if !ok || d.OwnerAccountID != ownerAccountID {
		return notFound("debt", debtID)
	}
	delete(s.debts, debtID)
	delete(s.intentions, debtID)
	return nil
}

// --- intentions ---

func (s *memStore) FindIntentionByDebtID(_ context.Context, debtID string) (*domain.SyncIntention, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.intentions[debtID]
	if !ok {
		return nil, notFound("sync intention", debtID)
	}
	return &in, nil
}

func (s *memStore) ListOutboundIntentions(_ context.Context, accountID string) ([]domain.SyncIntention, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []domain.SyncIntention{}
	for _, in := range s.intentions {
		if in.OwnerAccountID == accountID {
			res = append(res, in)
		}
	}
	return res, nil
}

func (s *memStore) ListInboundIntentions(_ context.Context, accountID string) ([]domain.SyncIntention, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []domain.SyncIntention{}
	for _, in := range s.intentions {
		d := s.debts[in.DebtID]
		if target, _, ok := s.mutualCounterpart(d.OwnerAccountID, d.UserID); ok && target == accountID {
			res = append(res, in)
		}
	}
	return res, nil
}

func (s *memStore) SaveIntention(_ context.Context, intention domain.SyncIntention) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.intentions[intention.DebtID]; ok {
		return apperrors.ErrDuplicate
	}
	s.intentions[intention.DebtID] = intention
	return nil
}

func (s *memStore) DeleteIntention(_ context.Context, debtID, ownerAccountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.intentions[debtID]
	if !ok || in.OwnerAccountID != ownerAccountID {
		return notFound("sync intention", debtID)
	}
	delete(s.intentions, debtID)
	return nil
}

func (s *memStore) AcceptIntention(_ context.Context, debtID string, lockedTimestamp time.Time, target domain.Debt) (*domain.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.intentions[debtID]
	proposer := s.debts[debtID]
	if !ok || !in.LockedTimestamp.Equal(lockedTimestamp) || !domain.SameLock(proposer.LockedTimestamp, &lockedTimestamp) {
		return nil, notFound("sync intention", debtID)
	}
	delete(s.intentions, debtID)

	if existing, ok := s.debts[target.DebtID]; ok {
		if existing.OwnerAccountID != target.OwnerAccountID {
			return nil, apperrors.ErrForbidden
		}
		existing.Amount = target.Amount
		existing.CurrencyCode = target.CurrencyCode
		existing.Timestamp = target.Timestamp
		existing.LockedTimestamp = target.LockedTimestamp
		existing.CorrelationID = target.CorrelationID
		existing.ReceiptID = target.ReceiptID
		target = existing
	}
	s.debts[target.DebtID] = target
	delete(s.intentions, target.DebtID)
	return &target, nil
}

func (s *memStore) SweepDanglingIntentions(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for id, in := range s.intentions {
		d := s.debts[id]
		_, _, connected := s.mutualCounterpart(d.OwnerAccountID, d.UserID)
		if !connected || !domain.SameLock(d.LockedTimestamp, &in.LockedTimestamp) || s.mirrorCarriesLock(d, in.LockedTimestamp) {
			delete(s.intentions, id)
			removed++
		}
	}
	return removed, nil
}

// mirrorCarriesLock reports whether the counterpart's copy of d is already
// locked at ts. Callers hold s.mu.
func (s *memStore) mirrorCarriesLock(d domain.Debt, ts time.Time) bool {
	cpAccount, cpUser, ok := s.mutualCounterpart(d.OwnerAccountID, d.UserID)
	if !ok {
		return false
	}
	for _, m := range s.debts {
		if m.OwnerAccountID != cpAccount || m.UserID != cpUser {
			continue
		}
		paired := m.ReceiptID == nil && d.ReceiptID == nil && m.CorrelationID == d.CorrelationID
		if d.ReceiptID != nil && m.ReceiptID != nil && *m.ReceiptID == *d.ReceiptID {
			paired = true
		}
		if paired && domain.SameLock(m.LockedTimestamp, &ts) {
			return true
		}
	}
	return false
}

// --- receipts ---

func (s *memStore) FindReceiptByID(_ context.Context, receiptID string) (*domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.receipts[receiptID]
	if !ok {
		return nil, notFound("receipt", receiptID)
	}
	r.Items = append([]domain.ReceiptItem{}, r.Items...)
	return &r, nil
}

func (s *memStore) ListReceipts(_ context.Context, ownerAccountID string) ([]domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []domain.Receipt{}
	for _, r := range s.receipts {
		if r.OwnerAccountID == ownerAccountID {
			r.Items = nil
			res = append(res, r)
		}
	}
	return res, nil
}

func (s *memStore) SaveReceipt(_ context.Context, receipt domain.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[receipt.ReceiptID] = receipt
	return nil
}

func (s *memStore) SaveReceiptItem(_ context.Context, item domain.ReceiptItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.receipts[item.ReceiptID]
	if !ok {
		return notFound("receipt", item.ReceiptID)
	}
	r.Items = append(r.Items, item)
	s.receipts[item.ReceiptID] = r
	return nil
}

func (s *memStore) UpdateReceiptLock(_ context.Context, receiptID, ownerAccountID string, lockedTimestamp *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.receipts[receiptID]
	if !ok || r.OwnerAccountID != ownerAccountID {
		return notFound("receipt", receiptID)
	}
	r.LockedTimestamp = lockedTimestamp
	s.receipts[receiptID] = r
	return nil
}
