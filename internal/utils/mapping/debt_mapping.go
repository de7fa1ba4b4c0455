package mapping

import (
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/models"
)

// ToModelDebt converts a domain Debt to a model Debt
func ToModelDebt(d domain.Debt) models.Debt {
	return models.Debt{
		DebtID:          d.DebtID,
		OwnerAccountID:  d.OwnerAccountID,
		UserID:          d.UserID,
		CorrelationID:   d.CorrelationID,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Timestamp:       d.Timestamp,
		Note:            d.Note,
		ReceiptID:       d.ReceiptID,
		LockedTimestamp: d.LockedTimestamp,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebt converts a model Debt to a domain Debt
func ToDomainDebt(m models.Debt) domain.Debt {
	return domain.Debt{
		DebtID:          m.DebtID,
		OwnerAccountID:  m.OwnerAccountID,
		UserID:          m.UserID,
		CorrelationID:   m.CorrelationID,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		Timestamp:       m.Timestamp,
		Note:            m.Note,
		ReceiptID:       m.ReceiptID,
		LockedTimestamp: m.LockedTimestamp,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDebtSlice converts a slice of model Debts to a slice of domain Debts
func ToDomainDebtSlice(ms []models.Debt) []domain.Debt {
	ds := make([]domain.Debt, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDebt(m)
	}
	return ds
}

// ToModelSyncIntention converts a domain SyncIntention to a model SyncIntention
func ToModelSyncIntention(d domain.SyncIntention) models.SyncIntention {
	return models.SyncIntention{
		DebtID:          d.DebtID,
		OwnerAccountID:  d.OwnerAccountID,
		LockedTimestamp: d.LockedTimestamp,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSyncIntention converts a model SyncIntention to a domain SyncIntention
func ToDomainSyncIntention(m models.SyncIntention) domain.SyncIntention {
	return domain.SyncIntention{
		DebtID:          m.DebtID,
		OwnerAccountID:  m.OwnerAccountID,
		LockedTimestamp: m.LockedTimestamp,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSyncIntentionSlice converts a slice of model SyncIntentions to domain SyncIntentions
func ToDomainSyncIntentionSlice(ms []models.SyncIntention) []domain.SyncIntention {
	ds := make([]domain.SyncIntention, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSyncIntention(m)
	}
	return ds
}
