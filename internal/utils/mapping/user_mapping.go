package mapping

import (
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:             d.UserID,
		OwnerAccountID:     d.OwnerAccountID,
		Name:               d.Name,
		ConnectedAccountID: d.ConnectedAccountID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:             m.UserID,
		OwnerAccountID:     m.OwnerAccountID,
		Name:               m.Name,
		ConnectedAccountID: m.ConnectedAccountID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
