package mapping

import (
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/models"
)

// ToModelReceipt converts a domain Receipt to a model Receipt. Items are
// persisted separately.
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:       d.ReceiptID,
		OwnerAccountID:  d.OwnerAccountID,
		Name:            d.Name,
		CurrencyCode:    d.CurrencyCode,
		Issued:          d.Issued,
		LockedTimestamp: d.LockedTimestamp,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceipt converts a model Receipt to a domain Receipt without items.
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptID:       m.ReceiptID,
		OwnerAccountID:  m.OwnerAccountID,
		Name:            m.Name,
		CurrencyCode:    m.CurrencyCode,
		Issued:          m.Issued,
		LockedTimestamp: m.LockedTimestamp,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelReceiptItem converts a domain ReceiptItem to its model and consumer rows.
func ToModelReceiptItem(d domain.ReceiptItem) (models.ReceiptItem, []models.ItemConsumer) {
	consumers := make([]models.ItemConsumer, len(d.Consumers))
	for i, c := range d.Consumers {
		consumers[i] = models.ItemConsumer{ItemID: d.ItemID, UserID: c.UserID, Weight: c.Weight}
	}
	return models.ReceiptItem{
		ItemID:      d.ItemID,
		ReceiptID:   d.ReceiptID,
		Name:        d.Name,
		Price:       d.Price,
		Quantity:    d.Quantity,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}, consumers
}

// ToDomainReceiptItem converts a model ReceiptItem and its consumer rows.
func ToDomainReceiptItem(m models.ReceiptItem, consumers []models.ItemConsumer) domain.ReceiptItem {
	dc := make([]domain.ItemConsumer, 0, len(consumers))
	for _, c := range consumers {
		if c.ItemID != m.ItemID {
			continue
		}
		dc = append(dc, domain.ItemConsumer{UserID: c.UserID, Weight: c.Weight})
	}
	return domain.ReceiptItem{
		ItemID:      m.ItemID,
		ReceiptID:   m.ReceiptID,
		Name:        m.Name,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Consumers:   dc,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
