package models

// User is a contact owned by one account. ConnectedAccountID links the
// contact to a real account and is NULL for offline contacts.
type User struct {
	UserID             string  `db:"user_id"`
	OwnerAccountID     string  `db:"owner_account_id"`
	Name               string  `db:"name"`
	ConnectedAccountID *string `db:"connected_account_id"`
	AuditFields
}
