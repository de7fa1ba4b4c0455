package domain

// Account is an authenticated owner of a ledger. Every debt row, user
// (contact) and receipt belongs to exactly one account.
type Account struct {
	AccountID    string `json:"accountID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
