package models

// Account is the persisted form of an authenticated ledger owner.
type Account struct {
	AccountID    string `db:"account_id"`
	Email        string `db:"email"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	AuditFields
}
