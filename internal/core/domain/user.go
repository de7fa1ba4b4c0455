package domain

// User is a contact record local to one account. It represents the other
// party of a debt and may be linked to a real account.
type User struct {
	UserID             string  `json:"userID"`
	OwnerAccountID     string  `json:"ownerAccountID"`
	Name               string  `json:"name"`
	ConnectedAccountID *string `json:"connectedAccountID,omitempty"`
	AuditFields
}

// IsConnected reports whether the contact is linked to a real account.
func (u User) IsConnected() bool {
	return u.ConnectedAccountID != nil && *u.ConnectedAccountID != ""
}

// Counterpart identifies where the mirror of a debt lives: the connected
// account and the contact inside that account pointing back at us.
type Counterpart struct {
	AccountID string
	UserID    string
}
