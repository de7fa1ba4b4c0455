package dto

import "github.com/SscSPs/splitledger/internal/core/domain"

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest exchanges credentials for a session token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"accountID"`
}

// AccountResponse is the public part of an account.
type AccountResponse struct {
	AccountID string `json:"accountID"`
	Email     string `json:"email"`
	Name      string `json:"name"`
}

func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Email:     a.Email,
		Name:      a.Name,
	}
}
