package dto

import (
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// CreateUserRequest adds an offline contact.
type CreateUserRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ConnectUserRequest links a contact to the account registered with AccountEmail.
type ConnectUserRequest struct {
	AccountEmail string `json:"accountEmail" binding:"required,email"`
}

type UserResponse struct {
	UserID             string    `json:"userID"`
	Name               string    `json:"name"`
	ConnectedAccountID *string   `json:"connectedAccountID,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:             u.UserID,
		Name:               u.Name,
		ConnectedAccountID: u.ConnectedAccountID,
		CreatedAt:          u.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: res}
}
