package dto

import (
	"time"

	"github.com/onestep-labs/urban-solve/internal/domain"
)

// SignupRequest payload for POST /api/signup.
type SignupRequest struct {
	NID      string `json:"nid"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// SigninRequest payload for POST /api/signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserResponse is the canonical user shape; it never carries the password
// hash.
type UserResponse struct {
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	NID     string `json:"nid"`
	Contact string `json:"contact"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewUserResponse maps a domain user to its response shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    string(user.Role),
		NID:     user.NID,
		Contact: user.Contact,
	}
}
