package dto

import (
	"time"

	"github.com/noah-isme/quizhub-api/internal/models"
)

// AuthRequest is the payload for admin registration and login.
type AuthRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// AdminResponse is the public view of an admin account.
type AdminResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is returned after a successful login or registration.
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     AdminResponse `json:"admin"`
}

// NewAdminResponse converts a model into its public view.
func NewAdminResponse(model models.AdminUser) AdminResponse {
	return AdminResponse{ID: model.ID, Email: model.Email}
}
