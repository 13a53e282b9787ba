package dto

import (
	"time"

	"github.com/spec-kit/campus-desk/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// AuthResponse carries the issued session token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IdentityResponse is the session identity as shown to views.
type IdentityResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	Phone        string      `json:"phone,omitempty"`
	Address      string      `json:"address,omitempty"`
	Avatar       string      `json:"avatar,omitempty"`
	SchoolID     string      `json:"school_id,omitempty"`
	DepartmentID string      `json:"department_id,omitempty"`
	Assignments  []string    `json:"assignments,omitempty"`
}

// NewIdentityResponse maps an identity, omitting internal fields.
func NewIdentityResponse(identity domain.Identity) IdentityResponse {
	return IdentityResponse{
		ID:           identity.ID,
		Name:         identity.Name,
		Email:        identity.Email,
		Role:         identity.Role,
		Phone:        identity.Phone,
		Address:      identity.Address,
		Avatar:       identity.Avatar,
		SchoolID:     identity.SchoolID,
		DepartmentID: identity.DepartmentID,
		Assignments:  identity.Assignments,
	}
}

// UpdateProfileRequest carries partial profile fields; absent fields stay
// untouched.
type UpdateProfileRequest struct {
	Name         *string   `json:"name"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	Avatar       *string   `json:"avatar"`
	SchoolID     *string   `json:"school_id"`
	DepartmentID *string   `json:"department_id"`
	Assignments  *[]string `json:"assignments"`
}
