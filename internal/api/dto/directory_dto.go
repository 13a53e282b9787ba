package dto

import (
	"time"

	"github.com/spec-kit/campus-desk/internal/domain"
)

// CreateEmployeeRequest is the HR form payload.
type CreateEmployeeRequest struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	SchoolID     string      `json:"school_id"`
	DepartmentID string      `json:"department_id"`
	Salary       float64     `json:"salary"`
	JoinDate     *time.Time  `json:"join_date"`
	Password     string      `json:"password"`
}

// EmployeeResponse is a directory entry as shown to views.
type EmployeeResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	Phone        string      `json:"phone,omitempty"`
	Address      string      `json:"address,omitempty"`
	SchoolID     string      `json:"school_id,omitempty"`
	DepartmentID string      `json:"department_id,omitempty"`
	Salary       float64     `json:"salary,omitempty"`
	JoinDate     *time.Time  `json:"join_date,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewEmployeeResponse maps a directory entry, omitting credential fields.
func NewEmployeeResponse(identity domain.Identity) EmployeeResponse {
	return EmployeeResponse{
		ID:           identity.ID,
		Name:         identity.Name,
		Email:        identity.Email,
		Role:         identity.Role,
		Phone:        identity.Phone,
		Address:      identity.Address,
		SchoolID:     identity.SchoolID,
		DepartmentID: identity.DepartmentID,
		Salary:       identity.Salary,
		JoinDate:     identity.JoinDate,
		CreatedAt:    identity.CreatedAt,
	}
}
