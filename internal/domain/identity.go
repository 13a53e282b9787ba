package domain

import "time"

// Role enumerates the dashboard roles an identity can hold.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
	RoleHR      Role = "hr"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin, RoleHR:
		return true
	}
	return false
}

// Identity is the profile of a dashboard user. The same shape backs both the
// current session and entries in the employee directory.
type Identity struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	SchoolID     string     `json:"school_id,omitempty"`
	DepartmentID string     `json:"department_id,omitempty"`
	Assignments  []string   `json:"assignments,omitempty"`
	Salary       float64    `json:"salary,omitempty"`
	JoinDate     *time.Time `json:"join_date,omitempty"`
	PasswordHash string     `json:"password_hash,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
