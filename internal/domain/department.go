package domain

import "time"

// Department represents an organizational unit. ManagerID may reference an
// identity that no longer exists; readers resolve that to a placeholder label.
type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ManagerID   string    `json:"manager_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
