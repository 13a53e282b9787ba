package store

import (
	"time"

	"github.com/spec-kit/campus-desk/internal/domain"
)

// seedDepartments returns the fixed first-run department seed.
func seedDepartments() []domain.Department {
	now := time.Now().UTC()
	return []domain.Department{
		{
			ID:          "dept-1",
			Name:        "Administration",
			Description: "School administration and operations",
			CreatedAt:   now,
		},
		{
			ID:          "dept-2",
			Name:        "Academics",
			Description: "Teaching staff and curriculum",
			CreatedAt:   now,
		},
	}
}
