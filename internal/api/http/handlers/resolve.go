package handlers

import "github.com/spec-kit/campus-desk/internal/domain"

// Placeholder labels for dangling identity references.
const (
	labelUnknown   = "Unknown"
	labelNoManager = "No Manager Assigned"
)

// nameIndex maps identity ids to display names for reference resolution.
type nameIndex map[string]string

func buildNameIndex(employees []domain.Identity) nameIndex {
	idx := make(nameIndex, len(employees))
	for _, emp := range employees {
		idx[emp.ID] = emp.Name
	}
	return idx
}

// resolve looks up a display name, substituting the fallback for empty or
// dangling references.
func (idx nameIndex) resolve(id, fallback string) string {
	if id == "" {
		return fallback
	}
	if name, ok := idx[id]; ok {
		return name
	}
	return fallback
}
