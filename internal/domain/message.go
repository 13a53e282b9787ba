package domain

import "time"

// MessageType enumerates chat message delivery scopes.
type MessageType string

const (
	MessageTypeDirect       MessageType = "direct"
	MessageTypeDepartment   MessageType = "department"
	MessageTypeAnnouncement MessageType = "announcement"
)

// ChatMessage is an immutable chat entry. Exactly one of ReceiverID or
// DepartmentID is expected for direct/department messages; announcements
// carry neither.
type ChatMessage struct {
	ID           string      `json:"id"`
	SenderID     string      `json:"sender_id"`
	ReceiverID   string      `json:"receiver_id,omitempty"`
	DepartmentID string      `json:"department_id,omitempty"`
	Body         string      `json:"body"`
	Type         MessageType `json:"type"`
	Timestamp    time.Time   `json:"timestamp"`
}
