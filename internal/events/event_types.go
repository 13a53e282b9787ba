package events

import (
	"time"

	"github.com/spec-kit/campus-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionStarted     EventType = "session_started"
	EventSessionEnded       EventType = "session_ended"
	EventTaskCreated        EventType = "task_created"
	EventTaskUpdated        EventType = "task_updated"
	EventMessagePosted      EventType = "message_posted"
	EventAttendanceRecorded EventType = "attendance_recorded"
	EventEmployeeAdded      EventType = "employee_added"
	EventPresenceChanged    EventType = "presence_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionPayload payload for session events.
type SessionPayload struct {
	IdentityID string      `json:"identity_id"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID     string              `json:"task_id"`
	Title      string              `json:"title"`
	AssignedTo string              `json:"assigned_to"`
	Priority   domain.TaskPriority `json:"priority"`
}

// TaskUpdatedPayload payload.
type TaskUpdatedPayload struct {
	TaskID    string            `json:"task_id"`
	NewStatus domain.TaskStatus `json:"new_status"`
}

// MessagePostedPayload payload.
type MessagePostedPayload struct {
	MessageID   string             `json:"message_id"`
	SenderID    string             `json:"sender_id"`
	MessageType domain.MessageType `json:"message_type"`
	BodyPreview string             `json:"body_preview"`
}

// AttendanceRecordedPayload payload.
type AttendanceRecordedPayload struct {
	RecordID   string                  `json:"record_id"`
	UserID     string                  `json:"user_id"`
	Status     domain.AttendanceStatus `json:"status"`
	TotalHours float64                 `json:"total_hours"`
}

// EmployeeAddedPayload payload.
type EmployeeAddedPayload struct {
	EmployeeID string      `json:"employee_id"`
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	Remote     bool        `json:"remote"`
}

// PresencePayload payload for simulated presence flips.
type PresencePayload struct {
	UserID string `json:"user_id"`
	Online bool   `json:"online"`
}
