package dto

import (
	"time"

	"github.com/spec-kit/campus-desk/internal/domain"
)

// CreateDepartmentRequest payload.
type CreateDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ManagerID   string `json:"manager_id"`
}

// DepartmentResponse includes the resolved manager label.
type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ManagerID   string    `json:"manager_id,omitempty"`
	ManagerName string    `json:"manager_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTaskRequest payload.
type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	AssignedTo  string              `json:"assigned_to"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
}

// UpdateTaskRequest carries partial task fields; absent fields stay untouched.
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	AssignedTo  *string              `json:"assigned_to"`
	Status      *domain.TaskStatus   `json:"status"`
	Priority    *domain.TaskPriority `json:"priority"`
	DueDate     *time.Time           `json:"due_date"`
}

// TaskResponse includes the resolved assignee label.
type TaskResponse struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	AssignedTo   string              `json:"assigned_to"`
	AssigneeName string              `json:"assignee_name"`
	AssignedBy   string              `json:"assigned_by"`
	Status       domain.TaskStatus   `json:"status"`
	Priority     domain.TaskPriority `json:"priority"`
	DueDate      *time.Time          `json:"due_date,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// RecordAttendanceRequest payload.
type RecordAttendanceRequest struct {
	UserID     string                  `json:"user_id"`
	Date       time.Time               `json:"date"`
	ClockIn    *time.Time              `json:"clock_in"`
	ClockOut   *time.Time              `json:"clock_out"`
	BreakStart *time.Time              `json:"break_start"`
	BreakEnd   *time.Time              `json:"break_end"`
	Status     domain.AttendanceStatus `json:"status"`
}

// AttendanceResponse mirrors the stored record.
type AttendanceResponse struct {
	ID         string                  `json:"id"`
	UserID     string                  `json:"user_id"`
	Date       time.Time               `json:"date"`
	ClockIn    *time.Time              `json:"clock_in,omitempty"`
	ClockOut   *time.Time              `json:"clock_out,omitempty"`
	BreakStart *time.Time              `json:"break_start,omitempty"`
	BreakEnd   *time.Time              `json:"break_end,omitempty"`
	TotalHours float64                 `json:"total_hours"`
	Status     domain.AttendanceStatus `json:"status"`
}

// PostMessageRequest payload.
type PostMessageRequest struct {
	ReceiverID   string             `json:"receiver_id"`
	DepartmentID string             `json:"department_id"`
	Body         string             `json:"body"`
	Type         domain.MessageType `json:"type"`
}

// MessageResponse includes the resolved sender label.
type MessageResponse struct {
	ID           string             `json:"id"`
	SenderID     string             `json:"sender_id"`
	SenderName   string             `json:"sender_name"`
	ReceiverID   string             `json:"receiver_id,omitempty"`
	DepartmentID string             `json:"department_id,omitempty"`
	Body         string             `json:"body"`
	Type         domain.MessageType `json:"type"`
	Timestamp    time.Time          `json:"timestamp"`
}
