package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/spec-kit/campus-desk/internal/domain"
	"github.com/spec-kit/campus-desk/internal/events"
	"github.com/spec-kit/campus-desk/internal/store"
)

// WorkspaceService fronts the domain store for departments, tasks, attendance
// and messages, publishing an event after each mutation. Mutations are
// optimistic and never fail; UpdateTask alone reports found/not-found.
type WorkspaceService struct {
	store      *store.DomainStore
	dispatcher events.Dispatcher
}

// NewWorkspaceService builds the service.
func NewWorkspaceService(domainStore *store.DomainStore, dispatcher events.Dispatcher) *WorkspaceService {
	return &WorkspaceService{store: domainStore, dispatcher: dispatcher}
}

// CreateDepartment appends a department.
func (s *WorkspaceService) CreateDepartment(ctx context.Context, actorID string, input store.DepartmentInput) domain.Department {
	return s.store.AddDepartment(ctx, input)
}

// CreateTask appends a task and announces it.
func (s *WorkspaceService) CreateTask(ctx context.Context, actorID string, input store.TaskInput) domain.Task {
	if input.AssignedBy == "" {
		input.AssignedBy = actorID
	}
	task := s.store.AddTask(ctx, input)
	s.publish(ctx, events.EventTaskCreated, actorID, events.TaskCreatedPayload{
		TaskID:     task.ID,
		Title:      task.Title,
		AssignedTo: task.AssignedTo,
		Priority:   task.Priority,
	})
	return task
}

// UpdateTask merges the patch into the task. It reports false when the id is
// unknown and publishes nothing in that case.
func (s *WorkspaceService) UpdateTask(ctx context.Context, actorID, id string, patch store.TaskPatch) (domain.Task, bool) {
	task, found := s.store.UpdateTask(ctx, id, patch)
	if !found {
		return domain.Task{}, false
	}
	s.publish(ctx, events.EventTaskUpdated, actorID, events.TaskUpdatedPayload{
		TaskID:    task.ID,
		NewStatus: task.Status,
	})
	return task, true
}

// RecordAttendance appends an attendance record.
func (s *WorkspaceService) RecordAttendance(ctx context.Context, actorID string, input store.AttendanceInput) domain.AttendanceRecord {
	record := s.store.AddAttendance(ctx, input)
	s.publish(ctx, events.EventAttendanceRecorded, actorID, events.AttendanceRecordedPayload{
		RecordID:   record.ID,
		UserID:     record.UserID,
		Status:     record.Status,
		TotalHours: record.TotalHours,
	})
	return record
}

// PostMessage appends a chat message and announces it. Simulated feed messages
// go through the same path as user-posted ones.
func (s *WorkspaceService) PostMessage(ctx context.Context, input store.MessageInput) domain.ChatMessage {
	msg := s.store.AddMessage(ctx, input)
	s.publish(ctx, events.EventMessagePosted, msg.SenderID, events.MessagePostedPayload{
		MessageID:   msg.ID,
		SenderID:    msg.SenderID,
		MessageType: msg.Type,
		BodyPreview: preview(msg.Body),
	})
	return msg
}

// Departments returns the department collection.
func (s *WorkspaceService) Departments() []domain.Department {
	return s.store.Departments()
}

// Tasks returns the task collection.
func (s *WorkspaceService) Tasks() []domain.Task {
	return s.store.Tasks()
}

// Attendance returns the attendance collection.
func (s *WorkspaceService) Attendance() []domain.AttendanceRecord {
	return s.store.Attendance()
}

// Messages returns the message collection.
func (s *WorkspaceService) Messages() []domain.ChatMessage {
	return s.store.Messages()
}

// Employees returns the employee directory.
func (s *WorkspaceService) Employees() []domain.Identity {
	return s.store.Employees()
}

func (s *WorkspaceService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

// preview truncates to at most 80 runes so multi-byte characters are never
// split mid-sequence.
func preview(body string) string {
	const max = 80
	if utf8.RuneCountInString(body) <= max {
		return body
	}
	runes := []rune(body)
	return string(runes[:max])
}
