package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-desk/internal/domain"
	"github.com/spec-kit/campus-desk/internal/persistence"
)

// Storage keys, one per collection.
const (
	keyDepartments = "workspace.departments"
	keyTasks       = "workspace.tasks"
	keyAttendance  = "workspace.attendance"
	keyMessages    = "workspace.messages"
	keyEmployees   = "workspace.employees"
)

// DomainStore holds the five domain collections in memory and mirrors each to
// its storage key after every mutation. All mutations are synchronous and,
// apart from storage write errors (which are logged, not returned), cannot
// fail: records are fully formed before they are appended.
type DomainStore struct {
	mu     sync.RWMutex
	kv     persistence.KV
	logger *zap.Logger

	departments []domain.Department
	tasks       []domain.Task
	attendance  []domain.AttendanceRecord
	messages    []domain.ChatMessage
	employees   []domain.Identity
}

// DepartmentInput carries fields for AddDepartment.
type DepartmentInput struct {
	Name        string
	Description string
	ManagerID   string
}

// TaskInput carries fields for AddTask. Zero Status and Priority default to
// pending/medium.
type TaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	AssignedBy  string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// TaskPatch carries the partial fields accepted by UpdateTask. Nil fields are
// left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	AssignedTo  *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
}

// AttendanceInput carries fields for AddAttendance.
type AttendanceInput struct {
	UserID     string
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time
	Status     domain.AttendanceStatus
}

// MessageInput carries fields for AddMessage.
type MessageInput struct {
	SenderID     string
	ReceiverID   string
	DepartmentID string
	Body         string
	Type         domain.MessageType
}

// NewDomainStore hydrates every collection from storage. Missing or corrupt
// payloads are a cold start for that collection. Seeding is centralized here:
// when seed is true and no department snapshot exists, the fixed default
// departments are written once.
func NewDomainStore(ctx context.Context, kv persistence.KV, logger *zap.Logger, seed bool) *DomainStore {
	s := &DomainStore{kv: kv, logger: logger}

	hadDepartments := s.load(ctx, keyDepartments, &s.departments)
	s.load(ctx, keyTasks, &s.tasks)
	s.load(ctx, keyAttendance, &s.attendance)
	s.load(ctx, keyMessages, &s.messages)
	s.load(ctx, keyEmployees, &s.employees)

	if seed && !hadDepartments {
		s.departments = seedDepartments()
		s.persist(ctx, keyDepartments, s.departments)
		logger.Info("seeded default departments", zap.Int("count", len(s.departments)))
	}
	return s
}

// AddDepartment appends a department and returns the stored record.
func (s *DomainStore) AddDepartment(ctx context.Context, input DepartmentInput) domain.Department {
	dept := domain.Department{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		ManagerID:   input.ManagerID,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments = append(s.departments, dept)
	s.persist(ctx, keyDepartments, s.departments)
	return dept
}

// AddTask appends a task and returns the stored record.
func (s *DomainStore) AddTask(ctx context.Context, input TaskInput) domain.Task {
	task := domain.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		AssignedBy:  input.AssignedBy,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CreatedAt:   time.Now().UTC(),
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	s.persist(ctx, keyTasks, s.tasks)
	return task
}

// UpdateTask merges the patch into the task with the given id. It reports
// false when the id is unknown, in which case neither memory nor storage is
// touched.
func (s *DomainStore) UpdateTask(ctx context.Context, id string, patch TaskPatch) (domain.Task, bool) {
	s.mu.Lock()
	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.Task{}, false
	}

	task := s.tasks[idx]
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = *patch.AssignedTo
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	s.tasks[idx] = task
	s.persist(ctx, keyTasks, s.tasks)
	s.mu.Unlock()
	return task, true
}

// AddAttendance appends an attendance record, deriving total hours from the
// clock and break timestamps when both clock ends are present.
func (s *DomainStore) AddAttendance(ctx context.Context, input AttendanceInput) domain.AttendanceRecord {
	record := domain.AttendanceRecord{
		ID:         uuid.NewString(),
		UserID:     input.UserID,
		Date:       input.Date,
		ClockIn:    input.ClockIn,
		ClockOut:   input.ClockOut,
		BreakStart: input.BreakStart,
		BreakEnd:   input.BreakEnd,
		Status:     input.Status,
	}
	if record.Status == "" {
		record.Status = domain.AttendanceStatusPresent
	}
	record.TotalHours = totalHours(record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendance = append(s.attendance, record)
	s.persist(ctx, keyAttendance, s.attendance)
	return record
}

// AddMessage appends an immutable chat message.
func (s *DomainStore) AddMessage(ctx context.Context, input MessageInput) domain.ChatMessage {
	msg := domain.ChatMessage{
		ID:           uuid.NewString(),
		SenderID:     input.SenderID,
		ReceiverID:   input.ReceiverID,
		DepartmentID: input.DepartmentID,
		Body:         input.Body,
		Type:         input.Type,
		Timestamp:    time.Now().UTC(),
	}
	if msg.Type == "" {
		msg.Type = domain.MessageTypeDirect
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	s.persist(ctx, keyMessages, s.messages)
	return msg
}

// AddEmployee appends an identity to the directory. Records confirmed by the
// remote directory arrive with an id already assigned and keep it; locally
// created ones get a fresh id and creation time.
func (s *DomainStore) AddEmployee(ctx context.Context, identity domain.Identity) domain.Identity {
	if identity.ID == "" {
		identity.ID = uuid.NewString()
	}
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = append(s.employees, identity)
	s.persist(ctx, keyEmployees, s.employees)
	return identity
}

// Departments returns a copy of the department collection.
func (s *DomainStore) Departments() []domain.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Department{}, s.departments...)
}

// Tasks returns a copy of the task collection.
func (s *DomainStore) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Task{}, s.tasks...)
}

// Attendance returns a copy of the attendance collection.
func (s *DomainStore) Attendance() []domain.AttendanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.AttendanceRecord{}, s.attendance...)
}

// Messages returns a copy of the message collection.
func (s *DomainStore) Messages() []domain.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ChatMessage{}, s.messages...)
}

// Employees returns a copy of the employee directory.
func (s *DomainStore) Employees() []domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Identity{}, s.employees...)
}

// EmployeeByEmail finds a directory entry by email.
func (s *DomainStore) EmployeeByEmail(email string) (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, emp := range s.employees {
		if emp.Email == email {
			return emp, true
		}
	}
	return domain.Identity{}, false
}

// load hydrates one collection; it reports whether a snapshot existed.
func (s *DomainStore) load(ctx context.Context, key string, dst any) bool {
	payload, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("collection hydration failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		s.logger.Warn("discarding corrupt collection payload", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// persist mirrors a collection to its storage key. Callers hold s.mu, which
// keeps mirrors in mutation order; a write racing ahead of an older one would
// otherwise leave storage on a stale snapshot. Write errors keep the in-memory
// state authoritative.
func (s *DomainStore) persist(ctx context.Context, key string, collection any) {
	payload, err := json.Marshal(collection)
	if err != nil {
		s.logger.Warn("failed to encode collection", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, key, payload); err != nil {
		s.logger.Warn("failed to mirror collection to storage", zap.String("key", key), zap.Error(err))
	}
}

func totalHours(r domain.AttendanceRecord) float64 {
	if r.ClockIn == nil || r.ClockOut == nil {
		return 0
	}
	worked := r.ClockOut.Sub(*r.ClockIn)
	if r.BreakStart != nil && r.BreakEnd != nil {
		worked -= r.BreakEnd.Sub(*r.BreakStart)
	}
	if worked < 0 {
		return 0
	}
	return worked.Hours()
}
