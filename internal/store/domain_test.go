package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-desk/internal/domain"
	"github.com/spec-kit/campus-desk/internal/persistence"
)

func newDomainStore(t *testing.T, kv persistence.KV, seed bool) *DomainStore {
	t.Helper()
	return NewDomainStore(context.Background(), kv, zap.NewNop(), seed)
}

func TestAddTaskAppendsWithUniqueIDs(t *testing.T) {
	s := newDomainStore(t, persistence.NewMemory(), false)
	ctx := context.Background()

	const n = 25
	for i := 0; i < n; i++ {
		s.AddTask(ctx, TaskInput{Title: fmt.Sprintf("task %d", i), AssignedTo: "u-1"})
	}

	tasks := s.Tasks()
	require.Len(t, tasks, n)

	seen := make(map[string]struct{}, n)
	for _, task := range tasks {
		_, dup := seen[task.ID]
		assert.False(t, dup, "duplicate id %s", task.ID)
		seen[task.ID] = struct{}{}
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
	}
}

func TestUpdateTaskMergesOnlyPatchedFields(t *testing.T) {
	s := newDomainStore(t, persistence.NewMemory(), false)
	ctx := context.Background()

	created := s.AddTask(ctx, TaskInput{
		Title:       "grade exams",
		Description: "midterms",
		AssignedTo:  "teacher-1",
		AssignedBy:  "admin-1",
		Priority:    domain.TaskPriorityHigh,
	})

	status := domain.TaskStatusCompleted
	updated, found := s.UpdateTask(ctx, created.ID, TaskPatch{Status: &status})
	require.True(t, found)

	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.AssignedTo, updated.AssignedTo)
	assert.Equal(t, created.AssignedBy, updated.AssignedBy)
	assert.Equal(t, created.Priority, updated.Priority)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateTaskUnknownIDLeavesCollectionUntouched(t *testing.T) {
	kv := persistence.NewMemory()
	s := newDomainStore(t, kv, false)
	ctx := context.Background()

	s.AddTask(ctx, TaskInput{Title: "one"})
	s.AddTask(ctx, TaskInput{Title: "two"})
	before := s.Tasks()

	payloadBefore, _, err := kv.Get(ctx, keyTasks)
	require.NoError(t, err)

	status := domain.TaskStatusCompleted
	_, found := s.UpdateTask(ctx, "no-such-id", TaskPatch{Status: &status})
	assert.False(t, found)
	assert.Equal(t, before, s.Tasks())

	payloadAfter, _, err := kv.Get(ctx, keyTasks)
	require.NoError(t, err)
	assert.Equal(t, payloadBefore, payloadAfter)
}

func TestRehydrationReproducesCollections(t *testing.T) {
	kv := persistence.NewMemory()
	s := newDomainStore(t, kv, true)
	ctx := context.Background()

	s.AddDepartment(ctx, DepartmentInput{Name: "Science", ManagerID: "emp-9"})
	s.AddTask(ctx, TaskInput{Title: "plan lab", AssignedTo: "emp-9"})
	clockIn := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(8 * time.Hour)
	s.AddAttendance(ctx, AttendanceInput{
		UserID:   "emp-9",
		Date:     clockIn.Truncate(24 * time.Hour),
		ClockIn:  &clockIn,
		ClockOut: &clockOut,
	})
	s.AddMessage(ctx, MessageInput{SenderID: "emp-9", Body: "hello", Type: domain.MessageTypeDirect})
	s.AddEmployee(ctx, domain.Identity{Name: "Priya Nair", Email: "priya@school.test", Role: domain.RoleTeacher})

	fresh := newDomainStore(t, kv, true)
	assert.Equal(t, s.Departments(), fresh.Departments())
	assert.Equal(t, s.Tasks(), fresh.Tasks())
	assert.Equal(t, s.Attendance(), fresh.Attendance())
	assert.Equal(t, s.Messages(), fresh.Messages())
	assert.Equal(t, s.Employees(), fresh.Employees())
}

func TestSeedThenAddDepartment(t *testing.T) {
	s := newDomainStore(t, persistence.NewMemory(), true)
	ctx := context.Background()

	seeded := s.Departments()
	require.Len(t, seeded, 2)

	dept := s.AddDepartment(ctx, DepartmentInput{
		Name:        "Engineering",
		Description: "Facilities engineering",
		ManagerID:   "emp-2",
	})

	all := s.Departments()
	require.Len(t, all, 3)
	assert.NotEqual(t, seeded[0].ID, dept.ID)
	assert.NotEqual(t, seeded[1].ID, dept.ID)
	assert.WithinDuration(t, time.Now().UTC(), dept.CreatedAt, 2*time.Second)
}

func TestSeedSkippedWhenSnapshotExists(t *testing.T) {
	kv := persistence.NewMemory()
	s := newDomainStore(t, kv, true)
	s.AddDepartment(context.Background(), DepartmentInput{Name: "Sports"})

	again := newDomainStore(t, kv, true)
	assert.Len(t, again.Departments(), 3)
}

func TestSeedDisabled(t *testing.T) {
	s := newDomainStore(t, persistence.NewMemory(), false)
	assert.Empty(t, s.Departments())
}

func TestAddAttendanceDerivesTotalHours(t *testing.T) {
	s := newDomainStore(t, persistence.NewMemory(), false)
	ctx := context.Background()

	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clockOut := time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)
	breakStart := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	breakEnd := time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC)

	record := s.AddAttendance(ctx, AttendanceInput{
		UserID:     "emp-1",
		Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ClockIn:    &clockIn,
		ClockOut:   &clockOut,
		BreakStart: &breakStart,
		BreakEnd:   &breakEnd,
	})

	assert.InDelta(t, 8.0, record.TotalHours, 0.001)
	assert.Equal(t, domain.AttendanceStatusPresent, record.Status)
}

func TestAddAttendanceWithoutClockTimestamps(t *testing.T) {
	s := newDomainStore(t, persistence.NewMemory(), false)

	record := s.AddAttendance(context.Background(), AttendanceInput{
		UserID: "emp-1",
		Date:   time.Now().UTC(),
		Status: domain.AttendanceStatusAbsent,
	})
	assert.Zero(t, record.TotalHours)
	assert.Equal(t, domain.AttendanceStatusAbsent, record.Status)
}

func TestCorruptCollectionPayloadIsColdStart(t *testing.T) {
	kv := persistence.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, keyTasks, []byte("{not json")))

	s := newDomainStore(t, kv, false)
	assert.Empty(t, s.Tasks())
}

func TestAddEmployeeKeepsRemoteAssignedID(t *testing.T) {
	s := newDomainStore(t, persistence.NewMemory(), false)
	ctx := context.Background()

	remote := s.AddEmployee(ctx, domain.Identity{
		ID:    "srv-42",
		Name:  "Remote Hire",
		Email: "remote@school.test",
		Role:  domain.RoleHR,
	})
	assert.Equal(t, "srv-42", remote.ID)

	local := s.AddEmployee(ctx, domain.Identity{Name: "Local Hire", Email: "local@school.test", Role: domain.RoleTeacher})
	assert.NotEmpty(t, local.ID)
	assert.False(t, local.CreatedAt.IsZero())

	found, ok := s.EmployeeByEmail("remote@school.test")
	require.True(t, ok)
	assert.Equal(t, "srv-42", found.ID)

	_, ok = s.EmployeeByEmail("nobody@school.test")
	assert.False(t, ok)
}

// stallingKV blocks the first Set until released, exposing mirrors that run
// out of mutation order.
type stallingKV struct {
	*persistence.Memory
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (k *stallingKV) Set(ctx context.Context, key string, payload []byte) error {
	stalled := false
	k.once.Do(func() { stalled = true })
	if stalled {
		close(k.entered)
		<-k.release
	}
	return k.Memory.Set(ctx, key, payload)
}

func TestConcurrentAddTaskMirrorsEveryRecord(t *testing.T) {
	kv := &stallingKV{
		Memory:  persistence.NewMemory(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := newDomainStore(t, kv, false)
	ctx := context.Background()

	first := make(chan struct{})
	go func() {
		s.AddTask(ctx, TaskInput{Title: "first"})
		close(first)
	}()
	<-kv.entered

	second := make(chan struct{})
	go func() {
		s.AddTask(ctx, TaskInput{Title: "second"})
		close(second)
	}()

	// The second writer must wait behind the stalled mirror instead of
	// overtaking it with its own snapshot.
	select {
	case <-second:
		t.Fatal("second task mirrored while the first mirror was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(kv.release)
	<-first
	<-second

	fresh := newDomainStore(t, kv, false)
	assert.Len(t, fresh.Tasks(), 2)
}
