package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-desk/internal/auth"
	"github.com/spec-kit/campus-desk/internal/directory"
	"github.com/spec-kit/campus-desk/internal/domain"
	"github.com/spec-kit/campus-desk/internal/persistence"
	"github.com/spec-kit/campus-desk/internal/store"
	apperrors "github.com/spec-kit/campus-desk/pkg/util"
)

type fakeDirectoryClient struct {
	record *directory.EmployeeRecord
	err    error
	calls  int
	seen   directory.CreateEmployeeRequest
}

func (f *fakeDirectoryClient) CreateEmployee(_ context.Context, req directory.CreateEmployeeRequest) (*directory.EmployeeRecord, error) {
	f.calls++
	f.seen = req
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func newTestDomainStore(t *testing.T) *store.DomainStore {
	t.Helper()
	return store.NewDomainStore(context.Background(), persistence.NewMemory(), zap.NewNop(), false)
}

func TestCreateEmployeeLocalFallback(t *testing.T) {
	domainStore := newTestDomainStore(t)
	svc := NewDirectoryService(domainStore, nil, nil, 4)

	identity, err := svc.CreateEmployee(context.Background(), "admin-1", EmployeeInput{
		Name:   "Thandi Mokoena",
		Email:  "thandi@school.test",
		Role:   domain.RoleTeacher,
		Salary: 48000,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, identity.ID)
	assert.Len(t, domainStore.Employees(), 1)
}

func TestCreateEmployeeValidation(t *testing.T) {
	domainStore := newTestDomainStore(t)
	svc := NewDirectoryService(domainStore, nil, nil, 4)

	_, err := svc.CreateEmployee(context.Background(), "admin-1", EmployeeInput{
		Name:   "  ",
		Email:  "not-an-email",
		Role:   domain.Role("caretaker"),
		Salary: -5,
	})

	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Contains(t, de.Details, "name")
	assert.Contains(t, de.Details, "email")
	assert.Contains(t, de.Details, "role")
	assert.Contains(t, de.Details, "salary")
	assert.Empty(t, domainStore.Employees())
}

func TestCreateEmployeeRemoteSuccessAppendsServerRecord(t *testing.T) {
	domainStore := newTestDomainStore(t)
	joined := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	client := &fakeDirectoryClient{record: &directory.EmployeeRecord{
		ID:        "srv-7",
		Name:      "Priya Nair",
		Email:     "priya@school.test",
		Role:      domain.RoleTeacher,
		Salary:    52000,
		JoinDate:  &joined,
		CreatedAt: time.Now().UTC(),
	}}
	svc := NewDirectoryService(domainStore, client, nil, 4)

	identity, err := svc.CreateEmployee(context.Background(), "hr-1", EmployeeInput{
		Name:     "Priya Nair",
		Email:    "priya@school.test",
		Role:     domain.RoleTeacher,
		Salary:   52000,
		JoinDate: &joined,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "srv-7", identity.ID)

	employees := domainStore.Employees()
	require.Len(t, employees, 1)
	assert.Equal(t, "srv-7", employees[0].ID)

	// Nullable references normalized, date ISO-formatted.
	assert.Nil(t, client.seen.Phone)
	assert.Nil(t, client.seen.DepartmentID)
	require.NotNil(t, client.seen.JoinDate)
	assert.Equal(t, "2026-01-15T00:00:00Z", *client.seen.JoinDate)
}

func TestCreateEmployeeRemoteFailureLeavesDirectoryUnchanged(t *testing.T) {
	domainStore := newTestDomainStore(t)
	client := &fakeDirectoryClient{err: apperrors.NewRemoteRejected("duplicate email")}
	svc := NewDirectoryService(domainStore, client, nil, 4)

	_, err := svc.CreateEmployee(context.Background(), "hr-1", EmployeeInput{
		Name:  "Priya Nair",
		Email: "priya@school.test",
		Role:  domain.RoleTeacher,
	})

	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "REMOTE_REJECTED", de.Code)
	assert.Equal(t, "duplicate email", de.Message)
	assert.Empty(t, domainStore.Employees())
}

func TestCreateEmployeeLocalStoresPasswordHash(t *testing.T) {
	domainStore := newTestDomainStore(t)
	svc := NewDirectoryService(domainStore, nil, nil, 4)

	_, err := svc.CreateEmployee(context.Background(), "hr-1", EmployeeInput{
		Name:     "Sam Lee",
		Email:    "sam@school.test",
		Role:     domain.RoleAdmin,
		Password: "opensesame",
	})
	require.NoError(t, err)

	stored, ok := domainStore.EmployeeByEmail("sam@school.test")
	require.True(t, ok)
	require.NotEmpty(t, stored.PasswordHash)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "opensesame"))
}
