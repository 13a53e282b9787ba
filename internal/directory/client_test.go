package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campus-desk/internal/domain"
	apperrors "github.com/spec-kit/campus-desk/pkg/util"
)

func domainErr(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de
}

func TestCreateEmployeeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"srv-1","name":"Priya Nair","email":"priya@school.test","role":"teacher","salary":52000,"created_at":"2026-03-02T10:00:00Z"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	record, err := client.CreateEmployee(context.Background(), CreateEmployeeRequest{
		Name:  "Priya Nair",
		Email: "priya@school.test",
		Role:  domain.RoleTeacher,
	})
	require.NoError(t, err)

	assert.Equal(t, "srv-1", record.ID)
	assert.Equal(t, domain.RoleTeacher, record.Role)
	assert.Equal(t, 52000.0, record.Salary)

	identity := record.Identity()
	assert.Equal(t, "srv-1", identity.ID)
	assert.Equal(t, "Priya Nair", identity.Name)
}

func TestCreateEmployeeRejectedWithServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"email already in directory"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	_, err := client.CreateEmployee(context.Background(), CreateEmployeeRequest{Name: "X", Email: "x@y.z", Role: domain.RoleHR})

	de := domainErr(t, err)
	assert.Equal(t, "REMOTE_REJECTED", de.Code)
	assert.Equal(t, "email already in directory", de.Message)
}

func TestCreateEmployeeRejectedWithoutMessageFallsBackGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	_, err := client.CreateEmployee(context.Background(), CreateEmployeeRequest{Name: "X", Email: "x@y.z", Role: domain.RoleHR})

	de := domainErr(t, err)
	assert.Equal(t, "REMOTE_REJECTED", de.Code)
	assert.Equal(t, "employee could not be created", de.Message)
}

func TestCreateEmployeeMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	_, err := client.CreateEmployee(context.Background(), CreateEmployeeRequest{Name: "X", Email: "x@y.z", Role: domain.RoleHR})

	de := domainErr(t, err)
	assert.Equal(t, "REMOTE_UNAVAILABLE", de.Code)
}

func TestCreateEmployeeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 50*time.Millisecond)
	_, err := client.CreateEmployee(context.Background(), CreateEmployeeRequest{Name: "X", Email: "x@y.z", Role: domain.RoleHR})

	de := domainErr(t, err)
	assert.Equal(t, "REMOTE_UNAVAILABLE", de.Code)
}

func TestCreateEmployeeUnreachableEndpoint(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.CreateEmployee(context.Background(), CreateEmployeeRequest{Name: "X", Email: "x@y.z", Role: domain.RoleHR})

	de := domainErr(t, err)
	assert.Equal(t, "REMOTE_UNAVAILABLE", de.Code)
}
