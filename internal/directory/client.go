package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/spec-kit/campus-desk/internal/domain"
	apperrors "github.com/spec-kit/campus-desk/pkg/util"
)

// CreateEmployeeRequest is the wire payload sent to the remote directory.
// Optional references are normalized to null and dates are ISO-8601 or null.
type CreateEmployeeRequest struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	Phone        *string     `json:"phone"`
	Address      *string     `json:"address"`
	SchoolID     *string     `json:"school_id"`
	DepartmentID *string     `json:"department_id"`
	Salary       float64     `json:"salary"`
	JoinDate     *string     `json:"join_date"`
}

// EmployeeRecord is the persisted record the remote directory returns on
// success.
type EmployeeRecord struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	SchoolID     string      `json:"school_id"`
	DepartmentID string      `json:"department_id"`
	Salary       float64     `json:"salary"`
	JoinDate     *time.Time  `json:"join_date"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Identity converts the remote record into the directory entry shape.
func (r EmployeeRecord) Identity() domain.Identity {
	return domain.Identity{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Role:         r.Role,
		Phone:        r.Phone,
		Address:      r.Address,
		SchoolID:     r.SchoolID,
		DepartmentID: r.DepartmentID,
		Salary:       r.Salary,
		JoinDate:     r.JoinDate,
		CreatedAt:    r.CreatedAt,
	}
}

// Client submits candidate employees to the remote directory.
type Client interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*EmployeeRecord, error)
}

// HTTPClient talks to the remote directory over a single JSON
// request/response exchange with an explicit timeout.
type HTTPClient struct {
	endpoint string
	httpc    *http.Client
}

// NewHTTPClient builds a client for the given endpoint.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: timeout},
	}
}

// failureResponse carries the server's human-readable rejection message.
type failureResponse struct {
	Message string `json:"message"`
}

// CreateEmployee posts the candidate and returns the persisted record. Non-2xx
// responses surface the server's message; transport failures and malformed
// bodies map to a remote-unavailable error.
func (c *HTTPClient) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*EmployeeRecord, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewRemoteUnavailable(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewRemoteUnavailable(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure failureResponse
		_ = json.Unmarshal(respBody, &failure)
		return nil, apperrors.NewRemoteRejected(failure.Message)
	}

	var record EmployeeRecord
	if err := json.Unmarshal(respBody, &record); err != nil {
		return nil, apperrors.NewRemoteUnavailable(err)
	}
	return &record, nil
}
