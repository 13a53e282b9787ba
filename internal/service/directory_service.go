package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/campus-desk/internal/auth"
	"github.com/spec-kit/campus-desk/internal/directory"
	"github.com/spec-kit/campus-desk/internal/domain"
	"github.com/spec-kit/campus-desk/internal/events"
	"github.com/spec-kit/campus-desk/internal/store"
	apperrors "github.com/spec-kit/campus-desk/pkg/util"
)

// EmployeeInput carries the HR form fields for employee creation.
type EmployeeInput struct {
	Name         string
	Email        string
	Role         domain.Role
	Phone        string
	Address      string
	SchoolID     string
	DepartmentID string
	Salary       float64
	JoinDate     *time.Time
	Password     string
}

// DirectoryService appends employees to the directory. With a remote client
// configured the contract is append-after-confirmed-remote-success; without
// one it is the store's usual optimistic local append. This is the only store
// path with a validation layer and the only one that can fail.
type DirectoryService struct {
	store      *store.DomainStore
	client     directory.Client
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewDirectoryService builds the service. client may be nil.
func NewDirectoryService(domainStore *store.DomainStore, client directory.Client, dispatcher events.Dispatcher, bcryptCost int) *DirectoryService {
	return &DirectoryService{
		store:      domainStore,
		client:     client,
		dispatcher: dispatcher,
		bcryptCost: bcryptCost,
	}
}

// CreateEmployee validates the input, submits it to the remote directory when
// one is configured, and appends the confirmed record locally. Local state is
// untouched on any failure.
func (s *DirectoryService) CreateEmployee(ctx context.Context, actorID string, input EmployeeInput) (domain.Identity, error) {
	if err := validateEmployee(input); err != nil {
		return domain.Identity{}, err
	}

	remote := s.client != nil
	var identity domain.Identity
	if remote {
		record, err := s.client.CreateEmployee(ctx, buildRequest(input))
		if err != nil {
			return domain.Identity{}, err
		}
		identity = s.store.AddEmployee(ctx, record.Identity())
	} else {
		local := localIdentity(input)
		if input.Password != "" {
			hash, err := auth.HashPassword(input.Password, s.bcryptCost)
			if err != nil {
				return domain.Identity{}, apperrors.NewInternalError(err)
			}
			local.PasswordHash = hash
		}
		identity = s.store.AddEmployee(ctx, local)
	}

	s.publish(ctx, actorID, events.EmployeeAddedPayload{
		EmployeeID: identity.ID,
		Name:       identity.Name,
		Role:       identity.Role,
		Remote:     remote,
	})
	return identity, nil
}

func validateEmployee(input EmployeeInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if !strings.Contains(input.Email, "@") {
		details["email"] = "valid email required"
	}
	if !input.Role.Valid() {
		details["role"] = "unknown role"
	}
	if input.Salary < 0 {
		details["salary"] = "must not be negative"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid employee", details)
	}
	return nil
}

func buildRequest(input EmployeeInput) directory.CreateEmployeeRequest {
	req := directory.CreateEmployeeRequest{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		Role:         input.Role,
		Phone:        nullable(input.Phone),
		Address:      nullable(input.Address),
		SchoolID:     nullable(input.SchoolID),
		DepartmentID: nullable(input.DepartmentID),
		Salary:       input.Salary,
	}
	if input.JoinDate != nil {
		iso := input.JoinDate.UTC().Format(time.RFC3339)
		req.JoinDate = &iso
	}
	return req
}

func localIdentity(input EmployeeInput) domain.Identity {
	return domain.Identity{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		Role:         input.Role,
		Phone:        input.Phone,
		Address:      input.Address,
		SchoolID:     input.SchoolID,
		DepartmentID: input.DepartmentID,
		Salary:       input.Salary,
		JoinDate:     input.JoinDate,
	}
}

func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (s *DirectoryService) publish(ctx context.Context, actorID string, payload events.EmployeeAddedPayload) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventEmployeeAdded,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
