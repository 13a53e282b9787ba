package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-desk/internal/api/dto"
	"github.com/spec-kit/campus-desk/internal/auth"
	"github.com/spec-kit/campus-desk/internal/domain"
	"github.com/spec-kit/campus-desk/internal/service"
	"github.com/spec-kit/campus-desk/internal/store"
	apperrors "github.com/spec-kit/campus-desk/pkg/util"
)

// WorkspaceHandler exposes department, task, attendance and message endpoints.
type WorkspaceHandler struct {
	workspace *service.WorkspaceService
}

// NewWorkspaceHandler constructs handler.
func NewWorkspaceHandler(workspace *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspace: workspace}
}

// ListDepartments handles GET /departments.
func (h *WorkspaceHandler) ListDepartments(c *fiber.Ctx) error {
	idx := buildNameIndex(h.workspace.Employees())
	departments := h.workspace.Departments()
	out := make([]dto.DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		out = append(out, dto.DepartmentResponse{
			ID:          dept.ID,
			Name:        dept.Name,
			Description: dept.Description,
			ManagerID:   dept.ManagerID,
			ManagerName: idx.resolve(dept.ManagerID, labelNoManager),
			CreatedAt:   dept.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}

// CreateDepartment handles POST /departments.
func (h *WorkspaceHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}

	dept := h.workspace.CreateDepartment(c.Context(), actorID(c), store.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dept})
}

// ListTasks handles GET /tasks.
func (h *WorkspaceHandler) ListTasks(c *fiber.Ctx) error {
	idx := buildNameIndex(h.workspace.Employees())
	tasks := h.workspace.Tasks()
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskResponse(task, idx))
	}
	return c.JSON(fiber.Map{"data": out})
}

// CreateTask handles POST /tasks.
func (h *WorkspaceHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" {
		return fiber.NewError(http.StatusBadRequest, "title required")
	}

	task := h.workspace.CreateTask(c.Context(), actorID(c), store.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": task})
}

// UpdateTask handles PATCH /tasks/:id. Unknown ids map to 404 rather than a
// silent no-op.
func (h *WorkspaceHandler) UpdateTask(c *fiber.Ctx) error {
	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	task, found := h.workspace.UpdateTask(c.Context(), actorID(c), c.Params("id"), store.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if !found {
		return apperrors.NewNotFound("task", fiber.Map{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": task})
}

// ListAttendance handles GET /attendance.
func (h *WorkspaceHandler) ListAttendance(c *fiber.Ctx) error {
	records := h.workspace.Attendance()
	out := make([]dto.AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.AttendanceResponse{
			ID:         r.ID,
			UserID:     r.UserID,
			Date:       r.Date,
			ClockIn:    r.ClockIn,
			ClockOut:   r.ClockOut,
			BreakStart: r.BreakStart,
			BreakEnd:   r.BreakEnd,
			TotalHours: r.TotalHours,
			Status:     r.Status,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}

// RecordAttendance handles POST /attendance.
func (h *WorkspaceHandler) RecordAttendance(c *fiber.Ctx) error {
	var req dto.RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UserID == "" || req.Date.IsZero() {
		return fiber.NewError(http.StatusBadRequest, "user_id and date required")
	}

	record := h.workspace.RecordAttendance(c.Context(), actorID(c), store.AttendanceInput{
		UserID:     req.UserID,
		Date:       req.Date,
		ClockIn:    req.ClockIn,
		ClockOut:   req.ClockOut,
		BreakStart: req.BreakStart,
		BreakEnd:   req.BreakEnd,
		Status:     req.Status,
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": record})
}

// ListMessages handles GET /messages.
func (h *WorkspaceHandler) ListMessages(c *fiber.Ctx) error {
	idx := buildNameIndex(h.workspace.Employees())
	messages := h.workspace.Messages()
	out := make([]dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		out = append(out, dto.MessageResponse{
			ID:           msg.ID,
			SenderID:     msg.SenderID,
			SenderName:   idx.resolve(msg.SenderID, labelUnknown),
			ReceiverID:   msg.ReceiverID,
			DepartmentID: msg.DepartmentID,
			Body:         msg.Body,
			Type:         msg.Type,
			Timestamp:    msg.Timestamp,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}

// PostMessage handles POST /messages.
func (h *WorkspaceHandler) PostMessage(c *fiber.Ctx) error {
	var req dto.PostMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Body == "" {
		return fiber.NewError(http.StatusBadRequest, "body required")
	}

	msg := h.workspace.PostMessage(c.Context(), store.MessageInput{
		SenderID:     actorID(c),
		ReceiverID:   req.ReceiverID,
		DepartmentID: req.DepartmentID,
		Body:         req.Body,
		Type:         req.Type,
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": msg})
}

func taskResponse(task domain.Task, idx nameIndex) dto.TaskResponse {
	return dto.TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		AssignedTo:   task.AssignedTo,
		AssigneeName: idx.resolve(task.AssignedTo, labelUnknown),
		AssignedBy:   task.AssignedBy,
		Status:       task.Status,
		Priority:     task.Priority,
		DueDate:      task.DueDate,
		CreatedAt:    task.CreatedAt,
	}
}

func actorID(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.ID
	}
	return ""
}
