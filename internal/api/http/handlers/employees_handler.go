package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-desk/internal/api/dto"
	"github.com/spec-kit/campus-desk/internal/service"
)

// EmployeesHandler exposes the HR directory endpoints.
type EmployeesHandler struct {
	directory *service.DirectoryService
	workspace *service.WorkspaceService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(directoryService *service.DirectoryService, workspace *service.WorkspaceService) *EmployeesHandler {
	return &EmployeesHandler{directory: directoryService, workspace: workspace}
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees := h.workspace.Employees()
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, dto.NewEmployeeResponse(emp))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Create handles POST /employees. This is the one mutation that can fail: the
// directory service validates the form and, when a remote endpoint is
// configured, appends locally only after confirmed remote success.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	identity, err := h.directory.CreateEmployee(c.Context(), actorID(c), service.EmployeeInput{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Phone:        req.Phone,
		Address:      req.Address,
		SchoolID:     req.SchoolID,
		DepartmentID: req.DepartmentID,
		Salary:       req.Salary,
		JoinDate:     req.JoinDate,
		Password:     req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEmployeeResponse(identity)})
}
