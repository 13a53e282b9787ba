package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-desk/internal/api/dto"
	"github.com/spec-kit/campus-desk/internal/service"
	"github.com/spec-kit/campus-desk/internal/store"
)

// SessionHandler exposes login, logout and profile endpoints.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Login handles POST /auth/login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || !req.Role.Valid() {
		return fiber.NewError(http.StatusBadRequest, "email and valid role required")
	}

	identity, token, exp, err := h.sessions.Login(c.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewIdentityResponse(identity),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c.Context())
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "logged_out"}})
}

// Profile handles GET /auth/profile.
func (h *SessionHandler) Profile(c *fiber.Ctx) error {
	current := h.sessions.Current()
	if current == nil {
		return fiber.NewError(http.StatusUnauthorized, "no active session")
	}
	return c.JSON(fiber.Map{"data": dto.NewIdentityResponse(*current)})
}

// UpdateProfile handles PATCH /auth/profile.
func (h *SessionHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	identity, ok := h.sessions.UpdateProfile(c.Context(), store.IdentityPatch{
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		Avatar:       req.Avatar,
		SchoolID:     req.SchoolID,
		DepartmentID: req.DepartmentID,
		Assignments:  req.Assignments,
	})
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "no active session")
	}
	return c.JSON(fiber.Map{"data": dto.NewIdentityResponse(identity)})
}
