package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AgenciesHandler exposes the agency directory endpoints.
type AgenciesHandler struct {
	agencies *service.AgencyService
}

// NewAgenciesHandler constructs handler.
func NewAgenciesHandler(agencies *service.AgencyService) *AgenciesHandler {
	return &AgenciesHandler{agencies: agencies}
}

// Create handles POST /api/agencies.
func (h *AgenciesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAgencyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	agency, err := h.agencies.Create(c.Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(agency)
}

// List handles GET /api/agencies.
func (h *AgenciesHandler) List(c *fiber.Ctx) error {
	page, limit := pageQuery(c)
	agencies, total, err := h.agencies.List(c.Context(), queryString(c, "search"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.Paginated{Data: agencies, Meta: dto.NewMeta(total, page, limit)})
}

// Get handles GET /api/agencies/:id.
func (h *AgenciesHandler) Get(c *fiber.Ctx) error {
	view, err := h.agencies.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"id":          view.ID,
		"name":        view.Name,
		"description": view.Description,
		"createdAt":   view.CreatedAt,
		"updatedAt":   view.UpdatedAt,
		"staff":       view.Staff,
		"categories":  view.Categories,
	})
}

// Update handles PUT /api/agencies/:id.
func (h *AgenciesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateAgencyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	agency, err := h.agencies.Update(c.Context(), c.Params("id"), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(agency)
}

// Remove handles DELETE /api/agencies/:id.
func (h *AgenciesHandler) Remove(c *fiber.Ctx) error {
	if err := h.agencies.Remove(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Agency deleted successfully"})
}

// AssignStaff handles POST /api/agencies/:id/staff/:staffId.
func (h *AgenciesHandler) AssignStaff(c *fiber.Ctx) error {
	user, err := h.agencies.AssignStaff(c.Context(), c.Params("id"), c.Params("staffId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// RemoveStaff handles DELETE /api/agencies/:id/staff/:staffId.
func (h *AgenciesHandler) RemoveStaff(c *fiber.Ctx) error {
	user, err := h.agencies.RemoveStaff(c.Context(), c.Params("id"), c.Params("staffId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}
