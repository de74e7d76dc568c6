package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// CitizensHandler exposes the administrative citizen-account endpoints.
type CitizensHandler struct {
	citizens *service.CitizenService
}

// NewCitizensHandler constructs handler.
func NewCitizensHandler(citizens *service.CitizenService) *CitizensHandler {
	return &CitizensHandler{citizens: citizens}
}

// Create handles POST /api/citizens.
func (h *CitizensHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCitizenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.citizens.Create(c.Context(), req.Name, req.Email, req.Password, req.Phone, req.Address)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Profile handles GET /api/citizens/profile.
func (h *CitizensHandler) Profile(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.citizens.Get(c.Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateProfile handles PUT /api/citizens/profile.
func (h *CitizensHandler) UpdateProfile(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCitizenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.citizens.Update(c.Context(), actor.ID, service.CitizenInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// List handles GET /api/citizens.
func (h *CitizensHandler) List(c *fiber.Ctx) error {
	page, limit := pageQuery(c)
	users, total, err := h.citizens.List(c.Context(), queryString(c, "search"), page, limit)
	if err != nil {
		return err
	}

	data := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(dto.Paginated{Data: data, Meta: dto.NewMeta(total, page, limit)})
}

// Get handles GET /api/citizens/:id.
func (h *CitizensHandler) Get(c *fiber.Ctx) error {
	user, err := h.citizens.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Update handles PUT /api/citizens/:id.
func (h *CitizensHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCitizenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.citizens.Update(c.Context(), c.Params("id"), service.CitizenInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Remove handles DELETE /api/citizens/:id.
func (h *CitizensHandler) Remove(c *fiber.Ctx) error {
	if err := h.citizens.Remove(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Citizen deleted successfully"})
}
