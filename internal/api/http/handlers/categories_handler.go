package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// CategoriesHandler exposes the category directory endpoints.
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	category, err := h.categories.Create(c.Context(), req.AgencyID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(category)
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	page, limit := pageQuery(c)
	categories, total, err := h.categories.List(c.Context(), queryString(c, "agencyId"), queryString(c, "search"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.Paginated{Data: categories, Meta: dto.NewMeta(total, page, limit)})
}

// Get handles GET /api/categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, err := h.categories.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// Update handles PUT /api/categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	category, err := h.categories.Update(c.Context(), c.Params("id"), req.AgencyID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// Remove handles DELETE /api/categories/:id.
func (h *CategoriesHandler) Remove(c *fiber.Ctx) error {
	if err := h.categories.Remove(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
