package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintsHandler exposes the complaint lifecycle endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaints *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaints}
}

// Create handles POST /api/complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	record, err := h.complaints.Create(c.Context(), actor.ID, service.ComplaintCreateInput{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Priority:     req.Priority,
		Location:     req.Location,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewComplaintResponse(record))
}

// List handles GET /api/complaints.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	page, limit := pageQuery(c)
	filter := service.ComplaintListFilter{
		Search:     queryString(c, "search"),
		CategoryID: queryString(c, "categoryId"),
		AgencyID:   queryString(c, "agencyId"),
		Page:       page,
		Limit:      limit,
	}
	if status := c.Query("status"); status != "" {
		parsed := domain.ComplaintStatus(status)
		if !parsed.Valid() {
			return apperrors.NewValidationError("invalid status filter", nil)
		}
		filter.Status = &parsed
	}
	if priority := c.Query("priority"); priority != "" {
		parsed := domain.ComplaintPriority(priority)
		if !parsed.Valid() {
			return apperrors.NewValidationError("invalid priority filter", nil)
		}
		filter.Priority = &parsed
	}

	records, total, err := h.complaints.List(c.Context(), actor, filter)
	if err != nil {
		return err
	}

	data := make([]dto.ComplaintResponse, 0, len(records))
	for i := range records {
		data = append(data, dto.NewComplaintResponse(&records[i]))
	}
	return c.JSON(dto.Paginated{Data: data, Meta: dto.NewMeta(total, page, limit)})
}

// Get handles GET /api/complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	detail, err := h.complaints.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}

	resp := dto.ComplaintDetailResponse{
		ComplaintResponse: dto.NewComplaintResponse(&detail.ComplaintRecord),
		Responses:         make([]dto.ResponseView, 0, len(detail.Responses)),
	}
	for i := range detail.Responses {
		resp.Responses = append(resp.Responses, dto.NewResponseView(&detail.Responses[i]))
	}
	return c.JSON(resp)
}

// Update handles PUT /api/complaints/:id.
func (h *ComplaintsHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	record, err := h.complaints.Update(c.Context(), actor, c.Params("id"), service.ComplaintUpdateInput{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Status:       req.Status,
		Priority:     req.Priority,
		Location:     req.Location,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(record))
}

// AddComment handles POST /api/complaints/:id/comments.
func (h *ComplaintsHandler) AddComment(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	response, err := h.complaints.AddComment(c.Context(), actor, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewResponseView(response))
}

// Remove handles DELETE /api/complaints/:id.
func (h *ComplaintsHandler) Remove(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	if err := h.complaints.Remove(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Complaint deleted successfully"})
}
