package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/onestep-labs/urban-solve/internal/api/dto"
	"github.com/onestep-labs/urban-solve/internal/domain"
	"github.com/onestep-labs/urban-solve/internal/service"
	apperrors "github.com/onestep-labs/urban-solve/pkg/util/errorutil"
)

// ComplaintsHandler manages citizen-facing complaint endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
	stats      *service.StatsService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaints *service.ComplaintService, stats *service.StatsService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaints, stats: stats}
}

// Submit handles POST /api/complaints.
func (h *ComplaintsHandler) Submit(c *fiber.Ctx) error {
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.complaints.Submit(c.Context(), service.SubmitInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		ProblemSlug: req.ProblemType,
		Zone:        req.Zone,
		Ward:        req.Ward,
		AreaName:    req.AreaName,
	})
	if err != nil {
		return err
	}
	h.stats.Invalidate(c.Context())

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"complaint_id": complaint.ID,
	})
}

// ListByUser handles GET /api/complaints/:userId.
func (h *ComplaintsHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("userId must be numeric", nil)
	}

	records, err := h.complaints.ListForUser(c.Context(), userID)
	if err != nil {
		return err
	}
	items := make([]dto.ComplaintResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.NewComplaintResponse(rec))
	}
	return c.JSON(items)
}

// UpdateStatus handles PUT /api/complaints/:id/status (staff action).
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	complaintID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("complaint id must be numeric", nil)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status := domain.ComplaintStatus(req.Status)
	switch status {
	case domain.ComplaintStatusPending, domain.ComplaintStatusInProgress, domain.ComplaintStatusResolved:
	default:
		return apperrors.NewValidationError("status must be Pending, In Progress or Resolved", nil)
	}

	if err := h.complaints.UpdateStatus(c.Context(), complaintID, status); err != nil {
		return err
	}
	h.stats.Invalidate(c.Context())

	return c.JSON(fiber.Map{"success": true})
}
