package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/onestep-labs/urban-solve/internal/api/dto"
	"github.com/onestep-labs/urban-solve/internal/service"
	apperrors "github.com/onestep-labs/urban-solve/pkg/util/errorutil"
)

// AdminHandler exposes the admin dashboard endpoints.
type AdminHandler struct {
	complaints *service.ComplaintService
	stats      *service.StatsService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(complaints *service.ComplaintService, stats *service.StatsService) *AdminHandler {
	return &AdminHandler{complaints: complaints, stats: stats}
}

// ListComplaints handles GET /api/admin/complaints.
func (h *AdminHandler) ListComplaints(c *fiber.Ctx) error {
	records, err := h.complaints.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AdminComplaintResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.NewAdminComplaintResponse(rec))
	}
	return c.JSON(items)
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.stats.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Assign handles PUT /api/admin/complaints/:id/assign.
func (h *AdminHandler) Assign(c *fiber.Ctx) error {
	complaintID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("complaint id must be numeric", nil)
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	err = h.complaints.Assign(c.Context(), complaintID, service.AssignInput{
		Department:    req.Department,
		AssignedStaff: req.AssignedStaff,
		Priority:      req.Priority,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	h.stats.Invalidate(c.Context())

	return c.JSON(fiber.Map{"success": true})
}
