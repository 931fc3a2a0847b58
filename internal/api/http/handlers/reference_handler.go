package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onestep-labs/urban-solve/internal/api/dto"
	"github.com/onestep-labs/urban-solve/internal/service"
)

// ReferenceHandler serves the append-only reference tables.
type ReferenceHandler struct {
	complaints *service.ComplaintService
}

// NewReferenceHandler constructs handler.
func NewReferenceHandler(complaints *service.ComplaintService) *ReferenceHandler {
	return &ReferenceHandler{complaints: complaints}
}

// Locations handles GET /api/locations.
func (h *ReferenceHandler) Locations(c *fiber.Ctx) error {
	locations, err := h.complaints.ListLocations(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		items = append(items, dto.LocationResponse{
			ID:       loc.ID,
			Zone:     loc.Zone,
			Ward:     loc.Ward,
			AreaName: loc.AreaName,
		})
	}
	return c.JSON(items)
}

// Problems handles GET /api/problems.
func (h *ReferenceHandler) Problems(c *fiber.Ctx) error {
	problems, err := h.complaints.ListProblemTypes(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ProblemTypeResponse, 0, len(problems))
	for _, problem := range problems {
		items = append(items, dto.ProblemTypeResponse{
			ID:          problem.ID,
			Name:        problem.Name,
			Description: problem.Description,
		})
	}
	return c.JSON(items)
}
