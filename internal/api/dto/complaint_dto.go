package dto

import (
	"time"

	"github.com/onestep-labs/urban-solve/internal/domain"
	"github.com/onestep-labs/urban-solve/internal/repository"
)

// CreateComplaintRequest payload for POST /api/complaints.
type CreateComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProblemType string `json:"problemType"`
	Zone        string `json:"zone"`
	Ward        string `json:"ward"`
	AreaName    string `json:"areaName"`
	UserID      int64  `json:"userId"`
}

// ComplaintResponse is the citizen-facing complaint shape.
type ComplaintResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	Zone        string    `json:"zone"`
	Ward        string    `json:"ward"`
	AreaName    string    `json:"areaName"`
	ProblemType string    `json:"problemType"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AdminComplaintResponse additionally exposes citizen identity and triage
// metadata; untriaged fields are null.
type AdminComplaintResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	Zone          string    `json:"zone"`
	Ward          string    `json:"ward"`
	AreaName      string    `json:"areaName"`
	ProblemType   string    `json:"problemType"`
	Description   string    `json:"description"`
	CitizenName   string    `json:"citizenName"`
	CitizenEmail  string    `json:"citizenEmail"`
	Department    *string   `json:"department"`
	AssignedStaff *string   `json:"assignedStaff"`
	Priority      *string   `json:"priority"`
	Notes         *string   `json:"notes"`
	LastUpdated   time.Time `json:"lastUpdated"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AssignRequest payload for PUT /api/admin/complaints/:id/assign.
type AssignRequest struct {
	Department    string `json:"department"`
	AssignedStaff string `json:"assignedStaff"`
	Priority      string `json:"priority"`
	Notes         string `json:"notes"`
}

// UpdateStatusRequest payload for PUT /api/complaints/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// LocationResponse is the reference-table shape for locations.
type LocationResponse struct {
	ID       int64  `json:"id"`
	Zone     string `json:"zone"`
	Ward     string `json:"ward"`
	AreaName string `json:"areaName"`
}

// ProblemTypeResponse is the reference-table shape for problem types.
type ProblemTypeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewComplaintResponse maps a joined record to the citizen shape.
func NewComplaintResponse(rec repository.ComplaintRecord) ComplaintResponse {
	priority := domain.DefaultPriority
	if rec.Priority != nil {
		priority = *rec.Priority
	}
	return ComplaintResponse{
		ID:          rec.ID,
		Title:       rec.Title,
		Status:      string(rec.Status),
		Zone:        rec.Zone,
		Ward:        rec.Ward,
		AreaName:    rec.AreaName,
		ProblemType: rec.ProblemType,
		Description: rec.Description,
		Priority:    priority,
		LastUpdated: rec.UpdatedAt,
		CreatedAt:   rec.CreatedAt,
	}
}

// NewAdminComplaintResponse maps a joined record to the admin shape.
func NewAdminComplaintResponse(rec repository.ComplaintRecord) AdminComplaintResponse {
	return AdminComplaintResponse{
		ID:            rec.ID,
		Title:         rec.Title,
		Status:        string(rec.Status),
		Zone:          rec.Zone,
		Ward:          rec.Ward,
		AreaName:      rec.AreaName,
		ProblemType:   rec.ProblemType,
		Description:   rec.Description,
		CitizenName:   rec.CitizenName,
		CitizenEmail:  rec.CitizenEmail,
		Department:    rec.Department,
		AssignedStaff: rec.AssignedStaff,
		Priority:      rec.Priority,
		Notes:         rec.Notes,
		LastUpdated:   rec.UpdatedAt,
		CreatedAt:     rec.CreatedAt,
	}
}
