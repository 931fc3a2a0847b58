package events

import (
	"time"

	"github.com/onestep-labs/urban-solve/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintSubmitted     EventType = "complaint_submitted"
	EventComplaintAssigned      EventType = "complaint_assigned"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID int64       `json:"complaint_id"`
	UserID      int64       `json:"user_id,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintSubmittedPayload payload.
type ComplaintSubmittedPayload struct {
	Title       string `json:"title"`
	ProblemType string `json:"problem_type"`
	Zone        string `json:"zone"`
	Ward        string `json:"ward"`
	AreaName    string `json:"area_name"`
}

// ComplaintAssignedPayload payload.
type ComplaintAssignedPayload struct {
	Department    string `json:"department"`
	AssignedStaff string `json:"assigned_staff"`
	Priority      string `json:"priority"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
}
