package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "Pending"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
)

// DefaultPriority is assumed for complaints that have not been triaged yet.
const DefaultPriority = "Medium"

// Complaint is the aggregate for citizen-reported issues. Assignment fields
// stay nil until an admin triages the complaint.
type Complaint struct {
	ID            int64
	UserID        int64
	LocationID    int64
	ProblemID     int64
	Title         string
	Description   string
	Status        ComplaintStatus
	Department    *string
	AssignedStaff *string
	Priority      *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var allowedTransitions = map[ComplaintStatus][]ComplaintStatus{
	ComplaintStatusPending:    {ComplaintStatusInProgress},
	ComplaintStatusInProgress: {ComplaintStatusResolved},
	ComplaintStatusResolved:   {},
}

// CanTransition reports whether a complaint may move from current to next.
func CanTransition(current, next ComplaintStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
