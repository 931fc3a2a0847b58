package service

import (
	"math"

	"github.com/onestep-labs/urban-solve/internal/domain"
	"github.com/onestep-labs/urban-solve/internal/repository"
)

// Stats aggregates complaint counts for the admin dashboard.
type Stats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	InProgress     int `json:"inProgress"`
	Resolved       int `json:"resolved"`
	ResolutionRate int `json:"resolutionRate"`
}

// ComputeStats is a pure aggregation over complaint records. The resolution
// rate is round(resolved/total*100), 0 when there are no complaints.
func ComputeStats(records []repository.ComplaintRecord) Stats {
	stats := Stats{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case domain.ComplaintStatusPending:
			stats.Pending++
		case domain.ComplaintStatusInProgress:
			stats.InProgress++
		case domain.ComplaintStatusResolved:
			stats.Resolved++
		}
	}
	if stats.Total > 0 {
		stats.ResolutionRate = int(math.Round(float64(stats.Resolved) / float64(stats.Total) * 100))
	}
	return stats
}
