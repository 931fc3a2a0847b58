package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onestep-labs/urban-solve/internal/domain"
	"github.com/onestep-labs/urban-solve/internal/repository"
)

func records(statuses ...domain.ComplaintStatus) []repository.ComplaintRecord {
	result := make([]repository.ComplaintRecord, 0, len(statuses))
	for i, status := range statuses {
		result = append(result, repository.ComplaintRecord{ID: int64(i + 1), Status: status})
	}
	return result
}

func TestComputeStats(t *testing.T) {
	pending := domain.ComplaintStatusPending
	inProgress := domain.ComplaintStatusInProgress
	resolved := domain.ComplaintStatusResolved

	tests := []struct {
		name     string
		input    []repository.ComplaintRecord
		expected Stats
	}{
		{
			name:     "empty list yields all zeros",
			input:    nil,
			expected: Stats{},
		},
		{
			name:     "half resolved",
			input:    records(pending, pending, resolved, resolved),
			expected: Stats{Total: 4, Pending: 2, Resolved: 2, ResolutionRate: 50},
		},
		{
			name:     "one of each status",
			input:    records(pending, inProgress, resolved),
			expected: Stats{Total: 3, Pending: 1, InProgress: 1, Resolved: 1, ResolutionRate: 33},
		},
		{
			name:     "rate rounds up",
			input:    records(pending, resolved, resolved),
			expected: Stats{Total: 3, Pending: 1, Resolved: 2, ResolutionRate: 67},
		},
		{
			name:     "all resolved",
			input:    records(resolved, resolved),
			expected: Stats{Total: 2, Resolved: 2, ResolutionRate: 100},
		},
		{
			name:     "none resolved",
			input:    records(pending, inProgress),
			expected: Stats{Total: 2, Pending: 1, InProgress: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeStats(tt.input))
		})
	}
}
