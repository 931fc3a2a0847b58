package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onestep-labs/urban-solve/internal/domain"
	apperrors "github.com/onestep-labs/urban-solve/pkg/util/errorutil"
)

func TestNormalizeProblemName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"water-leak", "Water Leak"},
		{"Water Leak", "Water Leak"},
		{"WATER-LEAK", "Water Leak"},
		{"pothole", "Pothole"},
		{"street--light  broken", "Street Light Broken"},
		{"  garbage-collection ", "Garbage Collection"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeProblemName(tt.input))
		})
	}
}

func validSubmit() SubmitInput {
	return SubmitInput{
		UserID:      7,
		Title:       "Pothole on Elm St",
		Description: "2ft deep",
		ProblemSlug: "pothole",
		Zone:        "North",
		Ward:        "Ward 1",
		AreaName:    "Main Street",
	}
}

func TestSubmitCreatesPendingComplaint(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, validSubmit())
	require.NoError(t, err)
	assert.Positive(t, complaint.ID)
	assert.Equal(t, domain.ComplaintStatusPending, complaint.Status)

	records, err := svc.ListForUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, complaint.ID, records[0].ID)
	assert.Equal(t, "Pothole on Elm St", records[0].Title)
	assert.Equal(t, "Pothole", records[0].ProblemType)
	assert.Equal(t, "North", records[0].Zone)
	assert.Equal(t, "Ward 1", records[0].Ward)
	assert.Equal(t, "Main Street", records[0].AreaName)
	assert.Equal(t, domain.ComplaintStatusPending, records[0].Status)
	require.NotNil(t, records[0].Priority)
	assert.Equal(t, domain.DefaultPriority, *records[0].Priority)
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	tests := []struct {
		name   string
		modify func(*SubmitInput)
	}{
		{"missing title", func(in *SubmitInput) { in.Title = "" }},
		{"blank description", func(in *SubmitInput) { in.Description = "   " }},
		{"missing problem slug", func(in *SubmitInput) { in.ProblemSlug = "" }},
		{"missing zone", func(in *SubmitInput) { in.Zone = "" }},
		{"missing ward", func(in *SubmitInput) { in.Ward = "" }},
		{"missing area", func(in *SubmitInput) { in.AreaName = "" }},
		{"missing user", func(in *SubmitInput) { in.UserID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSubmit()
			tt.modify(&input)
			_, err := svc.Submit(ctx, input)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		})
	}

	records, err := svc.ListForUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestResolveLocationIdempotent(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	first, err := svc.ResolveLocation(ctx, "North", "Ward 1", "Main Street")
	require.NoError(t, err)
	second, err := svc.ResolveLocation(ctx, "North", "Ward 1", "Main Street")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := svc.ResolveLocation(ctx, "South", "Ward 1", "Main Street")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestResolveProblemTypeConverges(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	first, err := svc.ResolveProblemType(ctx, "water-leak")
	require.NoError(t, err)

	for _, variant := range []string{"Water Leak", "WATER-LEAK", "water leak"} {
		id, err := svc.ResolveProblemType(ctx, variant)
		require.NoError(t, err)
		assert.Equal(t, first, id, "variant %q should resolve to the same row", variant)
	}

	problems, err := svc.ListProblemTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, problems, 1)
	assert.Equal(t, "Water Leak", problems[0].Name)
}

func TestListForUserNewestFirst(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		input := validSubmit()
		input.Title = title
		_, err := svc.Submit(ctx, input)
		require.NoError(t, err)
	}

	records, err := svc.ListForUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "third", records[0].Title)
	assert.Equal(t, "second", records[1].Title)
	assert.Equal(t, "first", records[2].Title)
}

func TestAssign(t *testing.T) {
	svc, repo := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, validSubmit())
	require.NoError(t, err)

	err = svc.Assign(ctx, complaint.ID, AssignInput{
		Department:    "Roads",
		AssignedStaff: "J. Rahman",
		Priority:      "High",
		Notes:         "urgent",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusInProgress, stored.Status)
	require.NotNil(t, stored.Department)
	assert.Equal(t, "Roads", *stored.Department)
	require.NotNil(t, stored.AssignedStaff)
	assert.Equal(t, "J. Rahman", *stored.AssignedStaff)
	require.NotNil(t, stored.Priority)
	assert.Equal(t, "High", *stored.Priority)
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))
}

func TestAssignDefaultsPriority(t *testing.T) {
	svc, repo := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, validSubmit())
	require.NoError(t, err)

	require.NoError(t, svc.Assign(ctx, complaint.ID, AssignInput{Department: "Water"}))

	stored, err := repo.GetByID(ctx, complaint.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Priority)
	assert.Equal(t, domain.DefaultPriority, *stored.Priority)
}

func TestSubmitPersistenceFailure(t *testing.T) {
	svc, repo := newTestComplaintService()
	ctx := context.Background()

	repo.createErr = errors.New("connection reset by peer")

	_, err := svc.Submit(ctx, validSubmit())
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "PERSISTENCE_FAILED", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)

	// the failed insert must not leave a complaint behind
	repo.createErr = nil
	records, err := svc.ListForUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAssignResolvedRejected(t *testing.T) {
	svc, repo := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, validSubmit())
	require.NoError(t, err)
	require.NoError(t, svc.Assign(ctx, complaint.ID, AssignInput{Department: "Roads"}))
	require.NoError(t, svc.UpdateStatus(ctx, complaint.ID, domain.ComplaintStatusResolved))

	err = svc.Assign(ctx, complaint.ID, AssignInput{Department: "Water"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	stored, err := repo.GetByID(ctx, complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusResolved, stored.Status)
	require.NotNil(t, stored.Department)
	assert.Equal(t, "Roads", *stored.Department)
}

func TestAssignNotFound(t *testing.T) {
	svc, repo := newTestComplaintService()
	ctx := context.Background()

	err := svc.Assign(ctx, 999, AssignInput{Department: "Roads"})
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Empty(t, repo.complaints)
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, validSubmit())
	require.NoError(t, err)

	// Pending -> Resolved skips In Progress
	err = svc.UpdateStatus(ctx, complaint.ID, domain.ComplaintStatusResolved)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.UpdateStatus(ctx, complaint.ID, domain.ComplaintStatusInProgress))
	require.NoError(t, svc.UpdateStatus(ctx, complaint.ID, domain.ComplaintStatusResolved))

	// no transition leaves Resolved
	err = svc.UpdateStatus(ctx, complaint.ID, domain.ComplaintStatusPending)
	require.Error(t, err)
	err = svc.UpdateStatus(ctx, complaint.ID, domain.ComplaintStatusInProgress)
	require.Error(t, err)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, _ := newTestComplaintService()

	err := svc.UpdateStatus(context.Background(), 42, domain.ComplaintStatusInProgress)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestListAllIncludesCitizenIdentity(t *testing.T) {
	svc, repo := newTestComplaintService()
	ctx := context.Background()

	repo.citizens[7] = domain.User{ID: 7, Name: "Ayesha Khan", Email: "ayesha@example.com"}

	_, err := svc.Submit(ctx, validSubmit())
	require.NoError(t, err)

	records, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ayesha Khan", records[0].CitizenName)
	assert.Equal(t, "ayesha@example.com", records[0].CitizenEmail)
	assert.Nil(t, records[0].Department)
	assert.Nil(t, records[0].AssignedStaff)
}
