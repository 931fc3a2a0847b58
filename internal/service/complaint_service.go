package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onestep-labs/urban-solve/internal/domain"
	"github.com/onestep-labs/urban-solve/internal/events"
	"github.com/onestep-labs/urban-solve/internal/repository"
	apperrors "github.com/onestep-labs/urban-solve/pkg/util/errorutil"
)

// ComplaintService coordinates the complaint lifecycle: submission with
// lazy location/problem resolution, listings, triage and status updates.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	locations  repository.LocationRepository
	problems   repository.ProblemRepository
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles repositories for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	LocationRepo  repository.LocationRepository
	ProblemRepo   repository.ProblemRepository
	Dispatcher    events.Dispatcher
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		locations:  deps.LocationRepo,
		problems:   deps.ProblemRepo,
		dispatcher: deps.Dispatcher,
	}
}

// SubmitInput describes a citizen complaint submission.
type SubmitInput struct {
	UserID      int64
	Title       string
	Description string
	ProblemSlug string
	Zone        string
	Ward        string
	AreaName    string
}

// AssignInput carries admin triage metadata.
type AssignInput struct {
	Department    string
	AssignedStaff string
	Priority      string
	Notes         string
}

// Submit resolves the location and problem type, then inserts a Pending
// complaint. The reference rows are committed before the complaint insert,
// so a failure here can leave a location or problem row behind but never an
// orphan complaint.
func (s *ComplaintService) Submit(ctx context.Context, input SubmitInput) (*domain.Complaint, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.ProblemSlug = strings.TrimSpace(input.ProblemSlug)
	input.Zone = strings.TrimSpace(input.Zone)
	input.Ward = strings.TrimSpace(input.Ward)
	input.AreaName = strings.TrimSpace(input.AreaName)

	if input.UserID <= 0 {
		return nil, apperrors.NewValidationError("userId is required", nil)
	}
	if input.Title == "" || input.Description == "" || input.ProblemSlug == "" ||
		input.Zone == "" || input.Ward == "" || input.AreaName == "" {
		return nil, apperrors.NewValidationError(
			"title, description, problemType, zone, ward and areaName are required", nil)
	}

	locationID, err := s.ResolveLocation(ctx, input.Zone, input.Ward, input.AreaName)
	if err != nil {
		return nil, err
	}
	problemID, problemName, err := s.resolveProblem(ctx, input.ProblemSlug)
	if err != nil {
		return nil, err
	}

	complaint := &domain.Complaint{
		UserID:      input.UserID,
		LocationID:  locationID,
		ProblemID:   problemID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.ComplaintStatusPending,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintSubmitted,
		ComplaintID: complaint.ID,
		UserID:      complaint.UserID,
		Payload: events.ComplaintSubmittedPayload{
			Title:       complaint.Title,
			ProblemType: problemName,
			Zone:        input.Zone,
			Ward:        input.Ward,
			AreaName:    input.AreaName,
		},
	})
	return complaint, nil
}

// ResolveLocation finds or creates the location row for a (zone, ward, area)
// triple. Repeated calls with equivalent input converge to the same id.
func (s *ComplaintService) ResolveLocation(ctx context.Context, zone, ward, area string) (int64, error) {
	location := &domain.Location{
		Zone:     strings.TrimSpace(zone),
		Ward:     strings.TrimSpace(ward),
		AreaName: strings.TrimSpace(area),
	}
	if err := s.locations.Upsert(ctx, location); err != nil {
		return 0, apperrors.NewPersistenceError(err)
	}
	return location.ID, nil
}

// ResolveProblemType normalizes a raw dash-separated slug and finds or
// creates the matching problem-type row.
func (s *ComplaintService) ResolveProblemType(ctx context.Context, rawSlug string) (int64, error) {
	id, _, err := s.resolveProblem(ctx, rawSlug)
	return id, err
}

func (s *ComplaintService) resolveProblem(ctx context.Context, rawSlug string) (int64, string, error) {
	name := NormalizeProblemName(rawSlug)
	if name == "" {
		return 0, "", apperrors.NewValidationError("problemType is required", nil)
	}
	problem := &domain.ProblemType{
		Name:        name,
		Description: fmt.Sprintf("Reported issues categorized as %s", name),
	}
	if err := s.problems.Upsert(ctx, problem); err != nil {
		return 0, "", apperrors.NewPersistenceError(err)
	}
	return problem.ID, problem.Name, nil
}

// NormalizeProblemName converts a raw form slug into a canonical display
// name: dashes become spaces and every word is title-cased, so "water-leak"
// and "Water Leak" converge.
func NormalizeProblemName(rawSlug string) string {
	words := strings.FieldsFunc(rawSlug, func(r rune) bool {
		return r == '-' || unicode.IsSpace(r)
	})
	for i, word := range words {
		lower := strings.ToLower(word)
		runes := []rune(lower)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ListForUser returns complaints owned by userID, newest first. Untriaged
// complaints report the default priority.
func (s *ComplaintService) ListForUser(ctx context.Context, userID int64) ([]repository.ComplaintRecord, error) {
	if userID <= 0 {
		return nil, apperrors.NewValidationError("userId is required", nil)
	}
	records, err := s.complaints.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	for i := range records {
		if records[i].Priority == nil {
			priority := domain.DefaultPriority
			records[i].Priority = &priority
		}
	}
	return records, nil
}

// ListAll returns every complaint joined with citizen identity for the
// admin dashboard. Assignment fields stay nil until triage.
func (s *ComplaintService) ListAll(ctx context.Context) ([]repository.ComplaintRecord, error) {
	records, err := s.complaints.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return records, nil
}

// Assign persists triage metadata and moves the complaint to In Progress.
// A Resolved complaint cannot be assigned; that would reopen it behind the
// back of the status machine UpdateStatus enforces.
func (s *ComplaintService) Assign(ctx context.Context, complaintID int64, input AssignInput) error {
	input.Department = strings.TrimSpace(input.Department)
	input.AssignedStaff = strings.TrimSpace(input.AssignedStaff)
	input.Priority = strings.TrimSpace(input.Priority)
	if input.Priority == "" {
		input.Priority = domain.DefaultPriority
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return apperrors.NewPersistenceError(err)
	}
	if complaint.Status == domain.ComplaintStatusResolved {
		return apperrors.NewValidationError("cannot assign a resolved complaint", map[string]any{
			"complaint_id": complaintID,
		})
	}

	err = s.complaints.Assign(ctx, complaintID, repository.AssignmentInput{
		Department:    input.Department,
		AssignedStaff: input.AssignedStaff,
		Priority:      input.Priority,
		Notes:         input.Notes,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return apperrors.NewPersistenceError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintAssigned,
		ComplaintID: complaintID,
		Payload: events.ComplaintAssignedPayload{
			Department:    input.Department,
			AssignedStaff: input.AssignedStaff,
			Priority:      input.Priority,
		},
	})
	return nil
}

// UpdateStatus moves a complaint along Pending -> In Progress -> Resolved.
func (s *ComplaintService) UpdateStatus(ctx context.Context, complaintID int64, newStatus domain.ComplaintStatus) error {
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return apperrors.NewPersistenceError(err)
	}
	if !domain.CanTransition(complaint.Status, newStatus) {
		return apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": complaint.Status,
			"to":   newStatus,
		})
	}
	if err := s.complaints.UpdateStatus(ctx, complaintID, newStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return apperrors.NewPersistenceError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaintID,
		UserID:      complaint.UserID,
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: complaint.Status,
			NewStatus: newStatus,
		},
	})
	return nil
}

// ListLocations exposes the location reference table.
func (s *ComplaintService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return locations, nil
}

// ListProblemTypes exposes the problem-type reference table.
func (s *ComplaintService) ListProblemTypes(ctx context.Context) ([]domain.ProblemType, error) {
	problems, err := s.problems.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return problems, nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
