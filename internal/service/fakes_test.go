package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/onestep-labs/urban-solve/internal/domain"
	"github.com/onestep-labs/urban-solve/internal/repository"
)

// In-memory repository fakes mirroring the Postgres behavior the services
// rely on, including pgx.ErrNoRows sentinels and upsert convergence.

type fakeLocationRepo struct {
	mu        sync.Mutex
	locations []domain.Location
	nextID    int64
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{nextID: 1}
}

func (f *fakeLocationRepo) Upsert(_ context.Context, location *domain.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.locations {
		if existing.Zone == location.Zone && existing.Ward == location.Ward && existing.AreaName == location.AreaName {
			location.ID = existing.ID
			return nil
		}
	}
	location.ID = f.nextID
	f.nextID++
	f.locations = append(f.locations, *location)
	return nil
}

func (f *fakeLocationRepo) List(_ context.Context) ([]domain.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Location{}, f.locations...), nil
}

func (f *fakeLocationRepo) byID(id int64) (domain.Location, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, loc := range f.locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return domain.Location{}, false
}

type fakeProblemRepo struct {
	mu       sync.Mutex
	problems []domain.ProblemType
	nextID   int64
}

func newFakeProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{nextID: 1}
}

func (f *fakeProblemRepo) Upsert(_ context.Context, problem *domain.ProblemType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.problems {
		if strings.EqualFold(existing.Name, problem.Name) {
			problem.ID = existing.ID
			problem.Name = existing.Name
			return nil
		}
	}
	problem.ID = f.nextID
	f.nextID++
	f.problems = append(f.problems, *problem)
	return nil
}

func (f *fakeProblemRepo) List(_ context.Context) ([]domain.ProblemType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ProblemType{}, f.problems...), nil
}

func (f *fakeProblemRepo) byID(id int64) (domain.ProblemType, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, problem := range f.problems {
		if problem.ID == id {
			return problem, true
		}
	}
	return domain.ProblemType{}, false
}

type fakeComplaintRepo struct {
	mu         sync.Mutex
	complaints []domain.Complaint
	locations  *fakeLocationRepo
	problems   *fakeProblemRepo
	citizens   map[int64]domain.User
	nextID     int64
	createErr  error
	base       time.Time
}

func newFakeComplaintRepo(locations *fakeLocationRepo, problems *fakeProblemRepo) *fakeComplaintRepo {
	return &fakeComplaintRepo{
		locations: locations,
		problems:  problems,
		citizens:  map[int64]domain.User{},
		nextID:    1,
		base:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	complaint.ID = f.nextID
	f.nextID++
	// distinct timestamps keep newest-first ordering deterministic
	complaint.CreatedAt = f.base.Add(time.Duration(complaint.ID) * time.Minute)
	complaint.UpdatedAt = complaint.CreatedAt
	f.complaints = append(f.complaints, *complaint)
	return nil
}

func (f *fakeComplaintRepo) GetByID(_ context.Context, id int64) (*domain.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.complaints {
		if f.complaints[i].ID == id {
			c := f.complaints[i]
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeComplaintRepo) ListByUser(ctx context.Context, userID int64) ([]repository.ComplaintRecord, error) {
	return f.list(ctx, &userID, false)
}

func (f *fakeComplaintRepo) ListAll(ctx context.Context) ([]repository.ComplaintRecord, error) {
	return f.list(ctx, nil, true)
}

func (f *fakeComplaintRepo) list(_ context.Context, userID *int64, withCitizen bool) ([]repository.ComplaintRecord, error) {
	f.mu.Lock()
	complaints := append([]domain.Complaint{}, f.complaints...)
	f.mu.Unlock()

	var records []repository.ComplaintRecord
	for _, c := range complaints {
		if userID != nil && c.UserID != *userID {
			continue
		}
		loc, _ := f.locations.byID(c.LocationID)
		problem, _ := f.problems.byID(c.ProblemID)
		rec := repository.ComplaintRecord{
			ID:            c.ID,
			UserID:        c.UserID,
			Title:         c.Title,
			Description:   c.Description,
			Status:        c.Status,
			Zone:          loc.Zone,
			Ward:          loc.Ward,
			AreaName:      loc.AreaName,
			ProblemType:   problem.Name,
			Department:    c.Department,
			AssignedStaff: c.AssignedStaff,
			Priority:      c.Priority,
			Notes:         c.Notes,
			CreatedAt:     c.CreatedAt,
			UpdatedAt:     c.UpdatedAt,
		}
		if withCitizen {
			if citizen, ok := f.citizens[c.UserID]; ok {
				rec.CitizenName = citizen.Name
				rec.CitizenEmail = citizen.Email
			}
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (f *fakeComplaintRepo) Assign(_ context.Context, id int64, input repository.AssignmentInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.complaints {
		if f.complaints[i].ID == id {
			f.complaints[i].Status = domain.ComplaintStatusInProgress
			f.complaints[i].Department = &input.Department
			f.complaints[i].AssignedStaff = &input.AssignedStaff
			f.complaints[i].Priority = &input.Priority
			f.complaints[i].Notes = &input.Notes
			f.complaints[i].UpdatedAt = f.complaints[i].UpdatedAt.Add(time.Minute)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeComplaintRepo) UpdateStatus(_ context.Context, id int64, status domain.ComplaintStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.complaints {
		if f.complaints[i].ID == id {
			f.complaints[i].Status = status
			f.complaints[i].UpdatedAt = f.complaints[i].UpdatedAt.Add(time.Minute)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  []domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return f.find(func(u domain.User) bool { return u.ID == id })
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.find(func(u domain.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) GetByNID(_ context.Context, nid string) (*domain.User, error) {
	return f.find(func(u domain.User) bool { return u.NID == nid })
}

func (f *fakeUserRepo) GetByEmailAndRole(_ context.Context, email string, role domain.Role) (*domain.User, error) {
	return f.find(func(u domain.User) bool { return u.Email == email && u.Role == role })
}

func (f *fakeUserRepo) find(match func(domain.User) bool) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if match(f.users[i]) {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newTestComplaintService() (*ComplaintService, *fakeComplaintRepo) {
	locations := newFakeLocationRepo()
	problems := newFakeProblemRepo()
	complaints := newFakeComplaintRepo(locations, problems)
	svc := NewComplaintService(ComplaintDependencies{
		ComplaintRepo: complaints,
		LocationRepo:  locations,
		ProblemRepo:   problems,
	})
	return svc, complaints
}
