package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onestep-labs/urban-solve/internal/domain"
)

// ComplaintRecord is a complaint joined with its location and problem-type
// reference rows. Citizen identity is filled only by the admin listing.
type ComplaintRecord struct {
	ID            int64
	UserID        int64
	Title         string
	Description   string
	Status        domain.ComplaintStatus
	Zone          string
	Ward          string
	AreaName      string
	ProblemType   string
	Department    *string
	AssignedStaff *string
	Priority      *string
	Notes         *string
	CitizenName   string
	CitizenEmail  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AssignmentInput carries the triage metadata written by admins.
type AssignmentInput struct {
	Department    string
	AssignedStaff string
	Priority      string
	Notes         string
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	ListByUser(ctx context.Context, userID int64) ([]ComplaintRecord, error)
	ListAll(ctx context.Context) ([]ComplaintRecord, error)
	Assign(ctx context.Context, id int64, input AssignmentInput) error
	UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) error
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (user_id, location_id, problem_id, title, description, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.UserID,
		complaint.LocationID,
		complaint.ProblemID,
		complaint.Title,
		complaint.Description,
		complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	const query = `
        SELECT id, user_id, location_id, problem_id, title, description, status,
               department, assigned_staff, priority, notes, created_at, updated_at
        FROM complaints WHERE id=$1`
	var c domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.UserID,
		&c.LocationID,
		&c.ProblemID,
		&c.Title,
		&c.Description,
		&c.Status,
		&c.Department,
		&c.AssignedStaff,
		&c.Priority,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID int64) ([]ComplaintRecord, error) {
	const query = `
        SELECT c.id, c.user_id, c.title, c.description, c.status,
               l.zone, l.ward, l.area_name, p.name,
               c.department, c.assigned_staff, c.priority, c.notes,
               c.created_at, c.updated_at
        FROM complaints c
        JOIN locations l ON l.id = c.location_id
        JOIN problem_types p ON p.id = c.problem_id
        WHERE c.user_id=$1
        ORDER BY c.created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaintRecords(rows, false)
}

func (r *complaintRepository) ListAll(ctx context.Context) ([]ComplaintRecord, error) {
	const query = `
        SELECT c.id, c.user_id, c.title, c.description, c.status,
               l.zone, l.ward, l.area_name, p.name,
               c.department, c.assigned_staff, c.priority, c.notes,
               c.created_at, c.updated_at,
               u.name, u.email
        FROM complaints c
        JOIN locations l ON l.id = c.location_id
        JOIN problem_types p ON p.id = c.problem_id
        JOIN users u ON u.id = c.user_id
        ORDER BY c.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaintRecords(rows, true)
}

func (r *complaintRepository) Assign(ctx context.Context, id int64, input AssignmentInput) error {
	const query = `
        UPDATE complaints
        SET status=$1, department=$2, assigned_staff=$3, priority=$4, notes=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		domain.ComplaintStatusInProgress,
		input.Department,
		input.AssignedStaff,
		input.Priority,
		input.Notes,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) error {
	const query = `UPDATE complaints SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanComplaintRecords(rows pgx.Rows, withCitizen bool) ([]ComplaintRecord, error) {
	var result []ComplaintRecord
	for rows.Next() {
		var rec ComplaintRecord
		dest := []any{
			&rec.ID,
			&rec.UserID,
			&rec.Title,
			&rec.Description,
			&rec.Status,
			&rec.Zone,
			&rec.Ward,
			&rec.AreaName,
			&rec.ProblemType,
			&rec.Department,
			&rec.AssignedStaff,
			&rec.Priority,
			&rec.Notes,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		}
		if withCitizen {
			dest = append(dest, &rec.CitizenName, &rec.CitizenEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
