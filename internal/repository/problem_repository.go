package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onestep-labs/urban-solve/internal/domain"
)

// ProblemRepository encapsulates the problem-type reference table.
type ProblemRepository interface {
	Upsert(ctx context.Context, problem *domain.ProblemType) error
	List(ctx context.Context) ([]domain.ProblemType, error)
}

type problemRepository struct {
	pool *pgxpool.Pool
}

// NewProblemRepository instantiates repository.
func NewProblemRepository(pool *pgxpool.Pool) ProblemRepository {
	return &problemRepository{pool: pool}
}

// Upsert finds or creates a problem type by case-insensitive name and fills
// in its id and canonical name. An existing row keeps its original spelling.
func (r *problemRepository) Upsert(ctx context.Context, problem *domain.ProblemType) error {
	const query = `
        INSERT INTO problem_types (name, description)
        VALUES ($1, $2)
        ON CONFLICT (LOWER(name)) DO UPDATE SET name = problem_types.name
        RETURNING id, name`
	return r.pool.QueryRow(ctx, query,
		problem.Name,
		problem.Description,
	).Scan(&problem.ID, &problem.Name)
}

func (r *problemRepository) List(ctx context.Context) ([]domain.ProblemType, error) {
	const query = `SELECT id, name, description FROM problem_types ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProblemType
	for rows.Next() {
		var problem domain.ProblemType
		if err := rows.Scan(&problem.ID, &problem.Name, &problem.Description); err != nil {
			return nil, err
		}
		result = append(result, problem)
	}
	return result, rows.Err()
}
