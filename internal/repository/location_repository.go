package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onestep-labs/urban-solve/internal/domain"
)

// LocationRepository encapsulates the append-only location reference table.
type LocationRepository interface {
	Upsert(ctx context.Context, location *domain.Location) error
	List(ctx context.Context) ([]domain.Location, error)
}

type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository instantiates repository.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

// Upsert finds or creates the row for a (zone, ward, area) triple and fills
// in its id. The DO UPDATE arm is a no-op write so RETURNING always yields
// the surviving row, closing the concurrent first-submission race.
func (r *locationRepository) Upsert(ctx context.Context, location *domain.Location) error {
	const query = `
        INSERT INTO locations (zone, ward, area_name)
        VALUES ($1, $2, $3)
        ON CONFLICT (zone, ward, area_name) DO UPDATE SET zone = EXCLUDED.zone
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		location.Zone,
		location.Ward,
		location.AreaName,
	).Scan(&location.ID)
}

func (r *locationRepository) List(ctx context.Context) ([]domain.Location, error) {
	const query = `SELECT id, zone, ward, area_name FROM locations ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Location
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.ID, &loc.Zone, &loc.Ward, &loc.AreaName); err != nil {
			return nil, err
		}
		result = append(result, loc)
	}
	return result, rows.Err()
}
