package postgres

import (
	"context"
	"fmt"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReferenceRepo serves the seeded lookup tables.
type ReferenceRepo struct {
	db Querier
}

// NewReferenceRepo creates a new ReferenceRepo.
func NewReferenceRepo(db *pgxpool.Pool) *ReferenceRepo {
	return &ReferenceRepo{db: db}
}

var _ storage.ReferenceRepository = (*ReferenceRepo)(nil)

func listNamed[T any](ctx context.Context, db Querier, table string) ([]T, error) {
	rows, err := db.Query(ctx, `SELECT id, name, slug FROM `+table+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", table, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// ListCities returns the municipalities ordered by name.
func (r *ReferenceRepo) ListCities(ctx context.Context) ([]models.City, error) {
	return listNamed[models.City](ctx, r.db, "cities")
}

// ListAreas returns the job areas ordered by name.
func (r *ReferenceRepo) ListAreas(ctx context.Context) ([]models.JobArea, error) {
	return listNamed[models.JobArea](ctx, r.db, "job_areas")
}

// ListSegments returns the company segments ordered by name.
func (r *ReferenceRepo) ListSegments(ctx context.Context) ([]models.Segment, error) {
	return listNamed[models.Segment](ctx, r.db, "segments")
}

// CountCities counts how many of the distinct ids exist.
func (r *ReferenceRepo) CountCities(ctx context.Context, ids []uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cities WHERE id = ANY($1)`, ids).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cities: %w", err)
	}
	return n, nil
}

// AreaExists reports whether the job area exists.
func (r *ReferenceRepo) AreaExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "job_areas", id)
}

// SegmentExists reports whether the segment exists.
func (r *ReferenceRepo) SegmentExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "segments", id)
}

func (r *ReferenceRepo) exists(ctx context.Context, table string, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", table, err)
	}
	return exists, nil
}
