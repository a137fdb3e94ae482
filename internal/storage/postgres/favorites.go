package postgres

import (
	"context"
	"fmt"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FavoriteRepo implements the storage.FavoriteRepository interface using PostgreSQL.
type FavoriteRepo struct {
	db Querier
}

// NewFavoriteRepo creates a new FavoriteRepo.
func NewFavoriteRepo(db *pgxpool.Pool) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

var _ storage.FavoriteRepository = (*FavoriteRepo)(nil)

// Exists reports whether the candidate bookmarked the job.
func (r *FavoriteRepo) Exists(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM favorite_jobs WHERE candidate_id = $1 AND job_id = $2)`, candidateID, jobID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// Add bookmarks the job. A concurrent duplicate surfaces as storage.ErrConflict.
func (r *FavoriteRepo) Add(ctx context.Context, candidateID, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `INSERT INTO favorite_jobs (id, candidate_id, job_id) VALUES ($1, $2, $3)`, uuid.New(), candidateID, jobID)
	if err != nil {
		return mapWriteError(err, "add favorite")
	}
	return nil
}

// Remove deletes the bookmark and reports whether one existed.
func (r *FavoriteRepo) Remove(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM favorite_jobs WHERE candidate_id = $1 AND job_id = $2`, candidateID, jobID)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByCandidate pages through the bookmarks, most recent first.
func (r *FavoriteRepo) ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]models.FavoriteJob, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM favorite_jobs WHERE candidate_id = $1`, candidateID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, candidate_id, job_id, created_at
		FROM favorite_jobs
		WHERE candidate_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`, candidateID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []models.FavoriteJob{}
	jobIDs := []uuid.UUID{}
	for rows.Next() {
		var f models.FavoriteJob
		if err := rows.Scan(&f.ID, &f.CandidateID, &f.JobID, &f.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, f)
		jobIDs = append(jobIDs, f.JobID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(favorites) == 0 {
		return favorites, total, nil
	}

	jobs := &JobRepo{db: r.db}
	summaries, err := jobs.querySummaries(ctx, `SELECT `+jobSummaryColumns+jobSummaryFrom+` WHERE j.id = ANY($1)`, jobIDs)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uuid.UUID]models.JobSummary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}
	for i := range favorites {
		favorites[i].Job = byID[favorites[i].JobID]
	}
	return favorites, total, nil
}
