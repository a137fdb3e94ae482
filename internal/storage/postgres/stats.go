package postgres

import (
	"context"
	"fmt"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepo aggregates dashboard counters.
type StatsRepo struct {
	db Querier
}

// NewStatsRepo creates a new StatsRepo.
func NewStatsRepo(db *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{db: db}
}

var _ storage.StatsRepository = (*StatsRepo)(nil)

// AdminStats returns platform-wide totals and the job distribution.
func (r *StatsRepo) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var s models.AdminStats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM candidates),
			(SELECT COUNT(*) FROM companies),
			(SELECT COUNT(*) FROM companies WHERE NOT is_verified),
			(SELECT COUNT(*) FROM jobs),
			(SELECT COUNT(*) FROM jobs WHERE status = 'ACTIVE'),
			(SELECT COUNT(*) FROM applications)`,
	).Scan(&s.Users, &s.Candidates, &s.Companies, &s.UnverifiedCompanies, &s.Jobs, &s.ActiveJobs, &s.Applications)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin totals: %w", err)
	}

	s.JobsByCity, err = r.namedCounts(ctx, `
		SELECT c.name, COUNT(jc.job_id)
		FROM cities c
		LEFT JOIN job_cities jc ON jc.city_id = c.id
		GROUP BY c.name
		ORDER BY COUNT(jc.job_id) DESC, c.name`)
	if err != nil {
		return nil, err
	}
	s.JobsByArea, err = r.namedCounts(ctx, `
		SELECT a.name, COUNT(j.id)
		FROM job_areas a
		LEFT JOIN jobs j ON j.area_id = a.id
		GROUP BY a.name
		ORDER BY COUNT(j.id) DESC, a.name`)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StatsRepo) namedCounts(ctx context.Context, query string) ([]models.NamedCount, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load distribution: %w", err)
	}
	defer rows.Close()

	out := []models.NamedCount{}
	for rows.Next() {
		var nc models.NamedCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan distribution: %w", err)
		}
		out = append(out, nc)
	}
	return out, rows.Err()
}

// CandidateStats returns the counters shown on a candidate's dashboard.
func (r *StatsRepo) CandidateStats(ctx context.Context, candidateID uuid.UUID) (*models.CandidateStats, error) {
	var s models.CandidateStats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM applications WHERE candidate_id = $1),
			(SELECT COUNT(*) FROM applications WHERE candidate_id = $1 AND status = 'PENDING'),
			(SELECT COUNT(*) FROM applications WHERE candidate_id = $1 AND viewed_at IS NOT NULL),
			(SELECT COUNT(*) FROM favorite_jobs WHERE candidate_id = $1)`, candidateID,
	).Scan(&s.Applications, &s.Pending, &s.Viewed, &s.Favorites)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate stats: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+applicationColumns+`,
			j.id, j.title, j.slug,
			co.id, co.trade_name, co.logo_url, co.is_verified
		FROM applications ap
		JOIN jobs j ON j.id = ap.job_id
		JOIN companies co ON co.id = j.company_id
		WHERE ap.candidate_id = $1
		ORDER BY ap.created_at DESC
		LIMIT 5`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent applications: %w", err)
	}
	defer rows.Close()

	s.RecentApplications, err = scanCandidateApplications(rows)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CompanyStats returns the counters shown on a company's dashboard. Plan
// and quota are filled in by the caller.
func (r *StatsRepo) CompanyStats(ctx context.Context, companyID uuid.UUID) (*models.CompanyStats, error) {
	var s models.CompanyStats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM jobs WHERE company_id = $1 AND status = 'ACTIVE'),
			(SELECT COUNT(*) FROM applications ap JOIN jobs j ON j.id = ap.job_id WHERE j.company_id = $1),
			(SELECT COUNT(*) FROM applications ap JOIN jobs j ON j.id = ap.job_id WHERE j.company_id = $1 AND ap.status = 'PENDING'),
			(SELECT COALESCE(SUM(view_count), 0) FROM jobs WHERE company_id = $1)`, companyID,
	).Scan(&s.ActiveJobs, &s.TotalApplications, &s.PendingApplications, &s.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("failed to load company stats: %w", err)
	}
	return &s, nil
}
