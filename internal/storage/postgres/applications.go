package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `ap.id, ap.job_id, ap.candidate_id, ap.status, ap.match_score, ap.cover_letter,
	ap.feedback, ap.viewed_at, ap.created_at, ap.updated_at`

// ApplicationRepo implements the storage.ApplicationRepository interface using PostgreSQL.
type ApplicationRepo struct {
	db Querier
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// WithTx creates a new ApplicationRepo bound to the transaction.
func (r *ApplicationRepo) WithTx(tx pgx.Tx) storage.ApplicationRepository {
	return &ApplicationRepo{db: tx}
}

var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func applicationTargets(a *models.Application) []any {
	return []any{
		&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.MatchScore, &a.CoverLetter,
		&a.Feedback, &a.ViewedAt, &a.CreatedAt, &a.UpdatedAt,
	}
}

// Create inserts a PENDING application. A second application for the same
// (job, candidate) pair fails with storage.ErrConflict.
func (r *ApplicationRepo) Create(ctx context.Context, a *models.Application) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = models.ApplicationStatusPending
	}

	query := `
		INSERT INTO applications (id, job_id, candidate_id, status, match_score, cover_letter)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query, a.ID, a.JobID, a.CandidateID, a.Status, a.MatchScore, a.CoverLetter).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		log.Printf("Error creating application for job %s candidate %s: %v", a.JobID, a.CandidateID, err)
		return mapWriteError(err, "create application")
	}
	return nil
}

// Exists reports whether the candidate already applied to the job.
func (r *ApplicationRepo) Exists(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`, jobID, candidateID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return exists, nil
}

// GetByID retrieves an application by ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var a models.Application
	err := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications ap WHERE ap.id = $1`, id).Scan(applicationTargets(&a)...)
	if err != nil {
		return nil, mapReadError(err, "get application")
	}
	return &a, nil
}

// UpdateStatus stores the new status. viewed_at keeps its first value.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, feedback *string, viewedAt *time.Time) (*models.Application, error) {
	query := `
		UPDATE applications ap SET
			status = $2,
			feedback = COALESCE($3, ap.feedback),
			viewed_at = COALESCE(ap.viewed_at, $4),
			updated_at = NOW()
		WHERE ap.id = $1
		RETURNING ` + applicationColumns

	var a models.Application
	if err := r.db.QueryRow(ctx, query, id, status, feedback, viewedAt).Scan(applicationTargets(&a)...); err != nil {
		return nil, mapReadError(err, "update application status")
	}
	return &a, nil
}

// Delete removes an application. Only cancellation by the candidate uses it.
func (r *ApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListForCompany lists applications to the company's postings, best match first.
func (r *ApplicationRepo) ListForCompany(ctx context.Context, f storage.ApplicationFilter) ([]models.CompanyApplication, int, error) {
	b := &queryBuilder{}
	b.where("j.company_id = " + b.arg(f.CompanyID))
	if f.JobID != nil {
		b.where("ap.job_id = " + b.arg(*f.JobID))
	}
	if f.Status != nil {
		b.where("ap.status = " + b.arg(*f.Status))
	}

	from := `
		FROM applications ap
		JOIN jobs j ON j.id = ap.job_id
		JOIN candidates c ON c.id = ap.candidate_id
		JOIN users u ON u.id = c.user_id` + b.whereClause()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+from, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	query := b.page(`SELECT `+applicationColumns+`,
		j.id, j.title, j.slug,
		c.id, c.full_name, c.phone, u.email, c.level, c.experience_years, c.skills, c.resume_url, c.is_anonymized`+
		from+` ORDER BY ap.match_score DESC, ap.created_at DESC, ap.id`, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		log.Printf("Error listing applications for company %s: %v", f.CompanyID, err)
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	out := []models.CompanyApplication{}
	for rows.Next() {
		var ca models.CompanyApplication
		targets := append(applicationTargets(&ca.Application),
			&ca.Job.ID, &ca.Job.Title, &ca.Job.Slug,
			&ca.Candidate.ID, &ca.Candidate.FullName, &ca.Candidate.Phone, &ca.Candidate.Email,
			&ca.Candidate.Level, &ca.Candidate.ExperienceYears, &ca.Candidate.Skills,
			&ca.Candidate.ResumeURL, &ca.Candidate.IsAnonymized,
		)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan application: %w", err)
		}
		out = append(out, ca)
	}
	return out, total, rows.Err()
}

// ListForCandidate lists the candidate's applications, newest first.
func (r *ApplicationRepo) ListForCandidate(ctx context.Context, candidateID uuid.UUID, status *models.ApplicationStatus, limit, offset int) ([]models.CandidateApplication, int, error) {
	b := &queryBuilder{}
	b.where("ap.candidate_id = " + b.arg(candidateID))
	if status != nil {
		b.where("ap.status = " + b.arg(*status))
	}

	from := `
		FROM applications ap
		JOIN jobs j ON j.id = ap.job_id
		JOIN companies co ON co.id = j.company_id` + b.whereClause()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+from, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	query := b.page(`SELECT `+applicationColumns+`,
		j.id, j.title, j.slug,
		co.id, co.trade_name, co.logo_url, co.is_verified`+
		from+` ORDER BY ap.created_at DESC, ap.id`, limit, offset)

	items, err := r.queryCandidateApplications(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ApplicationRepo) queryCandidateApplications(ctx context.Context, query string, args ...any) ([]models.CandidateApplication, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	return scanCandidateApplications(rows)
}

func scanCandidateApplications(rows pgx.Rows) ([]models.CandidateApplication, error) {
	out := []models.CandidateApplication{}
	for rows.Next() {
		var ca models.CandidateApplication
		targets := append(applicationTargets(&ca.Application),
			&ca.Job.ID, &ca.Job.Title, &ca.Job.Slug,
			&ca.Company.ID, &ca.Company.TradeName, &ca.Company.LogoURL, &ca.Company.IsVerified,
		)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		out = append(out, ca)
	}
	return out, rows.Err()
}
