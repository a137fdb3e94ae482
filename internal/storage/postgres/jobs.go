package postgres

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `j.id, j.company_id, j.title, j.slug, j.description, j.requirements, j.benefits, j.area_id,
	j.level, j.modality, j.contract_type, j.salary_min, j.salary_max, j.hide_salary, j.work_schedule,
	j.apply_by_platform, j.apply_by_whatsapp, j.apply_by_email, j.apply_by_url, j.status, j.view_count,
	j.is_featured, j.is_highlighted, j.published_at, j.expires_at, j.created_at, j.updated_at`

const jobSummaryColumns = jobColumns + `,
	co.id, co.trade_name, co.logo_url, co.is_verified,
	a.id, a.name, a.slug,
	(SELECT COUNT(*) FROM applications ap WHERE ap.job_id = j.id) AS application_count`

const jobSummaryFrom = `
	FROM jobs j
	JOIN companies co ON co.id = j.company_id
	JOIN job_areas a ON a.id = j.area_id`

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{db: db}
}

// WithTx creates a new JobRepo with the transaction.
func (r *JobRepo) WithTx(tx pgx.Tx) storage.JobRepository {
	return &JobRepo{db: tx}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

func jobTargets(j *models.Job) []any {
	return []any{
		&j.ID, &j.CompanyID, &j.Title, &j.Slug, &j.Description, &j.Requirements, &j.Benefits, &j.AreaID,
		&j.Level, &j.Modality, &j.ContractType, &j.SalaryMin, &j.SalaryMax, &j.HideSalary, &j.WorkSchedule,
		&j.ApplyByPlatform, &j.ApplyByWhatsapp, &j.ApplyByEmail, &j.ApplyByURL, &j.Status, &j.ViewCount,
		&j.IsFeatured, &j.IsHighlighted, &j.PublishedAt, &j.ExpiresAt, &j.CreatedAt, &j.UpdatedAt,
	}
}

func summaryTargets(s *models.JobSummary) []any {
	return append(jobTargets(&s.Job),
		&s.Company.ID, &s.Company.TradeName, &s.Company.LogoURL, &s.Company.IsVerified,
		&s.Area.ID, &s.Area.Name, &s.Area.Slug,
		&s.ApplicationCount,
	)
}

// Create saves a new job posting together with its city links.
func (r *JobRepo) Create(ctx context.Context, job *models.Job, cityIDs []uuid.UUID) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	query := `
		INSERT INTO jobs (id, company_id, title, slug, description, requirements, benefits, area_id, level,
			modality, contract_type, salary_min, salary_max, hide_salary, work_schedule, apply_by_platform,
			apply_by_whatsapp, apply_by_email, apply_by_url, status, is_featured, is_highlighted,
			published_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING view_count, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		job.ID, job.CompanyID, job.Title, job.Slug, job.Description, job.Requirements, job.Benefits,
		job.AreaID, job.Level, job.Modality, job.ContractType, job.SalaryMin, job.SalaryMax, job.HideSalary,
		job.WorkSchedule, job.ApplyByPlatform, job.ApplyByWhatsapp, job.ApplyByEmail, job.ApplyByURL,
		job.Status, job.IsFeatured, job.IsHighlighted, job.PublishedAt, job.ExpiresAt,
	).Scan(&job.ViewCount, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		log.Printf("Error creating job %q for company %s: %v", job.Slug, job.CompanyID, err)
		return mapWriteError(err, "create job")
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO job_cities (job_id, city_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`, job.ID, cityIDs)
	if err != nil {
		log.Printf("Error linking cities to job %s: %v", job.ID, err)
		return mapWriteError(err, "link job cities")
	}

	log.Printf("Job created successfully with ID: %s", job.ID)
	return nil
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id).Scan(jobTargets(&job)...)
	if err != nil {
		return nil, mapReadError(err, "get job by id")
	}
	return &job, nil
}

// GetBySlug retrieves a posting and its company, area and cities. When two
// companies share a slug the most recently published posting wins.
func (r *JobRepo) GetBySlug(ctx context.Context, slug string) (*models.JobDetail, error) {
	query := `SELECT ` + jobSummaryColumns + `, co.description, co.website` + jobSummaryFrom + `
		WHERE j.slug = $1
		ORDER BY (j.status = 'ACTIVE') DESC, j.published_at DESC NULLS LAST
		LIMIT 1`

	var detail models.JobDetail
	targets := append(summaryTargets(&detail.JobSummary), &detail.CompanyDescription, &detail.CompanyWebsite)
	if err := r.db.QueryRow(ctx, query, slug).Scan(targets...); err != nil {
		return nil, mapReadError(err, "get job by slug")
	}

	cities, err := r.loadCities(ctx, []uuid.UUID{detail.ID})
	if err != nil {
		return nil, err
	}
	detail.Cities = cities[detail.ID]
	if detail.Cities == nil {
		detail.Cities = []models.City{}
	}
	return &detail, nil
}

// SlugExists reports whether the company already uses slug.
func (r *JobRepo) SlugExists(ctx context.Context, companyID uuid.UUID, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE company_id = $1 AND slug = $2)`, companyID, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check job slug: %w", err)
	}
	return exists, nil
}

// CountActiveByCompany counts the ACTIVE postings that consume plan quota.
func (r *JobRepo) CountActiveByCompany(ctx context.Context, companyID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE company_id = $1 AND status = $2`, companyID, models.JobStatusActive).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count active jobs: %w", err)
	}
	return n, nil
}

// Search runs the public catalog query over ACTIVE postings.
func (r *JobRepo) Search(ctx context.Context, f storage.JobFilter) ([]models.JobSummary, int, error) {
	b := &queryBuilder{}
	b.where("j.status = " + b.arg(models.JobStatusActive))

	if q := strings.TrimSpace(f.Query); q != "" {
		p := b.arg(likePattern(q))
		b.where(fmt.Sprintf("(j.title ILIKE %[1]s OR j.description ILIKE %[1]s OR co.trade_name ILIKE %[1]s)", p))
	}
	if f.CitySlug != "" {
		b.where(`EXISTS (SELECT 1 FROM job_cities jc JOIN cities ci ON ci.id = jc.city_id
			WHERE jc.job_id = j.id AND ci.slug = ` + b.arg(f.CitySlug) + `)`)
	}
	if f.AreaSlug != "" {
		b.where("a.slug = " + b.arg(f.AreaSlug))
	}
	if f.Level != "" {
		b.where("j.level = " + b.arg(f.Level))
	}
	if f.Modality != "" {
		b.where("j.modality = " + b.arg(f.Modality))
	}
	if f.ContractType != "" {
		b.where("j.contract_type = " + b.arg(f.ContractType))
	}
	if f.SalaryMin != nil {
		b.where("j.salary_min >= " + b.arg(*f.SalaryMin))
	}
	if f.SalaryMax != nil {
		b.where("j.salary_max <= " + b.arg(*f.SalaryMax))
	}

	where := b.whereClause()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+jobSummaryFrom+where, b.args...).Scan(&total); err != nil {
		log.Printf("Error counting jobs: %v", err)
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := b.page(`SELECT `+jobSummaryColumns+jobSummaryFrom+where+` ORDER BY `+jobOrderClause(f.OrderBy), f.Limit, f.Offset)
	jobs, err := r.querySummaries(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// jobOrderClause keeps featured and highlighted postings first whatever the requested key.
func jobOrderClause(order storage.JobOrder) string {
	key := "j.published_at DESC NULLS LAST"
	switch order {
	case storage.JobOrderSalary:
		key = "j.salary_max DESC NULLS LAST"
	case storage.JobOrderApplications:
		key = "application_count DESC"
	}
	return "j.is_featured DESC, j.is_highlighted DESC, " + key + ", j.id"
}

// ListByCompany lists every posting of a company, newest first.
func (r *JobRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.JobSummary, error) {
	query := `SELECT ` + jobSummaryColumns + jobSummaryFrom + ` WHERE j.company_id = $1 ORDER BY j.created_at DESC, j.id`
	return r.querySummaries(ctx, query, companyID)
}

func (r *JobRepo) querySummaries(ctx context.Context, query string, args ...any) ([]models.JobSummary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying jobs: %v", err)
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.JobSummary{}
	ids := []uuid.UUID{}
	for rows.Next() {
		var s models.JobSummary
		if err := rows.Scan(summaryTargets(&s)...); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	if len(jobs) == 0 {
		return jobs, nil
	}

	cities, err := r.loadCities(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].Cities = cities[jobs[i].ID]
		if jobs[i].Cities == nil {
			jobs[i].Cities = []models.City{}
		}
	}
	return jobs, nil
}

// loadCities fetches the cities of several jobs in one round trip.
func (r *JobRepo) loadCities(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]models.City, error) {
	rows, err := r.db.Query(ctx, `
		SELECT jc.job_id, c.id, c.name, c.slug
		FROM job_cities jc
		JOIN cities c ON c.id = jc.city_id
		WHERE jc.job_id = ANY($1)
		ORDER BY c.name`, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query job cities: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]models.City, len(jobIDs))
	for rows.Next() {
		var jobID uuid.UUID
		var c models.City
		if err := rows.Scan(&jobID, &c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan job city: %w", err)
		}
		out[jobID] = append(out[jobID], c)
	}
	return out, rows.Err()
}

// IncrementViews bumps the view counter. Repeated views all count.
func (r *JobRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE jobs SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views for job %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateStatus changes the posting status. publishedAt, when set, replaces the publish date.
func (r *JobRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus, publishedAt *time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE jobs SET status = $2, published_at = COALESCE($3, published_at), updated_at = NOW()
		WHERE id = $1`, id, status, publishedAt)
	if err != nil {
		return fmt.Errorf("failed to update status of job %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
