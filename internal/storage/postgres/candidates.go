package postgres

import (
	"context"
	"fmt"
	"log"
	"strings"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const candidateColumns = `c.id, c.user_id, c.full_name, c.cpf, c.phone, c.residence_city_id, c.desired_position,
	c.level, c.area_id, c.experience_years, c.education, c.salary_min, c.salary_max, c.resume_url,
	c.resume_text, c.skills, c.is_public_profile, c.receive_alerts, c.is_anonymized, c.created_at, c.updated_at`

// CandidateRepo implements the storage.CandidateRepository interface using PostgreSQL.
type CandidateRepo struct {
	db Querier
}

// NewCandidateRepo creates a new CandidateRepo.
func NewCandidateRepo(db *pgxpool.Pool) *CandidateRepo {
	return &CandidateRepo{db: db}
}

// WithTx creates a new CandidateRepo bound to the transaction.
func (r *CandidateRepo) WithTx(tx pgx.Tx) storage.CandidateRepository {
	return &CandidateRepo{db: tx}
}

var _ storage.CandidateRepository = (*CandidateRepo)(nil)

// Create inserts the candidate profile.
func (r *CandidateRepo) Create(ctx context.Context, c *models.Candidate) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}

	query := `
		INSERT INTO candidates (id, user_id, full_name, cpf, phone, residence_city_id, desired_position, level,
			area_id, experience_years, education, salary_min, salary_max, resume_url, skills,
			is_public_profile, receive_alerts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		c.ID, c.UserID, c.FullName, c.CPF, c.Phone, c.ResidenceCityID, c.DesiredPosition, c.Level,
		c.AreaID, c.ExperienceYears, c.Education, c.SalaryMin, c.SalaryMax, c.ResumeURL, c.Skills,
		c.IsPublicProfile, c.ReceiveAlerts,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		log.Printf("Error creating candidate for user %s: %v", c.UserID, err)
		return mapWriteError(err, "create candidate")
	}
	return nil
}

// GetByUserID retrieves the candidate profile owned by a user.
func (r *CandidateRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Candidate, error) {
	rows, err := r.db.Query(ctx, `SELECT `+candidateColumns+` FROM candidates c WHERE c.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate: %w", err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Candidate])
	if err != nil {
		return nil, mapReadError(err, "get candidate by user")
	}
	return c, nil
}

// ExistsByCPF reports whether a digits-only CPF is already registered.
func (r *CandidateRepo) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM candidates WHERE cpf = $1)`, cpf).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check cpf: %w", err)
	}
	return exists, nil
}

// Update writes every editable profile field.
func (r *CandidateRepo) Update(ctx context.Context, c *models.Candidate) error {
	query := `
		UPDATE candidates SET
			full_name = $2, phone = $3, residence_city_id = $4, desired_position = $5, level = $6,
			area_id = $7, experience_years = $8, education = $9, salary_min = $10, salary_max = $11,
			resume_url = $12, skills = $13, is_public_profile = $14, receive_alerts = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		c.ID, c.FullName, c.Phone, c.ResidenceCityID, c.DesiredPosition, c.Level,
		c.AreaID, c.ExperienceYears, c.Education, c.SalaryMin, c.SalaryMax,
		c.ResumeURL, c.Skills, c.IsPublicProfile, c.ReceiveAlerts,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if code, _ := pgError(err); code != "" {
			return mapWriteError(err, "update candidate")
		}
		return mapReadError(err, "update candidate")
	}
	return nil
}

// Anonymize scrubs the personal data of the profile.
func (r *CandidateRepo) Anonymize(ctx context.Context, id uuid.UUID, placeholderName, placeholderPhone string) error {
	query := `
		UPDATE candidates SET
			full_name = $2,
			cpf = NULL,
			phone = $3,
			desired_position = NULL,
			salary_min = NULL,
			salary_max = NULL,
			resume_url = NULL,
			resume_text = NULL,
			skills = '{}',
			is_public_profile = FALSE,
			receive_alerts = FALSE,
			is_anonymized = TRUE,
			updated_at = NOW()
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, placeholderName, placeholderPhone)
	if err != nil {
		return fmt.Errorf("failed to anonymize candidate %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SearchPublic lists visible, non-anonymized profiles for résumé search.
func (r *CandidateRepo) SearchPublic(ctx context.Context, f storage.CandidateSearchFilter) ([]models.Candidate, int, error) {
	b := &queryBuilder{}
	b.where("c.is_public_profile = TRUE")
	b.where("c.is_anonymized = FALSE")

	if q := strings.TrimSpace(f.Query); q != "" {
		p := b.arg(likePattern(q))
		b.where(fmt.Sprintf("(c.desired_position ILIKE %[1]s OR array_to_string(c.skills, ' ') ILIKE %[1]s OR c.resume_text ILIKE %[1]s)", p))
	}
	if f.CitySlug != "" {
		b.where("ci.slug = " + b.arg(f.CitySlug))
	}
	if f.AreaSlug != "" {
		b.where("a.slug = " + b.arg(f.AreaSlug))
	}
	if f.Level != "" {
		b.where("c.level = " + b.arg(f.Level))
	}

	from := `
		FROM candidates c
		LEFT JOIN cities ci ON ci.id = c.residence_city_id
		LEFT JOIN job_areas a ON a.id = c.area_id` + b.whereClause()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) `+from, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count candidates: %w", err)
	}

	query := b.page(`SELECT `+candidateColumns+from+` ORDER BY c.updated_at DESC, c.id`, f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search candidates: %w", err)
	}
	candidates, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Candidate])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan candidates: %w", err)
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	return candidates, total, nil
}
