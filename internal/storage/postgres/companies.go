package postgres

import (
	"context"
	"fmt"
	"log"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `id, user_id, legal_name, trade_name, cnpj, phone, whatsapp, website, description,
	logo_url, segment_id, is_verified, created_at, updated_at`

// CompanyRepo implements the storage.CompanyRepository interface using PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepo creates a new CompanyRepo.
func NewCompanyRepo(db *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// WithTx creates a new CompanyRepo bound to the transaction.
func (r *CompanyRepo) WithTx(tx pgx.Tx) storage.CompanyRepository {
	return &CompanyRepo{db: tx}
}

var _ storage.CompanyRepository = (*CompanyRepo)(nil)

// Create inserts the company profile. New companies always start unverified.
func (r *CompanyRepo) Create(ctx context.Context, c *models.Company) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.IsVerified = false

	query := `
		INSERT INTO companies (id, user_id, legal_name, trade_name, cnpj, phone, whatsapp, website, description, logo_url, segment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		c.ID, c.UserID, c.LegalName, c.TradeName, c.CNPJ, c.Phone, c.Whatsapp, c.Website,
		c.Description, c.LogoURL, c.SegmentID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		log.Printf("Error creating company %s: %v", c.CNPJ, err)
		return mapWriteError(err, "create company")
	}
	return nil
}

// AddCities links the company to the cities it operates in.
func (r *CompanyRepo) AddCities(ctx context.Context, companyID uuid.UUID, cityIDs []uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO company_cities (company_id, city_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`, companyID, cityIDs)
	if err != nil {
		return mapWriteError(err, "link company cities")
	}
	return nil
}

// GetByID retrieves a company by ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByUserID retrieves the company owned by a user.
func (r *CompanyRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE user_id = $1`, userID)
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, arg uuid.UUID) (*models.Company, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query company: %w", err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Company])
	if err != nil {
		return nil, mapReadError(err, "get company")
	}
	return c, nil
}

// ExistsByCNPJ reports whether a digits-only CNPJ is already registered.
func (r *CompanyRepo) ExistsByCNPJ(ctx context.Context, cnpj string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE cnpj = $1)`, cnpj).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check cnpj: %w", err)
	}
	return exists, nil
}

// Update writes the editable profile fields. Legal name and CNPJ are fixed.
func (r *CompanyRepo) Update(ctx context.Context, c *models.Company) error {
	query := `
		UPDATE companies SET
			trade_name = $2, phone = $3, whatsapp = $4, website = $5, description = $6,
			logo_url = $7, segment_id = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		c.ID, c.TradeName, c.Phone, c.Whatsapp, c.Website, c.Description, c.LogoURL, c.SegmentID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if code, _ := pgError(err); code != "" {
			return mapWriteError(err, "update company")
		}
		return mapReadError(err, "update company")
	}
	return nil
}

// SetVerified flips the verification flag.
func (r *CompanyRepo) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE companies SET is_verified = $2, updated_at = NOW() WHERE id = $1`, id, verified)
	if err != nil {
		return fmt.Errorf("failed to verify company %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// List pages through companies, oldest first so the moderation queue is FIFO.
func (r *CompanyRepo) List(ctx context.Context, f storage.CompanyFilter) ([]models.Company, int, error) {
	b := &queryBuilder{}
	if f.Verified != nil {
		b.where("is_verified = " + b.arg(*f.Verified))
	}
	where := b.whereClause()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`+where, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	query := b.page(`SELECT `+companyColumns+` FROM companies`+where+` ORDER BY created_at ASC, id`, f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	companies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Company])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan companies: %w", err)
	}
	if companies == nil {
		companies = []models.Company{}
	}
	return companies, total, nil
}
