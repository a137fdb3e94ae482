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

const planColumns = `p.id, p.type, p.name, p.max_active_jobs, p.max_job_days, p.can_highlight, p.can_feature,
	p.can_search_resume, p.price_monthly, p.price_yearly`

// PlanRepo implements the storage.PlanRepository interface using PostgreSQL.
type PlanRepo struct {
	db Querier
}

// NewPlanRepo creates a new PlanRepo.
func NewPlanRepo(db *pgxpool.Pool) *PlanRepo {
	return &PlanRepo{db: db}
}

// WithTx creates a new PlanRepo bound to the transaction.
func (r *PlanRepo) WithTx(tx pgx.Tx) storage.PlanRepository {
	return &PlanRepo{db: tx}
}

var _ storage.PlanRepository = (*PlanRepo)(nil)

// List returns the catalog, cheapest first.
func (r *PlanRepo) List(ctx context.Context) ([]models.Plan, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planColumns+` FROM plans p ORDER BY p.price_monthly, p.max_active_jobs`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	plans, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Plan])
	if err != nil {
		return nil, fmt.Errorf("failed to scan plans: %w", err)
	}
	if plans == nil {
		plans = []models.Plan{}
	}
	return plans, nil
}

// GetByType retrieves a plan by its tier.
func (r *PlanRepo) GetByType(ctx context.Context, planType models.PlanType) (*models.Plan, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planColumns+` FROM plans p WHERE p.type = $1`, planType)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan %s: %w", planType, err)
	}
	plan, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Plan])
	if err != nil {
		return nil, mapReadError(err, "get plan")
	}
	return plan, nil
}

// GetForCompany returns the plan of the company's active subscription.
func (r *PlanRepo) GetForCompany(ctx context.Context, companyID uuid.UUID) (*models.Plan, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+planColumns+`
		FROM subscriptions s
		JOIN plans p ON p.id = s.plan_id
		WHERE s.company_id = $1
		  AND s.status = 'ACTIVE'
		  AND (s.expires_at IS NULL OR s.expires_at > NOW())`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscription: %w", err)
	}
	plan, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Plan])
	if err != nil {
		return nil, mapReadError(err, "get company plan")
	}
	return plan, nil
}

// Subscribe puts the company on planID, replacing any current subscription.
func (r *PlanRepo) Subscribe(ctx context.Context, companyID, planID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO subscriptions (id, company_id, plan_id, status, started_at)
		VALUES ($1, $2, $3, 'ACTIVE', NOW())
		ON CONFLICT (company_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			status = 'ACTIVE',
			started_at = NOW(),
			expires_at = NULL`, uuid.New(), companyID, planID)
	if err != nil {
		return mapWriteError(err, "subscribe company")
	}
	return nil
}
