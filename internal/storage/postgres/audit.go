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

// AuditRepo implements the storage.AuditRepository interface using PostgreSQL.
// It has no update or delete path and a trigger rejects both at the database.
type AuditRepo struct {
	db Querier
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(db *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{db: db}
}

// WithTx creates a new AuditRepo bound to the transaction.
func (r *AuditRepo) WithTx(tx pgx.Tx) storage.AuditRepository {
	return &AuditRepo{db: tx}
}

var _ storage.AuditRepository = (*AuditRepo)(nil)

// Append writes one audit entry.
func (r *AuditRepo) Append(ctx context.Context, e *models.AuditLog) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO audit_logs (id, user_id, action, entity, entity_id, details, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		e.ID, e.UserID, e.Action, e.Entity, e.EntityID, e.Details, e.IPAddress,
	).Scan(&e.CreatedAt)
	if err != nil {
		log.Printf("Error appending audit entry %s: %v", e.Action, err)
		return mapWriteError(err, "append audit entry")
	}
	return nil
}

// List pages through the log, newest first.
func (r *AuditRepo) List(ctx context.Context, f storage.AuditFilter) ([]models.AuditLog, int, error) {
	b := &queryBuilder{}
	if f.UserID != nil {
		b.where("user_id = " + b.arg(*f.UserID))
	}
	if f.Action != nil {
		b.where("action = " + b.arg(*f.Action))
	}
	where := b.whereClause()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`+where, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	query := b.page(`SELECT id, user_id, action, entity, entity_id, details, ip_address, created_at FROM audit_logs`+
		where+` ORDER BY created_at DESC, id`, f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuditLog])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan audit entries: %w", err)
	}
	if entries == nil {
		entries = []models.AuditLog{}
	}
	return entries, total, nil
}
