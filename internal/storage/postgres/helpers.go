package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vagas-rmc/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so every
// repository can run either standalone or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// pgError extracts the postgres error code and constraint, if any.
func pgError(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// mapWriteError turns constraint violations into storage sentinels.
func mapWriteError(err error, operation string) error {
	code, constraint := pgError(err)
	switch code {
	case uniqueViolation:
		switch constraint {
		case "users_email_key":
			return fmt.Errorf("%s: %w", operation, storage.ErrDuplicateEmail)
		case "candidates_cpf_key", "companies_cnpj_key":
			return fmt.Errorf("%s: %w", operation, storage.ErrDuplicateDocument)
		}
		return fmt.Errorf("%s: %w (%s)", operation, storage.ErrConflict, constraint)
	case foreignKeyViolation:
		return fmt.Errorf("%s: invalid reference: %w (%s)", operation, storage.ErrConflict, constraint)
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// mapReadError turns pgx.ErrNoRows into storage.ErrNotFound.
func mapReadError(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// queryBuilder accumulates WHERE conditions with positional arguments.
type queryBuilder struct {
	conditions []string
	args       []any
}

// arg appends v and returns its placeholder.
func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) where(cond string) {
	b.conditions = append(b.conditions, cond)
}

func (b *queryBuilder) whereClause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conditions, " AND ")
}

// page appends LIMIT and OFFSET to query.
func (b *queryBuilder) page(query string, limit, offset int) string {
	var sb strings.Builder
	sb.WriteString(query)
	sb.WriteString(" LIMIT " + b.arg(limit))
	sb.WriteString(" OFFSET " + b.arg(offset))
	return sb.String()
}

// likePattern wraps s for a case-insensitive substring match, escaping the
// LIKE wildcards it contains.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
