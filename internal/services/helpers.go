package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"
	"vagas-rmc/internal/transport/dto"
	"vagas-rmc/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultPageSize          = 20
	defaultCandidatePageSize = 10
	maxPageSize              = 50
)

// mapRepoError maps storage errors to service errors
func mapRepoError(err error, operation string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	case errors.Is(err, storage.ErrDuplicateEmail):
		return ErrDuplicateEmail
	case errors.Is(err, storage.ErrDuplicateDocument):
		return ErrDuplicateDocument
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %s", ErrConflict, operation)
	}
	// Log other unexpected errors
	log.Printf("Unexpected repository error during %s: %v", operation, err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// pageWindow normalises a page query. Limits above maxPageSize are clamped,
// and page is capped so the offset never overflows.
func pageWindow(q dto.PageQuery, defaultLimit int) (page, limit, offset int) {
	page = q.Page
	if page < 1 {
		page = 1
	}
	limit = q.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return page, limit, (page - 1) * limit
}

// activeCandidate loads the candidate profile of userID. Anonymized profiles
// are reported as missing so tokens issued before deletion stop working.
func activeCandidate(ctx context.Context, candidateRepo storage.CandidateRepository, userID uuid.UUID) (*models.Candidate, error) {
	candidate, err := candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "candidate profile")
	}
	if candidate.IsAnonymized {
		return nil, fmt.Errorf("%w: candidate profile", ErrNotFound)
	}
	return candidate, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// newAuditEntry builds an audit row. Empty entityID and ip are stored as NULL.
func newAuditEntry(userID *uuid.UUID, action models.AuditAction, entity, entityID, ip string, details map[string]interface{}) *models.AuditLog {
	entry := &models.AuditLog{
		UserID:  userID,
		Action:  action,
		Entity:  entity,
		Details: details,
	}
	if entityID != "" {
		entry.EntityID = &entityID
	}
	if ip != "" {
		entry.IPAddress = &ip
	}
	return entry
}

// appendAudit writes an entry through repo, which is usually bound to the
// caller's transaction so the entry commits with the change it records.
func appendAudit(ctx context.Context, repo storage.AuditRepository, entry *models.AuditLog) error {
	if err := repo.Append(ctx, entry); err != nil {
		return mapRepoError(err, "writing audit log")
	}
	return nil
}

func validateSalaryRange(min, max *float64) error {
	if min != nil && max != nil && *min > *max {
		return fieldError("salaryMax", "must be greater than or equal to salaryMin")
	}
	return nil
}

func optionalDigits(s string) *string {
	d := validation.OnlyDigits(s)
	if d == "" {
		return nil
	}
	return &d
}

func ptrUUID(id uuid.UUID) *uuid.UUID { return &id }
