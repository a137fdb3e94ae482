package services

import (
	"errors"
	"math"
	"testing"

	"vagas-rmc/internal/storage"
	"vagas-rmc/internal/transport/dto"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name                        string
		query                       dto.PageQuery
		defaultLimit                int
		wantPage, wantLimit, wantOf int
	}{
		{"Zero values use defaults", dto.PageQuery{}, defaultPageSize, 1, 20, 0},
		{"Candidate default", dto.PageQuery{Page: 2}, defaultCandidatePageSize, 2, 10, 10},
		{"Explicit window", dto.PageQuery{Page: 3, Limit: 5}, defaultPageSize, 3, 5, 10},
		{"Oversized limit is clamped", dto.PageQuery{Page: 1, Limit: 500}, defaultPageSize, 1, maxPageSize, 0},
		{"Negative page", dto.PageQuery{Page: -4, Limit: 10}, defaultPageSize, 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit, offset := pageWindow(tt.query, tt.defaultLimit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOf, offset)
		})
	}

	t.Run("Huge page keeps a non-negative offset", func(t *testing.T) {
		for _, limit := range []int{0, 1, 7, 20, maxPageSize} {
			page, gotLimit, offset := pageWindow(dto.PageQuery{Page: math.MaxInt, Limit: limit}, defaultPageSize)
			assert.GreaterOrEqual(t, offset, 0, "limit %d", limit)
			assert.Greater(t, page, 1)
			assert.Equal(t, (page-1)*gotLimit, offset)
		}
	})
}

func TestMapRepoError(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{"Not found", storage.ErrNotFound, ErrNotFound},
		{"Duplicate email", storage.ErrDuplicateEmail, ErrDuplicateEmail},
		{"Duplicate document", storage.ErrDuplicateDocument, ErrDuplicateDocument},
		{"Conflict", storage.ErrConflict, ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapRepoError(tt.repoErr, "testing"), tt.want)
		})
	}

	t.Run("Unexpected error keeps its cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := mapRepoError(cause, "testing")
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrConflict)
	})

	t.Run("Duplicate email is still a conflict", func(t *testing.T) {
		assert.ErrorIs(t, mapRepoError(storage.ErrDuplicateEmail, "testing"), ErrConflict)
	})
}

func TestCleanSkills(t *testing.T) {
	got := cleanSkills([]string{" Go ", "go", "", "SQL", "  ", "Docker", "sql"})
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, got)
	assert.Empty(t, cleanSkills(nil))
}

func TestValidateSalaryRange(t *testing.T) {
	low, high := 2000.0, 3500.0

	assert.NoError(t, validateSalaryRange(&low, &high))
	assert.NoError(t, validateSalaryRange(nil, &high))
	assert.NoError(t, validateSalaryRange(&low, nil))

	err := validateSalaryRange(&high, &low)
	assert.ErrorIs(t, err, ErrValidation)
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "salaryMax", fieldErr.Field)
}

func TestNewAuditEntry(t *testing.T) {
	entry := newAuditEntry(nil, "LOGIN", "user", "", "", nil)
	assert.Nil(t, entry.EntityID)
	assert.Nil(t, entry.IPAddress)

	entry = newAuditEntry(nil, "LOGIN", "user", "abc", "10.0.0.1", nil)
	if assert.NotNil(t, entry.EntityID) {
		assert.Equal(t, "abc", *entry.EntityID)
	}
	if assert.NotNil(t, entry.IPAddress) {
		assert.Equal(t, "10.0.0.1", *entry.IPAddress)
	}
}
