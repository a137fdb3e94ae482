package postgres

import (
	"testing"

	"vagas-rmc/internal/storage"

	"github.com/stretchr/testify/assert"
)

func TestJobOrderClause(t *testing.T) {
	tests := []struct {
		name  string
		order storage.JobOrder
		want  string
	}{
		{"Recent", storage.JobOrderRecent, "j.is_featured DESC, j.is_highlighted DESC, j.published_at DESC NULLS LAST, j.id"},
		{"Salary", storage.JobOrderSalary, "j.is_featured DESC, j.is_highlighted DESC, j.salary_max DESC NULLS LAST, j.id"},
		{"Applications", storage.JobOrderApplications, "j.is_featured DESC, j.is_highlighted DESC, application_count DESC, j.id"},
		{"Empty falls back to recent", "", "j.is_featured DESC, j.is_highlighted DESC, j.published_at DESC NULLS LAST, j.id"},
		{"Unknown falls back to recent", storage.JobOrder("title; DROP TABLE jobs"), "j.is_featured DESC, j.is_highlighted DESC, j.published_at DESC NULLS LAST, j.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, jobOrderClause(tt.order))
		})
	}
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain text", "golang", "%golang%"},
		{"Percent is literal", "100%", `%100\%%`},
		{"Underscore is literal", "dev_ops", `%dev\_ops%`},
		{"Backslash is escaped first", `c:\temp_%`, `%c:\\temp\_\%%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.input))
		})
	}
}

func TestQueryBuilder(t *testing.T) {
	b := &queryBuilder{}
	assert.Empty(t, b.whereClause())

	b.where("j.status = " + b.arg("ACTIVE"))
	b.where("a.slug = " + b.arg("tecnologia"))
	assert.Equal(t, " WHERE j.status = $1 AND a.slug = $2", b.whereClause())

	query := b.page("SELECT 1", 20, 40)
	assert.Equal(t, "SELECT 1 LIMIT $3 OFFSET $4", query)
	assert.Equal(t, []any{"ACTIVE", "tecnologia", 20, 40}, b.args)
}
