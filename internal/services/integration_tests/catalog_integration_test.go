//go:build integration

package integration_tests

import (
	"context"
	"math"
	"testing"
	"time"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"
	"vagas-rmc/internal/storage/postgres"
	"vagas-rmc/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogJob struct {
	title       string
	slug        string
	cityID      uuid.UUID
	areaID      uuid.UUID
	salaryMin   float64
	salaryMax   float64
	featured    bool
	highlighted bool
	status      models.JobStatus
	publishedAt time.Time
}

// insertCatalogJob writes a posting straight through the repository so plan
// limits and feature flags can be set freely.
func insertCatalogJob(t *testing.T, ctx context.Context, pool *pgxpool.Pool, companyID uuid.UUID, j catalogJob) *models.Job {
	t.Helper()
	status := j.status
	if status == "" {
		status = models.JobStatusActive
	}
	job := &models.Job{
		CompanyID:       companyID,
		Title:           j.title,
		Slug:            j.slug,
		Description:     "Atuar no time de produto da regiao de Campinas.",
		AreaID:          j.areaID,
		Level:           models.JobLevelMid,
		Modality:        models.ModalityOnsite,
		ContractType:    models.ContractCLT,
		SalaryMin:       &j.salaryMin,
		SalaryMax:       &j.salaryMax,
		ApplyByPlatform: true,
		Status:          status,
		IsFeatured:      j.featured,
		IsHighlighted:   j.highlighted,
		PublishedAt:     &j.publishedAt,
	}
	require.NoError(t, postgres.NewJobRepo(pool).Create(ctx, job, []uuid.UUID{j.cityID}))
	return job
}

func jobIDs(jobs []models.JobSummary) []uuid.UUID {
	ids := make([]uuid.UUID, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	return ids
}

func TestIntegration_CatalogSearch(t *testing.T) {
	ctx, svc, pool := setupServices(t)
	defer cleanupTables(ctx, t, pool, "users", "audit_logs")

	refs := postgres.NewReferenceRepo(pool)
	cities, err := refs.ListCities(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(cities), 2)
	areas, err := refs.ListAreas(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(areas), 2)
	cityA, cityB := cities[0], cities[1]
	areaA, areaB := areas[0], areas[1]

	companyUser := registerCompany(t, ctx, svc, cityA, "catalogo@acme.com", "11.222.333/0001-81")
	company, err := postgres.NewCompanyRepo(pool).GetByUserID(ctx, companyUser.ID)
	require.NoError(t, err)

	now := time.Now().UTC()
	plain := insertCatalogJob(t, ctx, pool, company.ID, catalogJob{
		title: "Analista 100% presencial", slug: "analista-presencial", cityID: cityA.ID, areaID: areaA.ID,
		salaryMin: 2000, salaryMax: 3000, publishedAt: now.Add(-3 * time.Hour),
	})
	featured := insertCatalogJob(t, ctx, pool, company.ID, catalogJob{
		title: "Operador de empilhadeira", slug: "operador-empilhadeira", cityID: cityB.ID, areaID: areaA.ID,
		salaryMin: 1500, salaryMax: 2000, featured: true, publishedAt: now.Add(-48 * time.Hour),
	})
	highlighted := insertCatalogJob(t, ctx, pool, company.ID, catalogJob{
		title: "Engenheiro de dados", slug: "engenheiro-dados", cityID: cityA.ID, areaID: areaB.ID,
		salaryMin: 5000, salaryMax: 8000, highlighted: true, publishedAt: now.Add(-24 * time.Hour),
	})
	newest := insertCatalogJob(t, ctx, pool, company.ID, catalogJob{
		title: "Assistente administrativo", slug: "assistente-administrativo", cityID: cityA.ID, areaID: areaA.ID,
		salaryMin: 3000, salaryMax: 4000, publishedAt: now.Add(-1 * time.Hour),
	})
	insertCatalogJob(t, ctx, pool, company.ID, catalogJob{
		title: "Vaga encerrada", slug: "vaga-encerrada", cityID: cityB.ID, areaID: areaA.ID,
		salaryMin: 1000, salaryMax: 9000, featured: true, status: models.JobStatusClosed, publishedAt: now,
	})

	candidateUser := registerCandidate(t, ctx, svc, cityA, "catalogo@gmail.com", "529.982.247-25")
	candidate, err := postgres.NewCandidateRepo(pool).GetByUserID(ctx, candidateUser.ID)
	require.NoError(t, err)
	require.NoError(t, postgres.NewApplicationRepo(pool).Create(ctx, &models.Application{JobID: plain.ID, CandidateID: candidate.ID}))

	repo := postgres.NewJobRepo(pool)

	t.Run("Ordering keeps featured then highlighted first", func(t *testing.T) {
		tests := []struct {
			name  string
			order storage.JobOrder
			want  []uuid.UUID
		}{
			{"Recent", storage.JobOrderRecent, []uuid.UUID{featured.ID, highlighted.ID, newest.ID, plain.ID}},
			{"Salary", storage.JobOrderSalary, []uuid.UUID{featured.ID, highlighted.ID, newest.ID, plain.ID}},
			{"Applications", storage.JobOrderApplications, []uuid.UUID{featured.ID, highlighted.ID, plain.ID, newest.ID}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				jobs, total, err := repo.Search(ctx, storage.JobFilter{OrderBy: tt.order, Limit: 20})
				require.NoError(t, err)
				assert.Equal(t, 4, total, "closed postings are not listed")
				assert.Equal(t, tt.want, jobIDs(jobs))
			})
		}
	})

	t.Run("Application count is reported", func(t *testing.T) {
		jobs, _, err := repo.Search(ctx, storage.JobFilter{Query: "presencial", Limit: 20})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, 1, jobs[0].ApplicationCount)
	})

	t.Run("Filters", func(t *testing.T) {
		minSalary, maxSalary := 2500.0, 3000.0
		tests := []struct {
			name   string
			filter storage.JobFilter
			want   []uuid.UUID
		}{
			{"City through job_cities", storage.JobFilter{CitySlug: cityB.Slug}, []uuid.UUID{featured.ID}},
			{"Other city", storage.JobFilter{CitySlug: cityA.Slug}, []uuid.UUID{highlighted.ID, newest.ID, plain.ID}},
			{"Area slug", storage.JobFilter{AreaSlug: areaB.Slug}, []uuid.UUID{highlighted.ID}},
			{"Minimum salary", storage.JobFilter{SalaryMin: &minSalary}, []uuid.UUID{highlighted.ID, newest.ID}},
			{"Maximum salary", storage.JobFilter{SalaryMax: &maxSalary}, []uuid.UUID{featured.ID, plain.ID}},
			{"Percent is matched literally", storage.JobFilter{Query: "100%"}, []uuid.UUID{plain.ID}},
			{"Underscore is not a wildcard", storage.JobFilter{Query: "_"}, []uuid.UUID{}},
			{"Unknown city", storage.JobFilter{CitySlug: "atlantida"}, []uuid.UUID{}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tt.filter.OrderBy = storage.JobOrderRecent
				tt.filter.Limit = 20
				jobs, total, err := repo.Search(ctx, tt.filter)
				require.NoError(t, err)
				assert.Equal(t, len(tt.want), total)
				assert.Equal(t, tt.want, jobIDs(jobs))
			})
		}
	})

	t.Run("Past-the-end page is empty", func(t *testing.T) {
		for _, page := range []int{99, math.MaxInt} {
			jobs, p, err := svc.jobs.ListJobs(ctx, &dto.ListJobsRequest{PageQuery: dto.PageQuery{Page: page, Limit: 2}})
			require.NoError(t, err, "page %d", page)
			assert.NotNil(t, jobs)
			assert.Empty(t, jobs)
			assert.Equal(t, 4, p.Total)
			assert.Equal(t, 2, p.TotalPages)
		}
	})
}
