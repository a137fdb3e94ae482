// Package mocks holds testify mocks of the storage interfaces. WithTx returns
// the receiver, so expectations set on a mock also cover its transactional use.
package mocks

import (
	"context"
	"time"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Transactions ---

// Tx is a pgx.Tx that only records Commit and Rollback. Any other method panics.
type Tx struct {
	pgx.Tx
	Committed  bool
	RolledBack bool
}

func (t *Tx) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *Tx) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// TxBeginner hands out a single Tx.
type TxBeginner struct {
	Tx  *Tx
	Err error
}

func NewTxBeginner() *TxBeginner {
	return &TxBeginner{Tx: &Tx{}}
}

func (b *TxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if b.Err != nil {
		return nil, b.Err
	}
	return b.Tx, nil
}

// --- Users ---

type UserRepository struct{ mock.Mock }

var _ storage.UserRepository = (*UserRepository)(nil)

func (m *UserRepository) WithTx(tx pgx.Tx) storage.UserRepository { return m }

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *UserRepository) Anonymize(ctx context.Context, id uuid.UUID, placeholderEmail, sentinelHash string, at time.Time) error {
	args := m.Called(ctx, id, placeholderEmail, sentinelHash, at)
	return args.Error(0)
}

// --- Candidates ---

type CandidateRepository struct{ mock.Mock }

var _ storage.CandidateRepository = (*CandidateRepository)(nil)

func (m *CandidateRepository) WithTx(tx pgx.Tx) storage.CandidateRepository { return m }

func (m *CandidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	args := m.Called(ctx, candidate)
	return args.Error(0)
}

func (m *CandidateRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Candidate, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*models.Candidate)
	return c, args.Error(1)
}

func (m *CandidateRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	args := m.Called(ctx, cpf)
	return args.Bool(0), args.Error(1)
}

func (m *CandidateRepository) Update(ctx context.Context, candidate *models.Candidate) error {
	args := m.Called(ctx, candidate)
	return args.Error(0)
}

func (m *CandidateRepository) Anonymize(ctx context.Context, id uuid.UUID, placeholderName, placeholderPhone string) error {
	args := m.Called(ctx, id, placeholderName, placeholderPhone)
	return args.Error(0)
}

func (m *CandidateRepository) SearchPublic(ctx context.Context, filter storage.CandidateSearchFilter) ([]models.Candidate, int, error) {
	args := m.Called(ctx, filter)
	c, _ := args.Get(0).([]models.Candidate)
	return c, args.Int(1), args.Error(2)
}

// --- Companies ---

type CompanyRepository struct{ mock.Mock }

var _ storage.CompanyRepository = (*CompanyRepository)(nil)

func (m *CompanyRepository) WithTx(tx pgx.Tx) storage.CompanyRepository { return m }

func (m *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *CompanyRepository) AddCities(ctx context.Context, companyID uuid.UUID, cityIDs []uuid.UUID) error {
	args := m.Called(ctx, companyID, cityIDs)
	return args.Error(0)
}

func (m *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Company)
	return c, args.Error(1)
}

func (m *CompanyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Company, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*models.Company)
	return c, args.Error(1)
}

func (m *CompanyRepository) ExistsByCNPJ(ctx context.Context, cnpj string) (bool, error) {
	args := m.Called(ctx, cnpj)
	return args.Bool(0), args.Error(1)
}

func (m *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *CompanyRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *CompanyRepository) List(ctx context.Context, filter storage.CompanyFilter) ([]models.Company, int, error) {
	args := m.Called(ctx, filter)
	c, _ := args.Get(0).([]models.Company)
	return c, args.Int(1), args.Error(2)
}

// --- Jobs ---

type JobRepository struct{ mock.Mock }

var _ storage.JobRepository = (*JobRepository)(nil)

func (m *JobRepository) WithTx(tx pgx.Tx) storage.JobRepository { return m }

func (m *JobRepository) Create(ctx context.Context, job *models.Job, cityIDs []uuid.UUID) error {
	args := m.Called(ctx, job, cityIDs)
	return args.Error(0)
}

func (m *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*models.Job)
	return j, args.Error(1)
}

func (m *JobRepository) GetBySlug(ctx context.Context, slug string) (*models.JobDetail, error) {
	args := m.Called(ctx, slug)
	j, _ := args.Get(0).(*models.JobDetail)
	return j, args.Error(1)
}

func (m *JobRepository) SlugExists(ctx context.Context, companyID uuid.UUID, slug string) (bool, error) {
	args := m.Called(ctx, companyID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *JobRepository) CountActiveByCompany(ctx context.Context, companyID uuid.UUID) (int, error) {
	args := m.Called(ctx, companyID)
	return args.Int(0), args.Error(1)
}

func (m *JobRepository) Search(ctx context.Context, filter storage.JobFilter) ([]models.JobSummary, int, error) {
	args := m.Called(ctx, filter)
	j, _ := args.Get(0).([]models.JobSummary)
	return j, args.Int(1), args.Error(2)
}

func (m *JobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.JobSummary, error) {
	args := m.Called(ctx, companyID)
	j, _ := args.Get(0).([]models.JobSummary)
	return j, args.Error(1)
}

func (m *JobRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *JobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus, publishedAt *time.Time) error {
	args := m.Called(ctx, id, status, publishedAt)
	return args.Error(0)
}

// --- Applications ---

type ApplicationRepository struct{ mock.Mock }

var _ storage.ApplicationRepository = (*ApplicationRepository)(nil)

func (m *ApplicationRepository) WithTx(tx pgx.Tx) storage.ApplicationRepository { return m }

func (m *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) Exists(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	args := m.Called(ctx, jobID, candidateID)
	return args.Bool(0), args.Error(1)
}

func (m *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Application)
	return a, args.Error(1)
}

func (m *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, feedback *string, viewedAt *time.Time) (*models.Application, error) {
	args := m.Called(ctx, id, status, feedback, viewedAt)
	a, _ := args.Get(0).(*models.Application)
	return a, args.Error(1)
}

func (m *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ApplicationRepository) ListForCompany(ctx context.Context, filter storage.ApplicationFilter) ([]models.CompanyApplication, int, error) {
	args := m.Called(ctx, filter)
	a, _ := args.Get(0).([]models.CompanyApplication)
	return a, args.Int(1), args.Error(2)
}

func (m *ApplicationRepository) ListForCandidate(ctx context.Context, candidateID uuid.UUID, status *models.ApplicationStatus, limit, offset int) ([]models.CandidateApplication, int, error) {
	args := m.Called(ctx, candidateID, status, limit, offset)
	a, _ := args.Get(0).([]models.CandidateApplication)
	return a, args.Int(1), args.Error(2)
}

// --- Favorites ---

type FavoriteRepository struct{ mock.Mock }

var _ storage.FavoriteRepository = (*FavoriteRepository)(nil)

func (m *FavoriteRepository) Exists(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	args := m.Called(ctx, candidateID, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteRepository) Add(ctx context.Context, candidateID, jobID uuid.UUID) error {
	args := m.Called(ctx, candidateID, jobID)
	return args.Error(0)
}

func (m *FavoriteRepository) Remove(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	args := m.Called(ctx, candidateID, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]models.FavoriteJob, int, error) {
	args := m.Called(ctx, candidateID, limit, offset)
	f, _ := args.Get(0).([]models.FavoriteJob)
	return f, args.Int(1), args.Error(2)
}

// --- Plans ---

type PlanRepository struct{ mock.Mock }

var _ storage.PlanRepository = (*PlanRepository)(nil)

func (m *PlanRepository) WithTx(tx pgx.Tx) storage.PlanRepository { return m }

func (m *PlanRepository) List(ctx context.Context) ([]models.Plan, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]models.Plan)
	return p, args.Error(1)
}

func (m *PlanRepository) GetByType(ctx context.Context, planType models.PlanType) (*models.Plan, error) {
	args := m.Called(ctx, planType)
	p, _ := args.Get(0).(*models.Plan)
	return p, args.Error(1)
}

func (m *PlanRepository) GetForCompany(ctx context.Context, companyID uuid.UUID) (*models.Plan, error) {
	args := m.Called(ctx, companyID)
	p, _ := args.Get(0).(*models.Plan)
	return p, args.Error(1)
}

func (m *PlanRepository) Subscribe(ctx context.Context, companyID, planID uuid.UUID) error {
	args := m.Called(ctx, companyID, planID)
	return args.Error(0)
}

// --- Audit ---

type AuditRepository struct{ mock.Mock }

var _ storage.AuditRepository = (*AuditRepository)(nil)

func (m *AuditRepository) WithTx(tx pgx.Tx) storage.AuditRepository { return m }

func (m *AuditRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditRepository) List(ctx context.Context, filter storage.AuditFilter) ([]models.AuditLog, int, error) {
	args := m.Called(ctx, filter)
	l, _ := args.Get(0).([]models.AuditLog)
	return l, args.Int(1), args.Error(2)
}

// ActionIs matches an audit entry by action.
func ActionIs(action models.AuditAction) interface{} {
	return mock.MatchedBy(func(e *models.AuditLog) bool { return e.Action == action })
}

// --- Reference data ---

type ReferenceRepository struct{ mock.Mock }

var _ storage.ReferenceRepository = (*ReferenceRepository)(nil)

func (m *ReferenceRepository) ListCities(ctx context.Context) ([]models.City, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]models.City)
	return c, args.Error(1)
}

func (m *ReferenceRepository) ListAreas(ctx context.Context) ([]models.JobArea, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).([]models.JobArea)
	return a, args.Error(1)
}

func (m *ReferenceRepository) ListSegments(ctx context.Context) ([]models.Segment, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]models.Segment)
	return s, args.Error(1)
}

func (m *ReferenceRepository) CountCities(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *ReferenceRepository) AreaExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ReferenceRepository) SegmentExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- Stats ---

type StatsRepository struct{ mock.Mock }

var _ storage.StatsRepository = (*StatsRepository)(nil)

func (m *StatsRepository) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*models.AdminStats)
	return s, args.Error(1)
}

func (m *StatsRepository) CandidateStats(ctx context.Context, candidateID uuid.UUID) (*models.CandidateStats, error) {
	args := m.Called(ctx, candidateID)
	s, _ := args.Get(0).(*models.CandidateStats)
	return s, args.Error(1)
}

func (m *StatsRepository) CompanyStats(ctx context.Context, companyID uuid.UUID) (*models.CompanyStats, error) {
	args := m.Called(ctx, companyID)
	s, _ := args.Get(0).(*models.CompanyStats)
	return s, args.Error(1)
}
