package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"
	"vagas-rmc/internal/textutil"
	"vagas-rmc/internal/transport/dto"

	"github.com/google/uuid"
)

type jobService struct {
	db            storage.TxBeginner
	jobRepo       storage.JobRepository
	companyRepo   storage.CompanyRepository
	candidateRepo storage.CandidateRepository
	appRepo       storage.ApplicationRepository
	favoriteRepo  storage.FavoriteRepository
	planRepo      storage.PlanRepository
	auditRepo     storage.AuditRepository
	refRepo       storage.ReferenceRepository
	now           func() time.Time
}

// NewJobService creates a new instance of JobService.
func NewJobService(
	db storage.TxBeginner,
	jobRepo storage.JobRepository,
	companyRepo storage.CompanyRepository,
	candidateRepo storage.CandidateRepository,
	appRepo storage.ApplicationRepository,
	favoriteRepo storage.FavoriteRepository,
	planRepo storage.PlanRepository,
	auditRepo storage.AuditRepository,
	refRepo storage.ReferenceRepository,
) JobService {
	return &jobService{
		db:            db,
		jobRepo:       jobRepo,
		companyRepo:   companyRepo,
		candidateRepo: candidateRepo,
		appRepo:       appRepo,
		favoriteRepo:  favoriteRepo,
		planRepo:      planRepo,
		auditRepo:     auditRepo,
		refRepo:       refRepo,
		now:           time.Now,
	}
}

func (s *jobService) ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]models.JobSummary, models.Pagination, error) {
	page, limit, offset := pageWindow(req.PageQuery, defaultPageSize)
	filter := storage.JobFilter{
		Query:        strings.TrimSpace(req.Q),
		CitySlug:     req.City,
		AreaSlug:     req.Area,
		Level:        models.JobLevel(req.Level),
		Modality:     models.Modality(req.Modality),
		ContractType: models.ContractType(req.ContractType),
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		OrderBy:      storage.JobOrder(req.OrderBy),
		Limit:        limit,
		Offset:       offset,
	}
	if filter.OrderBy == "" {
		filter.OrderBy = storage.JobOrderRecent
	}

	jobs, total, err := s.jobRepo.Search(ctx, filter)
	if err != nil {
		log.Printf("JobService: Error listing jobs: %v", err)
		return nil, models.Pagination{}, fmt.Errorf("internal error listing jobs: %w", err)
	}
	return jobs, models.NewPagination(page, limit, total), nil
}

func (s *jobService) GetJobBySlug(ctx context.Context, slug string, viewer *models.Principal) (*models.JobDetail, error) {
	detail, err := s.jobRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapRepoError(err, "getting job by slug")
	}
	if detail.Status != models.JobStatusActive {
		return nil, fmt.Errorf("%w: job not available", ErrNotFound)
	}

	if err := s.jobRepo.IncrementViews(ctx, detail.ID); err != nil {
		log.Printf("JobService: Error counting view for job %s: %v", detail.ID, err)
	} else {
		detail.ViewCount++
	}

	if viewer != nil && viewer.Role == models.RoleCandidate {
		candidate, err := s.candidateRepo.GetByUserID(ctx, viewer.UserID)
		if err != nil {
			// The flags are cosmetic; the posting is still served.
			log.Printf("JobService: Error loading candidate for user %s: %v", viewer.UserID, err)
			return detail, nil
		}
		if detail.HasApplied, err = s.appRepo.Exists(ctx, detail.ID, candidate.ID); err != nil {
			log.Printf("JobService: Error checking application on job %s: %v", detail.ID, err)
		}
		if detail.IsFavorited, err = s.favoriteRepo.Exists(ctx, candidate.ID, detail.ID); err != nil {
			log.Printf("JobService: Error checking favorite on job %s: %v", detail.ID, err)
		}
	}
	return detail, nil
}

func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	company, err := s.companyForUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := validateSalaryRange(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}
	ok, err := s.refRepo.AreaExists(ctx, req.AreaID)
	if err != nil {
		return nil, mapRepoError(err, "checking area")
	}
	if !ok {
		return nil, fieldError("areaId", "invalid area")
	}
	cityIDs := uniqueUUIDs(req.CityIDs)
	n, err := s.refRepo.CountCities(ctx, cityIDs)
	if err != nil {
		return nil, mapRepoError(err, "checking cities")
	}
	if n != len(cityIDs) {
		return nil, fieldError("cityIds", "invalid city")
	}

	// --- Transaction Start ---
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("CreateJob: Error beginning transaction: %v", err)
		return nil, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txJobRepo := s.jobRepo.WithTx(tx)
	plan, err := quotaFor(ctx, s.planRepo.WithTx(tx), company.ID)
	if err != nil {
		return nil, err
	}
	if err := checkQuota(ctx, txJobRepo, company.ID, plan); err != nil {
		return nil, err
	}
	if req.IsFeatured && !plan.CanFeature {
		return nil, fmt.Errorf("%w: plan %s does not allow featured jobs", ErrForbidden, plan.Type)
	}
	if req.IsHighlighted && !plan.CanHighlight {
		return nil, fmt.Errorf("%w: plan %s does not allow highlighted jobs", ErrForbidden, plan.Type)
	}

	now := s.now()
	slug, err := s.uniqueSlug(ctx, txJobRepo, company.ID, req.Title, now)
	if err != nil {
		return nil, err
	}
	expiresAt := now.AddDate(0, 0, plan.MaxJobDays)
	applyByPlatform := true
	if req.ApplyByPlatform != nil {
		applyByPlatform = *req.ApplyByPlatform
	}
	job := &models.Job{
		CompanyID:       company.ID,
		Title:           strings.TrimSpace(req.Title),
		Slug:            slug,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Benefits:        req.Benefits,
		AreaID:          req.AreaID,
		Level:           req.Level,
		Modality:        req.Modality,
		ContractType:    req.ContractType,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		HideSalary:      req.HideSalary,
		WorkSchedule:    req.WorkSchedule,
		ApplyByPlatform: applyByPlatform,
		ApplyByWhatsapp: req.ApplyByWhatsapp,
		ApplyByEmail:    req.ApplyByEmail,
		ApplyByURL:      req.ApplyByURL,
		Status:          models.JobStatusActive,
		IsFeatured:      req.IsFeatured,
		IsHighlighted:   req.IsHighlighted,
		PublishedAt:     &now,
		ExpiresAt:       &expiresAt,
	}
	if err := txJobRepo.Create(ctx, job, cityIDs); err != nil {
		return nil, mapRepoError(err, "creating job")
	}

	entry := newAuditEntry(ptrUUID(req.UserID), models.AuditCreateJob, "Job", job.ID.String(), req.IP,
		map[string]interface{}{"title": job.Title, "slug": job.Slug})
	if err := appendAudit(ctx, s.auditRepo.WithTx(tx), entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("CreateJob: Error committing transaction: %v", err)
		return nil, fmt.Errorf("internal error committing changes: %w", err)
	}
	// --- End Transaction ---
	return job, nil
}

func (s *jobService) ListCompanyJobs(ctx context.Context, userID uuid.UUID) ([]models.JobSummary, error) {
	company, err := s.companyForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.ListByCompany(ctx, company.ID)
	if err != nil {
		log.Printf("JobService: Error listing jobs of company %s: %v", company.ID, err)
		return nil, fmt.Errorf("internal error listing company jobs: %w", err)
	}
	return jobs, nil
}

func (s *jobService) UpdateJobStatus(ctx context.Context, req *dto.UpdateJobStatusRequest) (*models.Job, error) {
	company, err := s.companyForUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// --- Transaction Start ---
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("UpdateJobStatus: Error beginning transaction: %v", err)
		return nil, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txJobRepo := s.jobRepo.WithTx(tx)
	job, err := txJobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, mapRepoError(err, "fetching job for status update")
	}
	if job.CompanyID != company.ID {
		log.Printf("UpdateJobStatus: company %s does not own job %s", company.ID, job.ID)
		return nil, fmt.Errorf("%w: job", ErrNotFound)
	}
	if !job.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, req.Status)
	}

	var publishedAt *time.Time
	if req.Status == models.JobStatusActive {
		plan, err := quotaFor(ctx, s.planRepo.WithTx(tx), company.ID)
		if err != nil {
			return nil, err
		}
		if err := checkQuota(ctx, txJobRepo, company.ID, plan); err != nil {
			return nil, err
		}
		if job.PublishedAt == nil {
			now := s.now()
			publishedAt = &now
		}
	}

	if err := txJobRepo.UpdateStatus(ctx, job.ID, req.Status, publishedAt); err != nil {
		return nil, mapRepoError(err, "updating job status")
	}
	entry := newAuditEntry(ptrUUID(req.UserID), models.AuditUpdateJobStatus, "Job", job.ID.String(), req.IP,
		map[string]interface{}{"from": job.Status, "to": req.Status})
	if err := appendAudit(ctx, s.auditRepo.WithTx(tx), entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("UpdateJobStatus: Error committing transaction: %v", err)
		return nil, fmt.Errorf("internal error committing changes: %w", err)
	}
	// --- End Transaction ---

	job.Status = req.Status
	if publishedAt != nil {
		job.PublishedAt = publishedAt
	}
	return job, nil
}

func (s *jobService) companyForUser(ctx context.Context, userID uuid.UUID) (*models.Company, error) {
	company, err := s.companyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "company profile")
	}
	return company, nil
}

// uniqueSlug derives the slug from the title, suffixing the creation time
// in milliseconds when the company already uses it.
func (s *jobService) uniqueSlug(ctx context.Context, repo storage.JobRepository, companyID uuid.UUID, title string, now time.Time) (string, error) {
	slug := textutil.Slugify(title)
	if slug == "" {
		slug = "vaga"
	}
	exists, err := repo.SlugExists(ctx, companyID, slug)
	if err != nil {
		return "", mapRepoError(err, "checking job slug")
	}
	if exists {
		slug = slug + "-" + strconv.FormatInt(now.UnixMilli(), 10)
	}
	return slug, nil
}

// checkQuota fails with ErrQuotaExceeded when one more ACTIVE posting would
// exceed the plan limit.
func checkQuota(ctx context.Context, repo storage.JobRepository, companyID uuid.UUID, plan *models.Plan) error {
	if plan.Unlimited() {
		return nil
	}
	active, err := repo.CountActiveByCompany(ctx, companyID)
	if err != nil {
		return mapRepoError(err, "counting active jobs")
	}
	if active >= plan.MaxActiveJobs {
		return fmt.Errorf("%w (%d of %d)", ErrQuotaExceeded, active, plan.MaxActiveJobs)
	}
	return nil
}
