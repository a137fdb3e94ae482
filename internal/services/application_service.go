package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"vagas-rmc/internal/matching"
	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"
	"vagas-rmc/internal/transport/dto"

	"github.com/google/uuid"
)

type applicationService struct {
	db            storage.TxBeginner
	appRepo       storage.ApplicationRepository
	jobRepo       storage.JobRepository
	candidateRepo storage.CandidateRepository
	companyRepo   storage.CompanyRepository
	auditRepo     storage.AuditRepository
	now           func() time.Time
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(
	db storage.TxBeginner,
	appRepo storage.ApplicationRepository,
	jobRepo storage.JobRepository,
	candidateRepo storage.CandidateRepository,
	companyRepo storage.CompanyRepository,
	auditRepo storage.AuditRepository,
) ApplicationService {
	return &applicationService{
		db:            db,
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		companyRepo:   companyRepo,
		auditRepo:     auditRepo,
		now:           time.Now,
	}
}

func (s *applicationService) Apply(ctx context.Context, req *dto.ApplyRequest) (*models.Application, error) {
	candidate, err := activeCandidate(ctx, s.candidateRepo, req.UserID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		return nil, mapRepoError(err, "getting job by slug")
	}
	if job.Status != models.JobStatusActive {
		return nil, fmt.Errorf("%w: job not available", ErrNotFound)
	}

	// --- Transaction Start ---
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("Apply: Error beginning transaction: %v", err)
		return nil, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txAppRepo := s.appRepo.WithTx(tx)
	exists, err := txAppRepo.Exists(ctx, job.ID, candidate.ID)
	if err != nil {
		return nil, mapRepoError(err, "checking existing application")
	}
	if exists {
		return nil, fmt.Errorf("%w: already applied to this job", ErrConflict)
	}

	app := &models.Application{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		Status:      models.ApplicationStatusPending,
		MatchScore:  matching.Score(candidate.Skills, job.Description),
		CoverLetter: req.CoverLetter,
	}
	if err := txAppRepo.Create(ctx, app); err != nil {
		// A concurrent duplicate loses on the unique (job, candidate) constraint.
		return nil, mapRepoError(err, "creating application")
	}

	entry := newAuditEntry(ptrUUID(req.UserID), models.AuditApply, "Application", app.ID.String(), req.IP,
		map[string]interface{}{"jobId": job.ID.String(), "jobTitle": job.Title, "matchScore": app.MatchScore})
	if err := appendAudit(ctx, s.auditRepo.WithTx(tx), entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Apply: Error committing transaction: %v", err)
		return nil, fmt.Errorf("internal error committing changes: %w", err)
	}
	// --- End Transaction ---

	log.Printf("Candidate %s applied to job %s (score %d)", candidate.ID, job.ID, app.MatchScore)
	return app, nil
}

func (s *applicationService) ListCompanyApplications(ctx context.Context, req *dto.ListCompanyApplicationsRequest) ([]models.CompanyApplication, models.Pagination, error) {
	company, err := s.companyRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, models.Pagination{}, mapRepoError(err, "company profile")
	}

	page, limit, offset := pageWindow(req.PageQuery, defaultPageSize)
	filter := storage.ApplicationFilter{CompanyID: company.ID, Limit: limit, Offset: offset}
	if req.JobID != "" {
		jobID, err := uuid.Parse(req.JobID)
		if err != nil {
			return nil, models.Pagination{}, fieldError("jobId", "must be a valid UUID")
		}
		filter.JobID = &jobID
	}
	if req.Status != "" {
		status, err := models.ParseApplicationStatus(req.Status)
		if err != nil {
			return nil, models.Pagination{}, fieldError("status", "invalid status")
		}
		filter.Status = &status
	}

	apps, total, err := s.appRepo.ListForCompany(ctx, filter)
	if err != nil {
		log.Printf("ApplicationService: Error listing applications of company %s: %v", company.ID, err)
		return nil, models.Pagination{}, fmt.Errorf("internal error listing applications: %w", err)
	}
	return apps, models.NewPagination(page, limit, total), nil
}

func (s *applicationService) UpdateApplicationStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	company, err := s.companyRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, mapRepoError(err, "company profile")
	}

	// --- Transaction Start ---
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("UpdateApplicationStatus: Error beginning transaction: %v", err)
		return nil, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txAppRepo := s.appRepo.WithTx(tx)
	app, err := txAppRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, mapRepoError(err, "fetching application")
	}
	job, err := s.jobRepo.WithTx(tx).GetByID(ctx, app.JobID)
	if err != nil {
		return nil, mapRepoError(err, "fetching application job")
	}
	if job.CompanyID != company.ID {
		log.Printf("UpdateApplicationStatus: company %s does not own application %s", company.ID, app.ID)
		return nil, fmt.Errorf("%w: application", ErrNotFound)
	}
	if !app.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, req.Status)
	}

	var viewedAt *time.Time
	if req.Status == models.ApplicationStatusViewed {
		now := s.now()
		viewedAt = &now
	}
	updated, err := txAppRepo.UpdateStatus(ctx, app.ID, req.Status, req.Feedback, viewedAt)
	if err != nil {
		return nil, mapRepoError(err, "updating application status")
	}

	entry := newAuditEntry(ptrUUID(req.UserID), models.AuditUpdateApplicationStatus, "Application", app.ID.String(), req.IP,
		map[string]interface{}{"from": app.Status, "to": req.Status})
	if err := appendAudit(ctx, s.auditRepo.WithTx(tx), entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("UpdateApplicationStatus: Error committing transaction: %v", err)
		return nil, fmt.Errorf("internal error committing changes: %w", err)
	}
	// --- End Transaction ---
	return updated, nil
}

func (s *applicationService) ListCandidateApplications(ctx context.Context, req *dto.ListCandidateApplicationsRequest) ([]models.CandidateApplication, models.Pagination, error) {
	candidate, err := activeCandidate(ctx, s.candidateRepo, req.UserID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	var status *models.ApplicationStatus
	if req.Status != "" {
		st, err := models.ParseApplicationStatus(req.Status)
		if err != nil {
			return nil, models.Pagination{}, fieldError("status", "invalid status")
		}
		status = &st
	}
	page, limit, offset := pageWindow(req.PageQuery, defaultCandidatePageSize)

	apps, total, err := s.appRepo.ListForCandidate(ctx, candidate.ID, status, limit, offset)
	if err != nil {
		log.Printf("ApplicationService: Error listing applications of candidate %s: %v", candidate.ID, err)
		return nil, models.Pagination{}, fmt.Errorf("internal error listing applications: %w", err)
	}
	return apps, models.NewPagination(page, limit, total), nil
}

func (s *applicationService) CancelApplication(ctx context.Context, userID, applicationID uuid.UUID, ip string) error {
	candidate, err := activeCandidate(ctx, s.candidateRepo, userID)
	if err != nil {
		return err
	}

	// --- Transaction Start ---
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("CancelApplication: Error beginning transaction: %v", err)
		return fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txAppRepo := s.appRepo.WithTx(tx)
	app, err := txAppRepo.GetByID(ctx, applicationID)
	if err != nil {
		return mapRepoError(err, "fetching application")
	}
	if app.CandidateID != candidate.ID {
		return fmt.Errorf("%w: application", ErrNotFound)
	}
	if app.Status != models.ApplicationStatusPending {
		return fmt.Errorf("%w: only pending applications can be cancelled", ErrInvalidState)
	}
	if err := txAppRepo.Delete(ctx, app.ID); err != nil {
		return mapRepoError(err, "deleting application")
	}

	entry := newAuditEntry(ptrUUID(userID), models.AuditCancelApplication, "Application", app.ID.String(), ip,
		map[string]interface{}{"jobId": app.JobID.String()})
	if err := appendAudit(ctx, s.auditRepo.WithTx(tx), entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("CancelApplication: Error committing transaction: %v", err)
		return fmt.Errorf("internal error committing changes: %w", err)
	}
	// --- End Transaction ---
	return nil
}
