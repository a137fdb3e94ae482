package services

import (
	"context"
	"fmt"
	"log"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"
	"vagas-rmc/internal/transport/dto"

	"github.com/google/uuid"
)

type adminService struct {
	db          storage.TxBeginner
	companyRepo storage.CompanyRepository
	planRepo    storage.PlanRepository
	auditRepo   storage.AuditRepository
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(db storage.TxBeginner, companyRepo storage.CompanyRepository, planRepo storage.PlanRepository, auditRepo storage.AuditRepository) AdminService {
	return &adminService{db: db, companyRepo: companyRepo, planRepo: planRepo, auditRepo: auditRepo}
}

func (s *adminService) ListCompanies(ctx context.Context, req *dto.ListCompaniesRequest) ([]models.Company, models.Pagination, error) {
	page, limit, offset := pageWindow(req.PageQuery, defaultPageSize)
	companies, total, err := s.companyRepo.List(ctx, storage.CompanyFilter{Verified: req.Verified, Limit: limit, Offset: offset})
	if err != nil {
		log.Printf("AdminService: Error listing companies: %v", err)
		return nil, models.Pagination{}, fmt.Errorf("internal error listing companies: %w", err)
	}
	return companies, models.NewPagination(page, limit, total), nil
}

func (s *adminService) VerifyCompany(ctx context.Context, req *dto.VerifyCompanyRequest) (*models.Company, error) {
	verified := true
	if req.Verified != nil {
		verified = *req.Verified
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("VerifyCompany: Error beginning transaction: %v", err)
		return nil, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txCompanyRepo := s.companyRepo.WithTx(tx)
	if err := txCompanyRepo.SetVerified(ctx, req.CompanyID, verified); err != nil {
		return nil, mapRepoError(err, "verifying company")
	}
	entry := newAuditEntry(ptrUUID(req.UserID), models.AuditVerifyCompany, "Company", req.CompanyID.String(), req.IP,
		map[string]interface{}{"verified": verified})
	if err := appendAudit(ctx, s.auditRepo.WithTx(tx), entry); err != nil {
		return nil, err
	}
	company, err := txCompanyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		return nil, mapRepoError(err, "fetching company")
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("VerifyCompany: Error committing transaction: %v", err)
		return nil, fmt.Errorf("internal error committing changes: %w", err)
	}
	return company, nil
}

// ChangeCompanyPlan moves the company to another plan. Postings already
// active stay active after a downgrade; only new ones are limited.
func (s *adminService) ChangeCompanyPlan(ctx context.Context, req *dto.ChangePlanRequest) (*models.Plan, error) {
	plan, err := s.planRepo.GetByType(ctx, req.PlanType)
	if err != nil {
		return nil, mapRepoError(err, "loading plan")
	}
	if _, err := s.companyRepo.GetByID(ctx, req.CompanyID); err != nil {
		return nil, mapRepoError(err, "fetching company")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("ChangeCompanyPlan: Error beginning transaction: %v", err)
		return nil, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.planRepo.WithTx(tx).Subscribe(ctx, req.CompanyID, plan.ID); err != nil {
		return nil, mapRepoError(err, "subscribing company")
	}
	entry := newAuditEntry(ptrUUID(req.UserID), models.AuditChangePlan, "Company", req.CompanyID.String(), req.IP,
		map[string]interface{}{"plan": plan.Type})
	if err := appendAudit(ctx, s.auditRepo.WithTx(tx), entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("ChangeCompanyPlan: Error committing transaction: %v", err)
		return nil, fmt.Errorf("internal error committing changes: %w", err)
	}
	return plan, nil
}

func (s *adminService) ListAuditLogs(ctx context.Context, req *dto.ListAuditLogsRequest) ([]models.AuditLog, models.Pagination, error) {
	page, limit, offset := pageWindow(req.PageQuery, defaultPageSize)
	filter := storage.AuditFilter{Limit: limit, Offset: offset}
	if req.UserID != "" {
		id, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, models.Pagination{}, fieldError("userId", "must be a valid UUID")
		}
		filter.UserID = &id
	}
	if req.Action != "" {
		action := models.AuditAction(req.Action)
		filter.Action = &action
	}

	logs, total, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		log.Printf("AdminService: Error listing audit logs: %v", err)
		return nil, models.Pagination{}, fmt.Errorf("internal error listing audit logs: %w", err)
	}
	return logs, models.NewPagination(page, limit, total), nil
}
