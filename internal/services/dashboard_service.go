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

type dashboardService struct {
	statsRepo     storage.StatsRepository
	candidateRepo storage.CandidateRepository
	companyRepo   storage.CompanyRepository
	planRepo      storage.PlanRepository
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(statsRepo storage.StatsRepository, candidateRepo storage.CandidateRepository, companyRepo storage.CompanyRepository, planRepo storage.PlanRepository) DashboardService {
	return &dashboardService{statsRepo: statsRepo, candidateRepo: candidateRepo, companyRepo: companyRepo, planRepo: planRepo}
}

func (s *dashboardService) CandidateDashboard(ctx context.Context, userID uuid.UUID) (*models.CandidateStats, error) {
	candidate, err := activeCandidate(ctx, s.candidateRepo, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.statsRepo.CandidateStats(ctx, candidate.ID)
	if err != nil {
		log.Printf("DashboardService: Error loading stats of candidate %s: %v", candidate.ID, err)
		return nil, fmt.Errorf("internal error loading dashboard: %w", err)
	}
	return stats, nil
}

func (s *dashboardService) CompanyDashboard(ctx context.Context, userID uuid.UUID) (*models.CompanyStats, error) {
	company, err := s.companyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "company profile")
	}
	stats, err := s.statsRepo.CompanyStats(ctx, company.ID)
	if err != nil {
		log.Printf("DashboardService: Error loading stats of company %s: %v", company.ID, err)
		return nil, fmt.Errorf("internal error loading dashboard: %w", err)
	}
	plan, err := quotaFor(ctx, s.planRepo, company.ID)
	if err != nil {
		return nil, err
	}
	stats.Plan = plan
	stats.MaxActiveJobs = plan.MaxActiveJobs
	return stats, nil
}

func (s *dashboardService) AdminDashboard(ctx context.Context) (*models.AdminStats, error) {
	stats, err := s.statsRepo.AdminStats(ctx)
	if err != nil {
		log.Printf("DashboardService: Error loading admin stats: %v", err)
		return nil, fmt.Errorf("internal error loading dashboard: %w", err)
	}
	return stats, nil
}

type resumeService struct {
	candidateRepo storage.CandidateRepository
	companyRepo   storage.CompanyRepository
	planRepo      storage.PlanRepository
}

// NewResumeService creates a new instance of ResumeService.
func NewResumeService(candidateRepo storage.CandidateRepository, companyRepo storage.CompanyRepository, planRepo storage.PlanRepository) ResumeService {
	return &resumeService{candidateRepo: candidateRepo, companyRepo: companyRepo, planRepo: planRepo}
}

// SearchCandidates lists public profiles for companies whose plan includes résumé search.
func (s *resumeService) SearchCandidates(ctx context.Context, req *dto.ResumeSearchRequest) ([]models.Candidate, models.Pagination, error) {
	company, err := s.companyRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, models.Pagination{}, mapRepoError(err, "company profile")
	}
	plan, err := quotaFor(ctx, s.planRepo, company.ID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if !plan.CanSearchResume {
		return nil, models.Pagination{}, fmt.Errorf("%w: plan %s does not include resume search", ErrForbidden, plan.Type)
	}

	page, limit, offset := pageWindow(req.PageQuery, defaultPageSize)
	candidates, total, err := s.candidateRepo.SearchPublic(ctx, storage.CandidateSearchFilter{
		Query:    req.Q,
		CitySlug: req.City,
		AreaSlug: req.Area,
		Level:    models.JobLevel(req.Level),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		log.Printf("ResumeService: Error searching candidates: %v", err)
		return nil, models.Pagination{}, fmt.Errorf("internal error searching candidates: %w", err)
	}
	for i := range candidates {
		candidates[i].CPF = nil
		candidates[i].ResumeText = nil
	}
	return candidates, models.NewPagination(page, limit, total), nil
}
