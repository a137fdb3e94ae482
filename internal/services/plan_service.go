package services

import (
	"context"
	"errors"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"

	"github.com/google/uuid"
)

// defaultMaxJobDays is the posting lifetime of companies without a subscription.
const defaultMaxJobDays = 30

// freeDefaults governs companies that have no active subscription.
func freeDefaults() *models.Plan {
	return &models.Plan{
		Type:          models.PlanFree,
		Name:          "Gratuito",
		MaxActiveJobs: models.DefaultMaxActiveJobs,
		MaxJobDays:    defaultMaxJobDays,
	}
}

type planService struct {
	planRepo storage.PlanRepository
}

// NewPlanService creates a new instance of PlanService.
func NewPlanService(planRepo storage.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) ListPlans(ctx context.Context) ([]models.Plan, error) {
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, "listing plans")
	}
	return plans, nil
}

func (s *planService) QuotaFor(ctx context.Context, companyID uuid.UUID) (*models.Plan, error) {
	return quotaFor(ctx, s.planRepo, companyID)
}

func quotaFor(ctx context.Context, repo storage.PlanRepository, companyID uuid.UUID) (*models.Plan, error) {
	plan, err := repo.GetForCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return freeDefaults(), nil
		}
		return nil, mapRepoError(err, "loading company plan")
	}
	if plan.MaxJobDays <= 0 {
		plan.MaxJobDays = defaultMaxJobDays
	}
	return plan, nil
}

type referenceService struct {
	refRepo storage.ReferenceRepository
}

// NewReferenceService creates a new instance of ReferenceService.
func NewReferenceService(refRepo storage.ReferenceRepository) ReferenceService {
	return &referenceService{refRepo: refRepo}
}

func (s *referenceService) ListCities(ctx context.Context) ([]models.City, error) {
	cities, err := s.refRepo.ListCities(ctx)
	if err != nil {
		return nil, mapRepoError(err, "listing cities")
	}
	return cities, nil
}

func (s *referenceService) ListAreas(ctx context.Context) ([]models.JobArea, error) {
	areas, err := s.refRepo.ListAreas(ctx)
	if err != nil {
		return nil, mapRepoError(err, "listing areas")
	}
	return areas, nil
}

func (s *referenceService) ListSegments(ctx context.Context) ([]models.Segment, error) {
	segments, err := s.refRepo.ListSegments(ctx)
	if err != nil {
		return nil, mapRepoError(err, "listing segments")
	}
	return segments, nil
}
