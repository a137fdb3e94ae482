package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"
	"vagas-rmc/internal/transport/dto"
	"vagas-rmc/internal/validation"

	"github.com/google/uuid"
)

// consentVersion is the terms-of-use version accepted at sign-up.
const consentVersion = "1.0"

type registrationService struct {
	db            storage.TxBeginner
	userRepo      storage.UserRepository
	candidateRepo storage.CandidateRepository
	companyRepo   storage.CompanyRepository
	planRepo      storage.PlanRepository
	auditRepo     storage.AuditRepository
	refRepo       storage.ReferenceRepository
	now           func() time.Time
}

// NewRegistrationService creates a new instance of RegistrationService.
func NewRegistrationService(
	db storage.TxBeginner,
	userRepo storage.UserRepository,
	candidateRepo storage.CandidateRepository,
	companyRepo storage.CompanyRepository,
	planRepo storage.PlanRepository,
	auditRepo storage.AuditRepository,
	refRepo storage.ReferenceRepository,
) RegistrationService {
	return &registrationService{
		db:            db,
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		companyRepo:   companyRepo,
		planRepo:      planRepo,
		auditRepo:     auditRepo,
		refRepo:       refRepo,
		now:           time.Now,
	}
}

func (s *registrationService) RegisterCandidate(ctx context.Context, req *dto.RegisterCandidateRequest) (*models.User, error) {
	if err := s.checkCities(ctx, "residenceCityId", []uuid.UUID{req.ResidenceCityID}); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}
	cpf := optionalDigits(req.CPF)
	if cpf != nil {
		exists, err := s.candidateRepo.ExistsByCPF(ctx, *cpf)
		if err != nil {
			return nil, mapRepoError(err, "checking cpf")
		}
		if exists {
			return nil, ErrDuplicateDocument
		}
	}

	user, err := s.newUser(email, req.Password, models.RoleCandidate)
	if err != nil {
		return nil, err
	}
	cityID := req.ResidenceCityID
	candidate := &models.Candidate{
		FullName:        strings.TrimSpace(req.FullName),
		CPF:             cpf,
		Phone:           strings.TrimSpace(req.Phone),
		ResidenceCityID: &cityID,
		Skills:          []string{},
		ReceiveAlerts:   true,
	}

	// --- Transaction Start ---
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("RegisterCandidate: Error beginning transaction: %v", err)
		return nil, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
		return nil, mapRepoError(err, "creating user")
	}
	candidate.UserID = user.ID
	if err := s.candidateRepo.WithTx(tx).Create(ctx, candidate); err != nil {
		return nil, mapRepoError(err, "creating candidate")
	}
	entry := newAuditEntry(ptrUUID(user.ID), models.AuditRegister, "Candidate", candidate.ID.String(), req.IP,
		map[string]interface{}{"role": models.RoleCandidate})
	if err := appendAudit(ctx, s.auditRepo.WithTx(tx), entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("RegisterCandidate: Error committing transaction: %v", err)
		return nil, fmt.Errorf("internal error committing changes: %w", err)
	}
	// --- End Transaction ---

	log.Printf("Candidate registered: user %s", user.ID)
	return user, nil
}

func (s *registrationService) RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*models.User, error) {
	cityIDs := uniqueUUIDs(req.CityIDs)
	if err := s.checkCities(ctx, "cityIds", cityIDs); err != nil {
		return nil, err
	}
	if req.SegmentID != nil {
		ok, err := s.refRepo.SegmentExists(ctx, *req.SegmentID)
		if err != nil {
			return nil, mapRepoError(err, "checking segment")
		}
		if !ok {
			return nil, fieldError("segmentId", "invalid segment")
		}
	}
	email := normalizeEmail(req.Email)
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}
	cnpj := validation.OnlyDigits(req.CNPJ)
	exists, err := s.companyRepo.ExistsByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, mapRepoError(err, "checking cnpj")
	}
	if exists {
		return nil, ErrDuplicateDocument
	}

	user, err := s.newUser(email, req.Password, models.RoleCompany)
	if err != nil {
		return nil, err
	}
	company := &models.Company{
		LegalName: strings.TrimSpace(req.LegalName),
		TradeName: strings.TrimSpace(req.TradeName),
		CNPJ:      cnpj,
		Phone:     strings.TrimSpace(req.Phone),
		Whatsapp:  req.Whatsapp,
		Website:   req.Website,
		SegmentID: req.SegmentID,
	}

	// --- Transaction Start ---
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("RegisterCompany: Error beginning transaction: %v", err)
		return nil, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
		return nil, mapRepoError(err, "creating user")
	}
	company.UserID = user.ID
	txCompanyRepo := s.companyRepo.WithTx(tx)
	if err := txCompanyRepo.Create(ctx, company); err != nil {
		return nil, mapRepoError(err, "creating company")
	}
	if err := txCompanyRepo.AddCities(ctx, company.ID, cityIDs); err != nil {
		return nil, mapRepoError(err, "linking company cities")
	}

	txPlanRepo := s.planRepo.WithTx(tx)
	free, err := txPlanRepo.GetByType(ctx, models.PlanFree)
	if err != nil {
		return nil, mapRepoError(err, "loading free plan")
	}
	if err := txPlanRepo.Subscribe(ctx, company.ID, free.ID); err != nil {
		return nil, mapRepoError(err, "subscribing company")
	}

	entry := newAuditEntry(ptrUUID(user.ID), models.AuditRegister, "Company", company.ID.String(), req.IP,
		map[string]interface{}{"role": models.RoleCompany})
	if err := appendAudit(ctx, s.auditRepo.WithTx(tx), entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("RegisterCompany: Error committing transaction: %v", err)
		return nil, fmt.Errorf("internal error committing changes: %w", err)
	}
	// --- End Transaction ---

	log.Printf("Company registered: user %s company %s", user.ID, company.ID)
	return user, nil
}

func (s *registrationService) checkCities(ctx context.Context, field string, ids []uuid.UUID) error {
	n, err := s.refRepo.CountCities(ctx, ids)
	if err != nil {
		return mapRepoError(err, "checking cities")
	}
	if n != len(ids) {
		return fieldError(field, "invalid city")
	}
	return nil
}

func (s *registrationService) checkEmailFree(ctx context.Context, email string) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return mapRepoError(err, "checking email")
	}
	if exists {
		return ErrDuplicateEmail
	}
	return nil
}

func (s *registrationService) newUser(email, password string, role models.Role) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		log.Printf("Register: %v", err)
		return nil, fmt.Errorf("internal error creating user: %w", err)
	}
	now := s.now()
	version := consentVersion
	return &models.User{
		Email:          email,
		PasswordHash:   hash,
		Role:           role,
		IsActive:       true,
		AccountState:   models.AccountStateActive,
		ConsentedAt:    &now,
		ConsentVersion: &version,
	}, nil
}

func uniqueUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
