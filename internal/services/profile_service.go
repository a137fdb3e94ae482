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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Placeholders written over personal data on account deletion. The tombstone
// itself is the ANONYMIZED account state, not these strings.
const (
	removedName         = "Usuário Removido"
	removedPhone        = "REMOVED"
	removedPasswordHash = "DELETED"
)

func removedEmail(userID uuid.UUID) string {
	return fmt.Sprintf("deleted_%s@removed.local", userID)
}

type profileService struct {
	db            storage.TxBeginner
	userRepo      storage.UserRepository
	candidateRepo storage.CandidateRepository
	companyRepo   storage.CompanyRepository
	planRepo      storage.PlanRepository
	auditRepo     storage.AuditRepository
	refRepo       storage.ReferenceRepository
	now           func() time.Time
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(
	db storage.TxBeginner,
	userRepo storage.UserRepository,
	candidateRepo storage.CandidateRepository,
	companyRepo storage.CompanyRepository,
	planRepo storage.PlanRepository,
	auditRepo storage.AuditRepository,
	refRepo storage.ReferenceRepository,
) ProfileService {
	return &profileService{
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

// --- Candidate ---

func (s *profileService) GetCandidateProfile(ctx context.Context, userID uuid.UUID) (*dto.CandidateProfileResponse, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "candidate profile")
	}
	return &dto.CandidateProfileResponse{User: *user, Candidate: *candidate}, nil
}

func (s *profileService) UpdateCandidateProfile(ctx context.Context, req *dto.UpdateCandidateProfileRequest) (*dto.CandidateProfileResponse, error) {
	user, err := s.activeUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.candidateRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, mapRepoError(err, "candidate profile")
	}
	newHash, err := s.passwordChange(user, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return nil, err
	}

	var changed []string
	if req.FullName != nil {
		candidate.FullName = strings.TrimSpace(*req.FullName)
		changed = append(changed, "fullName")
	}
	if req.Phone != nil {
		candidate.Phone = strings.TrimSpace(*req.Phone)
		changed = append(changed, "phone")
	}
	if req.ResidenceCityID != nil {
		n, err := s.refRepo.CountCities(ctx, []uuid.UUID{*req.ResidenceCityID})
		if err != nil {
			return nil, mapRepoError(err, "checking city")
		}
		if n != 1 {
			return nil, fieldError("residenceCityId", "invalid city")
		}
		candidate.ResidenceCityID = req.ResidenceCityID
		changed = append(changed, "residenceCityId")
	}
	if req.AreaID != nil {
		ok, err := s.refRepo.AreaExists(ctx, *req.AreaID)
		if err != nil {
			return nil, mapRepoError(err, "checking area")
		}
		if !ok {
			return nil, fieldError("areaId", "invalid area")
		}
		candidate.AreaID = req.AreaID
		changed = append(changed, "areaId")
	}
	if req.DesiredPosition != nil {
		candidate.DesiredPosition = req.DesiredPosition
		changed = append(changed, "desiredPosition")
	}
	if req.Level != nil {
		candidate.Level = req.Level
		changed = append(changed, "level")
	}
	if req.ExperienceYears != nil {
		candidate.ExperienceYears = req.ExperienceYears
		changed = append(changed, "experienceYears")
	}
	if req.Education != nil {
		candidate.Education = req.Education
		changed = append(changed, "education")
	}
	if req.SalaryMin != nil {
		candidate.SalaryMin = req.SalaryMin
		changed = append(changed, "salaryMin")
	}
	if req.SalaryMax != nil {
		candidate.SalaryMax = req.SalaryMax
		changed = append(changed, "salaryMax")
	}
	if req.ResumeURL != nil {
		candidate.ResumeURL = req.ResumeURL
		changed = append(changed, "resumeUrl")
	}
	if req.Skills != nil {
		candidate.Skills = cleanSkills(req.Skills)
		changed = append(changed, "skills")
	}
	if req.IsPublicProfile != nil {
		candidate.IsPublicProfile = *req.IsPublicProfile
		changed = append(changed, "isPublicProfile")
	}
	if req.ReceiveAlerts != nil {
		candidate.ReceiveAlerts = *req.ReceiveAlerts
		changed = append(changed, "receiveAlerts")
	}
	if err := validateSalaryRange(candidate.SalaryMin, candidate.SalaryMax); err != nil {
		return nil, err
	}

	err = s.inTx(ctx, "UpdateCandidateProfile", func(tx pgx.Tx) error {
		if err := s.candidateRepo.WithTx(tx).Update(ctx, candidate); err != nil {
			return mapRepoError(err, "updating candidate profile")
		}
		return s.recordProfileChange(ctx, tx, user.ID, "Candidate", candidate.ID, changed, newHash, req.IP)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CandidateProfileResponse{User: *user, Candidate: *candidate}, nil
}

// DeleteCandidateAccount anonymizes the account in place. Applications are
// kept and keep pointing at the scrubbed profile.
func (s *profileService) DeleteCandidateAccount(ctx context.Context, req *dto.DeleteAccountRequest) error {
	user, err := s.activeUser(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !checkPassword(user.PasswordHash, req.Password) {
		log.Printf("DeleteCandidateAccount: wrong password for user %s", user.ID)
		return ErrInvalidCredentials
	}
	candidate, err := s.candidateRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return mapRepoError(err, "candidate profile")
	}

	err = s.inTx(ctx, "DeleteCandidateAccount", func(tx pgx.Tx) error {
		if err := s.candidateRepo.WithTx(tx).Anonymize(ctx, candidate.ID, removedName, removedPhone); err != nil {
			return mapRepoError(err, "anonymizing candidate")
		}
		if err := s.userRepo.WithTx(tx).Anonymize(ctx, user.ID, removedEmail(user.ID), removedPasswordHash, s.now()); err != nil {
			return mapRepoError(err, "anonymizing user")
		}
		details := map[string]interface{}{}
		if req.Reason != nil {
			details["reason"] = *req.Reason
		}
		entry := newAuditEntry(ptrUUID(user.ID), models.AuditDeleteAccount, "User", user.ID.String(), req.IP, details)
		return appendAudit(ctx, s.auditRepo.WithTx(tx), entry)
	})
	if err != nil {
		return err
	}
	log.Printf("Account %s anonymized", user.ID)
	return nil
}

// --- Company ---

func (s *profileService) GetCompanyProfile(ctx context.Context, userID uuid.UUID) (*dto.CompanyProfileResponse, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "company profile")
	}
	plan, err := quotaFor(ctx, s.planRepo, company.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CompanyProfileResponse{User: *user, Company: *company, Plan: plan}, nil
}

func (s *profileService) UpdateCompanyProfile(ctx context.Context, req *dto.UpdateCompanyProfileRequest) (*dto.CompanyProfileResponse, error) {
	user, err := s.activeUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, mapRepoError(err, "company profile")
	}
	newHash, err := s.passwordChange(user, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return nil, err
	}

	var changed []string
	if req.TradeName != nil {
		company.TradeName = strings.TrimSpace(*req.TradeName)
		changed = append(changed, "tradeName")
	}
	if req.Description != nil {
		company.Description = req.Description
		changed = append(changed, "description")
	}
	if req.Phone != nil {
		company.Phone = strings.TrimSpace(*req.Phone)
		changed = append(changed, "phone")
	}
	if req.Whatsapp != nil {
		company.Whatsapp = req.Whatsapp
		changed = append(changed, "whatsapp")
	}
	if req.Website != nil {
		company.Website = req.Website
		changed = append(changed, "website")
	}
	if req.LogoURL != nil {
		company.LogoURL = req.LogoURL
		changed = append(changed, "logoUrl")
	}
	if req.SegmentID != nil {
		ok, err := s.refRepo.SegmentExists(ctx, *req.SegmentID)
		if err != nil {
			return nil, mapRepoError(err, "checking segment")
		}
		if !ok {
			return nil, fieldError("segmentId", "invalid segment")
		}
		company.SegmentID = req.SegmentID
		changed = append(changed, "segmentId")
	}

	err = s.inTx(ctx, "UpdateCompanyProfile", func(tx pgx.Tx) error {
		if err := s.companyRepo.WithTx(tx).Update(ctx, company); err != nil {
			return mapRepoError(err, "updating company profile")
		}
		return s.recordProfileChange(ctx, tx, user.ID, "Company", company.ID, changed, newHash, req.IP)
	})
	if err != nil {
		return nil, err
	}

	plan, err := quotaFor(ctx, s.planRepo, company.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CompanyProfileResponse{User: *user, Company: *company, Plan: plan}, nil
}

// --- helpers ---

func (s *profileService) activeUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "getting user")
	}
	if !user.CanSignIn() {
		return nil, fmt.Errorf("%w: user not found or inactive", ErrNotFound)
	}
	return user, nil
}

// passwordChange verifies the current password and hashes the new one. It
// returns "" when no change was requested.
func (s *profileService) passwordChange(user *models.User, current, next *string) (string, error) {
	if next == nil || *next == "" {
		return "", nil
	}
	if current == nil || *current == "" {
		return "", fieldError("currentPassword", "required to change the password")
	}
	if !checkPassword(user.PasswordHash, *current) {
		return "", ErrInvalidCredentials
	}
	hash, err := hashPassword(*next)
	if err != nil {
		log.Printf("ChangePassword: %v", err)
		return "", fmt.Errorf("internal error changing password: %w", err)
	}
	return hash, nil
}

func (s *profileService) recordProfileChange(ctx context.Context, tx pgx.Tx, userID uuid.UUID, entity string, entityID uuid.UUID, changed []string, newHash, ip string) error {
	txAudit := s.auditRepo.WithTx(tx)
	if newHash != "" {
		if err := s.userRepo.WithTx(tx).UpdatePassword(ctx, userID, newHash); err != nil {
			return mapRepoError(err, "updating password")
		}
		entry := newAuditEntry(ptrUUID(userID), models.AuditChangePassword, "User", userID.String(), ip, nil)
		if err := appendAudit(ctx, txAudit, entry); err != nil {
			return err
		}
	}
	if len(changed) == 0 {
		return nil
	}
	entry := newAuditEntry(ptrUUID(userID), models.AuditUpdateProfile, entity, entityID.String(), ip,
		map[string]interface{}{"fields": changed})
	return appendAudit(ctx, txAudit, entry)
}

func (s *profileService) inTx(ctx context.Context, operation string, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("%s: Error beginning transaction: %v", operation, err)
		return fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		log.Printf("%s: Error committing transaction: %v", operation, err)
		return fmt.Errorf("internal error committing changes: %w", err)
	}
	return nil
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}
