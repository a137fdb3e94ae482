package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vagas-rmc/internal/auth"
	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"
	"vagas-rmc/internal/transport/dto"

	"github.com/google/uuid"
)

type authService struct {
	userRepo  storage.UserRepository
	auditRepo storage.AuditRepository
	tokens    *auth.TokenManager
	now       func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo storage.UserRepository, auditRepo storage.AuditRepository, tokens *auth.TokenManager) AuthService {
	return &authService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		tokens:    tokens,
		now:       time.Now,
	}
}

func (s *authService) Authenticate(ctx context.Context, req *dto.LoginRequest) (*models.Principal, error) {
	email := normalizeEmail(req.Email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Login attempt failed for email %s: user not found", email)
			return nil, fmt.Errorf("%w: user not found or inactive", ErrNotFound)
		}
		log.Printf("Error fetching user by email %s during login: %v", email, err)
		return nil, fmt.Errorf("internal error during login: %w", err)
	}
	if !user.CanSignIn() {
		log.Printf("Login attempt failed for email %s: account inactive", email)
		return nil, fmt.Errorf("%w: user not found or inactive", ErrNotFound)
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		log.Printf("Login attempt failed for email %s: invalid password", email)
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		log.Printf("Login: Error updating last login for user %s: %v", user.ID, err)
	}
	entry := newAuditEntry(ptrUUID(user.ID), models.AuditLogin, "User", user.ID.String(), req.IP, nil)
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		log.Printf("Login: Error writing audit entry for user %s: %v", user.ID, err)
	}

	return &models.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *authService) IssueToken(principal models.Principal) (string, time.Time, error) {
	token, expiresAt, err := s.tokens.Issue(principal)
	if err != nil {
		log.Printf("Error generating JWT token for user %s: %v", principal.UserID, err)
		return "", time.Time{}, fmt.Errorf("failed to generate login token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "getting current user")
	}
	if !user.CanSignIn() {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
