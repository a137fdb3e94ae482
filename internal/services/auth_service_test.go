package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vagas-rmc/internal/auth"
	"vagas-rmc/internal/mocks"
	"vagas-rmc/internal/models"
	"vagas-rmc/internal/services"
	"vagas-rmc/internal/storage"
	"vagas-rmc/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func activeUser(t *testing.T, role models.Role, password string) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: mustHash(t, password),
		Role:         role,
		IsActive:     true,
		AccountState: models.AccountStateActive,
	}
}

func setupAuthServiceTest() (services.AuthService, *mocks.UserRepository, *mocks.AuditRepository) {
	userRepo := &mocks.UserRepository{}
	auditRepo := &mocks.AuditRepository{}
	svc := services.NewAuthService(userRepo, auditRepo, auth.NewTokenManager("secret", time.Hour))
	return svc, userRepo, auditRepo
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc, userRepo, auditRepo := setupAuthServiceTest()
	user := activeUser(t, models.RoleCandidate, "secret123")

	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil).Once()
	userRepo.On("TouchLastLogin", mock.Anything, user.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mocks.ActionIs(models.AuditLogin)).Return(nil).Once()

	p, err := svc.Authenticate(context.Background(), &dto.LoginRequest{Email: "  USER@example.com ", Password: "secret123", IP: "10.0.0.1"})

	require.NoError(t, err)
	assert.Equal(t, models.Principal{UserID: user.ID, Email: user.Email, Role: models.RoleCandidate}, *p)
	userRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestAuthService_Authenticate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, userRepo *mocks.UserRepository)
		wantErr error
	}{
		{
			name: "unknown email",
			setup: func(t *testing.T, userRepo *mocks.UserRepository) {
				userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(nil, storage.ErrNotFound)
			},
			wantErr: services.ErrNotFound,
		},
		{
			name: "inactive account",
			setup: func(t *testing.T, userRepo *mocks.UserRepository) {
				u := activeUser(t, models.RoleCandidate, "secret123")
				u.IsActive = false
				userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(u, nil)
			},
			wantErr: services.ErrNotFound,
		},
		{
			name: "anonymized account",
			setup: func(t *testing.T, userRepo *mocks.UserRepository) {
				u := activeUser(t, models.RoleCandidate, "secret123")
				u.AccountState = models.AccountStateAnonymized
				userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(u, nil)
			},
			wantErr: services.ErrNotFound,
		},
		{
			name: "wrong password",
			setup: func(t *testing.T, userRepo *mocks.UserRepository) {
				userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(activeUser(t, models.RoleCompany, "other-pass"), nil)
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, auditRepo := setupAuthServiceTest()
			tt.setup(t, userRepo)

			_, err := svc.Authenticate(context.Background(), &dto.LoginRequest{Email: "user@example.com", Password: "secret123"})

			assert.ErrorIs(t, err, tt.wantErr)
			userRepo.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything, mock.Anything)
			auditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_Authenticate_AuditFailureDoesNotBlockLogin(t *testing.T) {
	svc, userRepo, auditRepo := setupAuthServiceTest()
	user := activeUser(t, models.RoleAdmin, "secret123")

	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	userRepo.On("TouchLastLogin", mock.Anything, user.ID, mock.Anything).Return(errors.New("db down"))
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down"))

	p, err := svc.Authenticate(context.Background(), &dto.LoginRequest{Email: "user@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)
}

func TestAuthService_IssueToken(t *testing.T) {
	svc, _, _ := setupAuthServiceTest()
	p := models.Principal{UserID: uuid.New(), Email: "a@b.com", Role: models.RoleCompany}

	token, expiresAt, err := svc.IssueToken(p)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	parsed, err := auth.NewTokenManager("secret", time.Hour).Parse(token)
	require.NoError(t, err)
	assert.Equal(t, p, *parsed)
}

func TestAuthService_Me(t *testing.T) {
	svc, userRepo, _ := setupAuthServiceTest()
	user := activeUser(t, models.RoleCandidate, "x12345")
	gone := activeUser(t, models.RoleCandidate, "x12345")
	gone.AccountState = models.AccountStateAnonymized

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, gone.ID).Return(gone, nil)

	got, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Me(context.Background(), gone.ID)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}
