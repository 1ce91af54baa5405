package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docpipe/internal/config"
	"docpipe/internal/domain"
	"docpipe/internal/service"
	"docpipe/mocks"
)

func tokenFixture(secret string) (*mocks.MockTenantRepo, service.TokenService) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTokenService(repo, config.JWTConfig{
		Secret:      secret,
		TokenExpiry: time.Hour,
		Issuer:      "docpipe",
	})
	return repo, svc
}

func activeTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:       uuid.New(),
		Name:     "Acme Corp",
		Slug:     "acme",
		IsActive: true,
	}
}

func TestMintToken_RoundTrip(t *testing.T) {
	repo, svc := tokenFixture("test-secret")
	tenant := activeTenant()
	repo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)

	token, expiresAt, err := svc.MintToken(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, claims.TenantID)
	assert.Equal(t, "acme", claims.Tenant)
	assert.Equal(t, "docpipe", claims.Issuer)
}

func TestMintToken_UnknownTenant(t *testing.T) {
	repo, svc := tokenFixture("test-secret")
	tenantID := uuid.New()
	repo.On("GetByID", mock.Anything, tenantID).Return(nil, domain.ErrNotFound)

	_, _, err := svc.MintToken(context.Background(), tenantID)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMintToken_InactiveTenant(t *testing.T) {
	repo, svc := tokenFixture("test-secret")
	tenant := activeTenant()
	tenant.IsActive = false
	repo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)

	_, _, err := svc.MintToken(context.Background(), tenant.ID)

	assert.ErrorIs(t, err, domain.ErrTenantInactive)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	repo, mintSvc := tokenFixture("secret-one")
	tenant := activeTenant()
	repo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)

	token, _, err := mintSvc.MintToken(context.Background(), tenant.ID)
	require.NoError(t, err)

	_, validateSvc := tokenFixture("secret-two")
	_, err = validateSvc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, svc := tokenFixture("test-secret")

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = svc.ValidateToken("")
	assert.Error(t, err)
}
