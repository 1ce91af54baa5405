package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"docpipe/internal/config"
	"docpipe/internal/domain"
	"docpipe/internal/port"
)

// Claims represents the JWT claims carried by a tenant API token.
type Claims struct {
	jwt.RegisteredClaims
	TenantID uuid.UUID `json:"tenant_id"`
	Tenant   string    `json:"tenant"`
}

// TokenService defines the API token contract. Tokens are long-lived bearer
// tokens scoped to a single tenant.
type TokenService interface {
	MintToken(ctx context.Context, tenantID uuid.UUID) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type tokenService struct {
	tenants port.TenantRepository
	cfg     config.JWTConfig
}

// NewTokenService creates a new TokenService implementation.
func NewTokenService(tenants port.TenantRepository, cfg config.JWTConfig) TokenService {
	return &tokenService{tenants: tenants, cfg: cfg}
}

func (s *tokenService) MintToken(ctx context.Context, tenantID uuid.UUID) (string, time.Time, error) {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", time.Time{}, domain.ErrUnauthorized
		}
		return "", time.Time{}, fmt.Errorf("tokenService.MintToken: %w", err)
	}
	if !tenant.IsActive {
		return "", time.Time{}, domain.ErrTenantInactive
	}

	now := time.Now()
	expiresAt := now.Add(s.cfg.TokenExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tenant.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"api"},
		},
		TenantID: tenant.ID,
		Tenant:   tenant.Slug,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return tokenString, expiresAt, nil
}

func (s *tokenService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	found := false
	for _, a := range aud {
		if a == "api" {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
