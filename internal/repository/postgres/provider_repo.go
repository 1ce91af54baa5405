package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docpipe/internal/domain"
	"docpipe/internal/port"
)

type providerRepo struct {
	db *sqlx.DB
}

// NewProviderRepo creates a new PostgreSQL-backed ProviderRepository.
func NewProviderRepo(db *sqlx.DB) port.ProviderRepository {
	return &providerRepo{db: db}
}

func validateType(p *domain.Provider) error {
	if !domain.ValidProviderTypes[p.Kind][p.Type] {
		return domain.ErrUnknownProviderType
	}
	return nil
}

// clearDefaults un-marks every other default provider of the same kind and
// tenant. Runs inside the caller's transaction so a concurrent create/update
// can never leave two defaults standing.
func clearDefaults(ctx context.Context, tx *sqlx.Tx, tenantID uuid.UUID, kind domain.ProviderKind, exclude uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE providers SET is_default = false, updated_at = $1
		 WHERE tenant_id = $2 AND kind = $3 AND is_default = true AND id != $4`,
		time.Now().UTC(), tenantID, kind, exclude)
	if err != nil {
		return fmt.Errorf("clearing previous defaults: %w", err)
	}
	return nil
}

func (r *providerRepo) Create(ctx context.Context, p *domain.Provider) error {
	if err := validateType(p); err != nil {
		return err
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("providerRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if p.IsDefault {
		if err := clearDefaults(ctx, tx, p.TenantID, p.Kind, p.ID); err != nil {
			return fmt.Errorf("providerRepo.Create: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO providers (
			id, tenant_id, name, kind, provider_type, sequence,
			api_key, endpoint, model, max_tokens, temperature,
			is_active, is_default, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15
		)`,
		p.ID, p.TenantID, p.Name, p.Kind, p.Type, p.Sequence,
		p.APIKey, p.Endpoint, p.Model, p.MaxTokens, p.Temperature,
		p.IsActive, p.IsDefault, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("providerRepo.Create: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("providerRepo.Create commit: %w", err)
	}
	return nil
}

func (r *providerRepo) Update(ctx context.Context, p *domain.Provider) error {
	if err := validateType(p); err != nil {
		return err
	}

	p.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("providerRepo.Update begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if p.IsDefault {
		if err := clearDefaults(ctx, tx, p.TenantID, p.Kind, p.ID); err != nil {
			return fmt.Errorf("providerRepo.Update: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE providers SET
			name = $1, sequence = $2, api_key = $3, endpoint = $4,
			model = $5, max_tokens = $6, temperature = $7,
			is_active = $8, is_default = $9, updated_at = $10
		 WHERE id = $11 AND tenant_id = $12`,
		p.Name, p.Sequence, p.APIKey, p.Endpoint,
		p.Model, p.MaxTokens, p.Temperature,
		p.IsActive, p.IsDefault, p.UpdatedAt,
		p.ID, p.TenantID)
	if err != nil {
		return fmt.Errorf("providerRepo.Update: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrProviderNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("providerRepo.Update commit: %w", err)
	}
	return nil
}

func (r *providerRepo) GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.Provider, error) {
	var p domain.Provider
	err := r.db.GetContext(ctx, &p,
		"SELECT * FROM providers WHERE id = $1 AND tenant_id = $2", providerID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("providerRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *providerRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, kind domain.ProviderKind) ([]domain.Provider, error) {
	var providers []domain.Provider
	err := r.db.SelectContext(ctx, &providers,
		`SELECT * FROM providers WHERE tenant_id = $1 AND kind = $2
		 ORDER BY sequence, name`, tenantID, kind)
	if err != nil {
		return nil, fmt.Errorf("providerRepo.ListByTenant: %w", err)
	}
	return providers, nil
}

func (r *providerRepo) ResolveDefault(ctx context.Context, kind domain.ProviderKind, tenantID uuid.UUID) (*domain.Provider, error) {
	var p domain.Provider
	err := r.db.GetContext(ctx, &p,
		`SELECT * FROM providers
		 WHERE tenant_id = $1 AND kind = $2 AND is_default = true AND is_active = true
		 LIMIT 1`, tenantID, kind)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("providerRepo.ResolveDefault: %w", err)
	}

	// No active default; fall back to any active provider.
	err = r.db.GetContext(ctx, &p,
		`SELECT * FROM providers
		 WHERE tenant_id = $1 AND kind = $2 AND is_active = true
		 ORDER BY sequence, name LIMIT 1`, tenantID, kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("providerRepo.ResolveDefault fallback: %w", err)
	}
	return &p, nil
}

func (r *providerRepo) Delete(ctx context.Context, tenantID, providerID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM providers WHERE id = $1 AND tenant_id = $2", providerID, tenantID)
	if err != nil {
		return fmt.Errorf("providerRepo.Delete: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}
