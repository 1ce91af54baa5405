// Command mktoken mints a tenant API token, creating the tenant first when
// -create is given.
// Usage:
//
//	mktoken -tenant <uuid>
//	mktoken -create -name "Acme Corp" -slug acme
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"docpipe/internal/config"
	"docpipe/internal/domain"
	"docpipe/internal/repository/postgres"
	"docpipe/internal/service"
)

func main() {
	tenantFlag := flag.String("tenant", "", "tenant UUID to mint a token for")
	createFlag := flag.Bool("create", false, "create the tenant before minting")
	nameFlag := flag.String("name", "", "tenant name (with -create)")
	slugFlag := flag.String("slug", "", "tenant slug (with -create)")
	flag.Parse()

	if err := run(*tenantFlag, *createFlag, *nameFlag, *slugFlag); err != nil {
		log.Fatal(err)
	}
}

func run(tenantStr string, create bool, name, slug string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	tenantRepo := postgres.NewTenantRepo(db)
	tokenSvc := service.NewTokenService(tenantRepo, cfg.JWT)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var tenantID uuid.UUID
	switch {
	case create:
		if name == "" || slug == "" {
			return fmt.Errorf("-create requires -name and -slug")
		}
		tenant := &domain.Tenant{
			ID:       uuid.New(),
			Name:     name,
			Slug:     slug,
			IsActive: true,
		}
		if err := tenantRepo.Create(ctx, tenant); err != nil {
			return fmt.Errorf("creating tenant: %w", err)
		}
		tenantID = tenant.ID
		fmt.Printf("tenant: %s (%s)\n", tenant.ID, tenant.Slug)
	case tenantStr != "":
		tenantID, err = uuid.Parse(tenantStr)
		if err != nil {
			return fmt.Errorf("invalid tenant UUID: %w", err)
		}
	default:
		return fmt.Errorf("either -tenant or -create is required")
	}

	token, expiresAt, err := tokenSvc.MintToken(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("minting token: %w", err)
	}

	fmt.Printf("token: %s\n", token)
	fmt.Printf("expires: %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
