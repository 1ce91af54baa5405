package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"docpipe/internal/bill"
	"docpipe/internal/config"
	"docpipe/internal/domain"
	emailnoop "docpipe/internal/email/noop"
	"docpipe/internal/email/ses"
	"docpipe/internal/handler"
	"docpipe/internal/llm"
	"docpipe/internal/ocr"
	"docpipe/internal/port"
	"docpipe/internal/prompt"
	"docpipe/internal/record"
	"docpipe/internal/registry"
	"docpipe/internal/repository/postgres"
	"docpipe/internal/router"
	"docpipe/internal/service"
	s3storage "docpipe/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	providerRepo := postgres.NewProviderRepo(db)
	jobRepo := postgres.NewJobRepo(db)
	vendorRepo := postgres.NewVendorRepo(db)
	billRepo := postgres.NewBillRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = emailnoop.NewNoopSender()
	}

	// Register document types: extraction prompts and record builders
	prompt.Register(domain.DocumentTypeVendorBill, bill.Template)
	record.Register(domain.DocumentTypeVendorBill, bill.NewBuilder(vendorRepo, billRepo))
	record.Register(domain.DocumentTypeOther, record.NewNoopBuilder())

	// Initialize services
	resolver := registry.NewResolver(providerRepo)
	ocrClient := ocr.NewClient()
	llmClient := llm.NewClient()
	tokenSvc := service.NewTokenService(tenantRepo, cfg.JWT)
	providerSvc := service.NewProviderService(providerRepo, llmClient)
	jobSvc := service.NewJobService(
		jobRepo, resolver, s3Client, ocrClient, llmClient,
		emailSender, cfg.Email.NotifyAddress,
		cfg.S3.Bucket, cfg.S3.MaxFileSizeMB*1024*1024,
	)

	// Initialize handlers
	providerH := handler.NewProviderHandler(providerSvc)
	jobH := handler.NewJobHandler(jobSvc)
	billH := handler.NewBillHandler(billRepo)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(tokenSvc, cfg.CORS.AllowedOrigins, providerH, jobH, billH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the queue worker for auto-process jobs
	worker := service.NewProcessQueueWorker(jobRepo, jobSvc, service.ProcessQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone
	return nil
}
