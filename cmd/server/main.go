// @title        GSTRecon API
// @version      1.0
// @description  GST invoice extraction, rate verification and return summaries.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "gstrecon/docs"
	"gstrecon/internal/config"
	"gstrecon/internal/email/noop"
	sesemail "gstrecon/internal/email/ses"
	"gstrecon/internal/handler"
	"gstrecon/internal/middleware"
	"gstrecon/internal/pdftext"
	"gstrecon/internal/port"
	"gstrecon/internal/rates"
	"gstrecon/internal/repository/postgres"
	"gstrecon/internal/router"
	"gstrecon/internal/service"
	s3storage "gstrecon/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

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
	userRepo := postgres.NewUserRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	creditRepo := postgres.NewPurchaseCreditRepo(db)
	hsnRepo := postgres.NewHSNRepo(db)

	// Rate table: HSN master from Postgres plus the keyword file
	keywords, err := rates.LoadKeywords(cfg.Rates.KeywordsFile)
	if err != nil {
		return fmt.Errorf("failed to load rate keywords: %w", err)
	}
	table := rates.NewTableLookup(nil, keywords)

	refresher, err := rates.NewRefresher(hsnRepo, table, cfg.Rates.RefreshSchedule, 0)
	if err != nil {
		return fmt.Errorf("failed to initialize rate refresher: %w", err)
	}
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := refresher.Refresh(loadCtx); err != nil {
		log.Printf("WARNING: HSN master not loaded, keyword rates only: %v", err)
	}
	cancelLoad()
	refresher.Start()
	defer refresher.Stop()

	lookup := buildRateLookup(&cfg.Rates, table)
	verifier := rates.NewVerifier(lookup, rates.VerifierConfig{
		DefaultRate: cfg.Rates.DefaultRate,
		Timeout:     cfg.Rates.Timeout,
	})

	// Initialize text extraction
	var ocr pdftext.ImageReader
	if cfg.Extraction.OCRCommand != "" {
		ocr = pdftext.NewOCRExtractor(cfg.Extraction.OCRCommand, cfg.Extraction.OCRArgs,
			cfg.Extraction.OCRTimeout, cfg.Extraction.OCRMaxProcs)
		log.Printf("OCR enabled (%s)", cfg.Extraction.OCRCommand)
	} else {
		log.Println("OCR disabled, image uploads will yield no text")
	}
	extractor := pdftext.NewExtractor(pdftext.PDFExtractor{}, ocr)

	// Initialize storage; a nil interface keeps uploads in memory only
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		s3Client, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		storage = s3Client
	} else {
		log.Println("S3 bucket not configured, uploaded files will not be kept")
	}

	// Initialize alert sender
	var alerts port.AlertSender
	switch cfg.Email.Provider {
	case "ses":
		alerts, err = sesemail.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		log.Printf("Email alerts via SES (from %s)", cfg.Email.FromAddress)
	default:
		alerts = noop.NewNoopSender(cfg.Email.FrontendURL)
		log.Println("Email alerts disabled (noop sender)")
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	profileSvc := service.NewProfileService(userRepo)
	reconcileSvc := service.NewReconcileService(invoiceRepo, creditRepo, verifier, alerts)
	invoiceSvc := service.NewInvoiceService(userRepo, invoiceRepo, creditRepo, storage, extractor,
		reconcileSvc, &cfg.S3, &cfg.Extraction)
	returnSvc := service.NewReturnService(userRepo, invoiceRepo, creditRepo)
	rateSvc := service.NewRateService(table)

	// Initialize handlers and router
	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Profile: handler.NewProfileHandler(profileSvc),
		Invoice: handler.NewInvoiceHandler(invoiceSvc),
		Return:  handler.NewReturnHandler(returnSvc),
		Rate:    handler.NewRateHandler(rateSvc),
		Health:  handler.NewHealthHandler(db, table),
	}
	r := router.Setup(authSvc, handlers, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Limiter:        middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (%s)", cfg.Server.Port, cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// buildRateLookup assembles the configured lookups, in order, behind a
// fallback chain. With nothing configured the in-memory table is used.
func buildRateLookup(cfg *config.RatesConfig, table *rates.TableLookup) port.RateLookup {
	var (
		lookups []port.RateLookup
		names   []string
	)
	for _, name := range cfg.Lookups() {
		switch name {
		case "table":
			lookups = append(lookups, table)
		case "command":
			if cfg.Command == "" {
				log.Println("WARNING: rates.mode lists command but rates.command is empty, skipping")
				continue
			}
			lookups = append(lookups, rates.NewCommandLookup(cfg.Command, cfg.Args, cfg.MaxProcs))
		case "http":
			if cfg.HTTPURL == "" {
				log.Println("WARNING: rates.mode lists http but rates.http_url is empty, skipping")
				continue
			}
			client := &http.Client{Timeout: cfg.Timeout}
			lookups = append(lookups, rates.NewHTTPLookup(cfg.HTTPURL, client, cfg.RequestsPerSecond, cfg.Burst))
		default:
			continue
		}
		names = append(names, name)
	}

	if len(lookups) == 0 {
		log.Println("Rate lookup: in-memory table")
		return table
	}
	log.Printf("Rate lookup chain: %v", names)
	if len(lookups) == 1 {
		return lookups[0]
	}
	return rates.NewFallbackLookup(lookups, names, cfg.CircuitCooldown)
}
