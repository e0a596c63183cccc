package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"gstrecon/internal/config"
	"gstrecon/internal/domain"
	"gstrecon/internal/port"
)

// UploadInvoiceInput is the DTO for invoice file uploads.
type UploadInvoiceInput struct {
	OwnerID         uuid.UUID
	TransactionType domain.TransactionType
	File            io.Reader
	FileName        string
	Size            int64
}

// VoiceInvoiceInput is the DTO for voice or manually keyed invoices. Total
// and GSTRate arrive as numbers or strings depending on the client.
type VoiceInvoiceInput struct {
	TransactionType domain.TransactionType `json:"transactionType"`
	RawText         string                 `json:"rawText"`
	Vendor          string                 `json:"vendor"`
	InvoiceNo       string                 `json:"invoiceNo"`
	Date            string                 `json:"date"`
	GSTIN           string                 `json:"gstin"`
	HSN             string                 `json:"hsn"`
	Total           any                    `json:"total" swaggertype:"number"`
	GSTRate         any                    `json:"gstRate" swaggertype:"number"`
}

func (v *VoiceInvoiceInput) hasData() bool {
	for _, s := range []string{v.RawText, v.Vendor, v.InvoiceNo, v.Date, v.GSTIN, v.HSN} {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return v.Total != nil || v.GSTRate != nil
}

// InvoiceService defines the invoice submission and management contract.
type InvoiceService interface {
	Upload(ctx context.Context, input UploadInvoiceInput) (*ReconcileResult, error)
	SubmitVoice(ctx context.Context, ownerID uuid.UUID, input VoiceInvoiceInput) (*ReconcileResult, error)
	List(ctx context.Context, ownerID uuid.UUID, txType domain.TransactionType, offset, limit int) ([]domain.ReconciledInvoice, int, error)
	GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*domain.ReconciledInvoice, error)
	Delete(ctx context.Context, ownerID, invoiceID uuid.UUID) error
	GetFileURL(ctx context.Context, ownerID, invoiceID uuid.UUID) (string, error)
}

type invoiceService struct {
	userRepo    port.UserRepository
	invoiceRepo port.InvoiceRepository
	creditRepo  port.PurchaseCreditRepository
	storage     port.ObjectStorage
	extractor   port.TextExtractor
	reconciler  ReconcileService
	s3Cfg       *config.S3Config
	maxBytes    int64
}

// NewInvoiceService creates a new InvoiceService implementation. storage may
// be nil, in which case uploaded files are not kept.
func NewInvoiceService(
	userRepo port.UserRepository,
	invoiceRepo port.InvoiceRepository,
	creditRepo port.PurchaseCreditRepository,
	storage port.ObjectStorage,
	extractor port.TextExtractor,
	reconciler ReconcileService,
	s3Cfg *config.S3Config,
	extractionCfg *config.ExtractionConfig,
) InvoiceService {
	return &invoiceService{
		userRepo:    userRepo,
		invoiceRepo: invoiceRepo,
		creditRepo:  creditRepo,
		storage:     storage,
		extractor:   extractor,
		reconciler:  reconciler,
		s3Cfg:       s3Cfg,
		maxBytes:    extractionCfg.MaxFileSizeMB * 1024 * 1024,
	}
}

func (s *invoiceService) storageEnabled() bool {
	return s.storage != nil && s.s3Cfg != nil && s.s3Cfg.Bucket != ""
}

func (s *invoiceService) Upload(ctx context.Context, input UploadInvoiceInput) (*ReconcileResult, error) {
	if !input.TransactionType.Valid() {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidTransactionType)
	}
	if input.Size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	data, err := io.ReadAll(io.LimitReader(input.File, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(data)]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	owner, err := s.userRepo.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	var fileKey string
	if s.storageEnabled() {
		fileKey = fmt.Sprintf("invoices/%s/%s.%s", input.OwnerID, uuid.New(), ext)
		log.Printf("invoiceService.Upload: storing %s (%d bytes) for user %s", input.FileName, len(data), input.OwnerID)
		_, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.s3Cfg.Bucket,
			Key:         fileKey,
			Body:        bytes.NewReader(data),
			ContentType: domain.AllowedFileTypes[fileType],
			Size:        int64(len(data)),
		})
		if err != nil {
			log.Printf("invoiceService.Upload: S3 upload failed for %s: %v", input.FileName, err)
			return nil, domain.ErrUploadFailed
		}
	}

	text, err := s.extractor.ExtractText(ctx, data, fileType)
	if err != nil {
		log.Printf("invoiceService.Upload: no text extracted from %s: %v", input.FileName, err)
		text = ""
	}

	result, err := s.reconciler.Reconcile(ctx, ReconcileInput{
		RawText:         text,
		Source:          domain.SourcePDF,
		TransactionType: input.TransactionType,
		OwnerUserID:     owner.ID,
		OwnerGSTIN:      owner.GSTIN,
		OwnerEmail:      owner.Email,
		OwnerName:       owner.Name,
		FileName:        input.FileName,
		FileKey:         fileKey,
	})
	if err != nil {
		if fileKey != "" {
			if delErr := s.storage.Delete(ctx, s.s3Cfg.Bucket, fileKey); delErr != nil {
				log.Printf("invoiceService.Upload: failed to remove orphaned object %s: %v", fileKey, delErr)
			}
		}
		return nil, err
	}
	return result, nil
}

func (s *invoiceService) SubmitVoice(ctx context.Context, ownerID uuid.UUID, input VoiceInvoiceInput) (*ReconcileResult, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var voice *VoiceFields
	if input.hasData() {
		voice = &VoiceFields{
			Vendor:        input.Vendor,
			InvoiceNumber: input.InvoiceNo,
			Date:          input.Date,
			GSTIN:         input.GSTIN,
			HSN:           input.HSN,
			Total:         domain.ToNumber(input.Total),
			GSTRate:       domain.ToNumber(input.GSTRate),
		}
	}

	return s.reconciler.Reconcile(ctx, ReconcileInput{
		RawText:         input.RawText,
		Source:          domain.SourceVoice,
		TransactionType: input.TransactionType,
		OwnerUserID:     owner.ID,
		OwnerGSTIN:      owner.GSTIN,
		OwnerEmail:      owner.Email,
		OwnerName:       owner.Name,
		Voice:           voice,
	})
}

func (s *invoiceService) List(ctx context.Context, ownerID uuid.UUID, txType domain.TransactionType, offset, limit int) ([]domain.ReconciledInvoice, int, error) {
	if txType != "" && !txType.Valid() {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidTransactionType)
	}
	return s.invoiceRepo.ListByOwner(ctx, ownerID, txType, offset, limit)
}

func (s *invoiceService) GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*domain.ReconciledInvoice, error) {
	return s.invoiceRepo.GetByID(ctx, ownerID, invoiceID)
}

func (s *invoiceService) Delete(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	log.Printf("invoiceService.Delete: deleting invoice %s for user %s", invoiceID, ownerID)

	inv, err := s.invoiceRepo.GetByID(ctx, ownerID, invoiceID)
	if err != nil {
		return err
	}

	if err := s.invoiceRepo.Delete(ctx, ownerID, invoiceID); err != nil {
		return err
	}

	// the FK cascade normally removes the entry already
	if inv.TransactionType == domain.TransactionPurchase {
		if err := s.creditRepo.DeleteByInvoice(ctx, ownerID, invoiceID); err != nil {
			log.Printf("invoiceService.Delete: failed to delete credit entry for invoice %s: %v", invoiceID, err)
		}
	}

	if inv.FileKey != "" && s.storageEnabled() {
		if err := s.storage.Delete(ctx, s.s3Cfg.Bucket, inv.FileKey); err != nil {
			log.Printf("invoiceService.Delete: failed to delete %s from S3: %v", inv.FileKey, err)
		}
	}
	return nil
}

func (s *invoiceService) GetFileURL(ctx context.Context, ownerID, invoiceID uuid.UUID) (string, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, ownerID, invoiceID)
	if err != nil {
		return "", err
	}
	if inv.FileKey == "" || !s.storageEnabled() {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, inv.FileKey, s.s3Cfg.PresignExpiry)
}
