package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstrecon/internal/config"
	"gstrecon/internal/domain"
	"gstrecon/internal/port"
	"gstrecon/internal/service"
	"gstrecon/mocks"
)

const pdfBytes = "%PDF-1.4\n1 0 obj\n<<>>\nendobj\n"

type invoiceFixture struct {
	userRepo    *mocks.MockUserRepo
	invoiceRepo *mocks.MockInvoiceRepo
	creditRepo  *mocks.MockPurchaseCreditRepo
	storage     *mocks.MockObjectStorage
	extractor   *mocks.MockTextExtractor
	reconciler  *mocks.MockReconcileService
	svc         service.InvoiceService
	owner       *domain.User
}

func newInvoiceFixture(bucket string) *invoiceFixture {
	f := &invoiceFixture{
		userRepo:    new(mocks.MockUserRepo),
		invoiceRepo: new(mocks.MockInvoiceRepo),
		creditRepo:  new(mocks.MockPurchaseCreditRepo),
		storage:     new(mocks.MockObjectStorage),
		extractor:   new(mocks.MockTextExtractor),
		reconciler:  new(mocks.MockReconcileService),
		owner: &domain.User{
			ID:    uuid.New(),
			Name:  "Asha",
			Email: "asha@example.com",
			GSTIN: ownerGSTIN,
		},
	}
	f.svc = service.NewInvoiceService(
		f.userRepo, f.invoiceRepo, f.creditRepo, f.storage, f.extractor, f.reconciler,
		&config.S3Config{Bucket: bucket, PresignExpiry: 900},
		&config.ExtractionConfig{MaxFileSizeMB: 1},
	)
	return f
}

func (f *invoiceFixture) upload(name, body string, tx domain.TransactionType) (*service.ReconcileResult, error) {
	return f.svc.Upload(context.Background(), service.UploadInvoiceInput{
		OwnerID:         f.owner.ID,
		TransactionType: tx,
		File:            strings.NewReader(body),
		FileName:        name,
		Size:            int64(len(body)),
	})
}

func TestInvoiceService_Upload_Success(t *testing.T) {
	f := newInvoiceFixture("invoices-bucket")
	f.userRepo.On("GetByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "invoices-bucket" &&
			strings.HasPrefix(in.Key, "invoices/"+f.owner.ID.String()+"/") &&
			strings.HasSuffix(in.Key, ".pdf") &&
			in.ContentType == "application/pdf"
	})).Return(&port.UploadOutput{}, nil)
	f.extractor.On("ExtractText", mock.Anything, []byte(pdfBytes), domain.FileTypePDF).Return("Total: Rs.100", nil)

	want := &service.ReconcileResult{Invoice: &domain.ReconciledInvoice{ID: uuid.New()}}
	f.reconciler.On("Reconcile", mock.Anything, mock.MatchedBy(func(in service.ReconcileInput) bool {
		return in.RawText == "Total: Rs.100" &&
			in.Source == domain.SourcePDF &&
			in.TransactionType == domain.TransactionSale &&
			in.OwnerUserID == f.owner.ID &&
			in.OwnerGSTIN == ownerGSTIN &&
			in.OwnerEmail == "asha@example.com" &&
			in.FileName == "bill.pdf" &&
			in.FileKey != ""
	})).Return(want, nil)

	got, err := f.upload("bill.pdf", pdfBytes, domain.TransactionSale)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	f.storage.AssertExpectations(t)
	f.reconciler.AssertExpectations(t)
}

func TestInvoiceService_Upload_InvalidTransactionTypeFirst(t *testing.T) {
	f := newInvoiceFixture("invoices-bucket")

	_, err := f.upload("bill.exe", pdfBytes, "RETURN")

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	f.reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}

func TestInvoiceService_Upload_Rejections(t *testing.T) {
	f := newInvoiceFixture("")

	_, err := f.upload("bill.docx", pdfBytes, domain.TransactionSale)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = f.upload("bill.pdf", "plain text pretending to be a pdf", domain.TransactionSale)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = f.upload("bill.pdf", pdfBytes+strings.Repeat("x", 1024*1024), domain.TransactionSale)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestInvoiceService_Upload_StorageFailure(t *testing.T) {
	f := newInvoiceFixture("invoices-bucket")
	f.userRepo.On("GetByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := f.upload("bill.pdf", pdfBytes, domain.TransactionSale)

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	f.reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}

func TestInvoiceService_Upload_NoStorageAndUnreadableText(t *testing.T) {
	f := newInvoiceFixture("")
	f.userRepo.On("GetByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
	f.extractor.On("ExtractText", mock.Anything, mock.Anything, domain.FileTypePDF).Return("", errors.New("no text layer"))
	f.reconciler.On("Reconcile", mock.Anything, mock.MatchedBy(func(in service.ReconcileInput) bool {
		return in.RawText == "" && in.FileKey == ""
	})).Return(&service.ReconcileResult{Invoice: &domain.ReconciledInvoice{}}, nil)

	_, err := f.upload("bill.pdf", pdfBytes, domain.TransactionPurchase)

	require.NoError(t, err)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestInvoiceService_Upload_ReconcileFailureRemovesObject(t *testing.T) {
	f := newInvoiceFixture("invoices-bucket")
	f.userRepo.On("GetByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.storage.On("Delete", mock.Anything, "invoices-bucket", mock.AnythingOfType("string")).Return(nil)
	f.extractor.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return("text", nil)
	f.reconciler.On("Reconcile", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := f.upload("bill.pdf", pdfBytes, domain.TransactionSale)

	assert.Error(t, err)
	f.storage.AssertCalled(t, "Delete", mock.Anything, "invoices-bucket", mock.AnythingOfType("string"))
}

func TestInvoiceService_SubmitVoice(t *testing.T) {
	f := newInvoiceFixture("")
	f.userRepo.On("GetByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
	f.reconciler.On("Reconcile", mock.Anything, mock.MatchedBy(func(in service.ReconcileInput) bool {
		return in.Source == domain.SourceVoice &&
			in.Voice != nil &&
			in.Voice.Total == 11800 &&
			in.Voice.GSTRate == 18 &&
			in.Voice.Vendor == "Kumar Stores"
	})).Return(&service.ReconcileResult{Invoice: &domain.ReconciledInvoice{}}, nil)

	_, err := f.svc.SubmitVoice(context.Background(), f.owner.ID, service.VoiceInvoiceInput{
		TransactionType: domain.TransactionSale,
		Vendor:          "Kumar Stores",
		Total:           "₹11,800",
		GSTRate:         18.0,
	})

	require.NoError(t, err)
	f.reconciler.AssertExpectations(t)
}

func TestInvoiceService_SubmitVoice_NoData(t *testing.T) {
	f := newInvoiceFixture("")
	f.userRepo.On("GetByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
	f.reconciler.On("Reconcile", mock.Anything, mock.MatchedBy(func(in service.ReconcileInput) bool {
		return in.Voice == nil
	})).Return(nil, domain.ErrNoInvoiceData)

	_, err := f.svc.SubmitVoice(context.Background(), f.owner.ID, service.VoiceInvoiceInput{
		TransactionType: domain.TransactionSale,
		RawText:         "   ",
	})

	assert.ErrorIs(t, err, domain.ErrNoInvoiceData)
}

func TestInvoiceService_List_RejectsUnknownType(t *testing.T) {
	f := newInvoiceFixture("")

	_, _, err := f.svc.List(context.Background(), f.owner.ID, "REFUND", 0, 20)

	assert.ErrorIs(t, err, domain.ErrInvalidTransactionType)
	f.invoiceRepo.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_List(t *testing.T) {
	f := newInvoiceFixture("")
	rows := []domain.ReconciledInvoice{{ID: uuid.New()}}
	f.invoiceRepo.On("ListByOwner", mock.Anything, f.owner.ID, domain.TransactionPurchase, 0, 20).Return(rows, 1, nil)

	got, total, err := f.svc.List(context.Background(), f.owner.ID, domain.TransactionPurchase, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, rows, got)
}

func TestInvoiceService_Delete_Purchase(t *testing.T) {
	f := newInvoiceFixture("invoices-bucket")
	invID := uuid.New()
	inv := &domain.ReconciledInvoice{ID: invID, TransactionType: domain.TransactionPurchase, FileKey: "invoices/x.pdf"}

	f.invoiceRepo.On("GetByID", mock.Anything, f.owner.ID, invID).Return(inv, nil)
	f.creditRepo.On("DeleteByInvoice", mock.Anything, f.owner.ID, invID).Return(errors.New("timeout"))
	f.invoiceRepo.On("Delete", mock.Anything, f.owner.ID, invID).Return(nil)
	f.storage.On("Delete", mock.Anything, "invoices-bucket", "invoices/x.pdf").Return(errors.New("gone"))

	err := f.svc.Delete(context.Background(), f.owner.ID, invID)

	require.NoError(t, err)
	f.invoiceRepo.AssertExpectations(t)
	f.creditRepo.AssertExpectations(t)
	f.storage.AssertExpectations(t)
}

func TestInvoiceService_Delete_InvoiceFailureKeepsCreditEntry(t *testing.T) {
	f := newInvoiceFixture("invoices-bucket")
	invID := uuid.New()
	inv := &domain.ReconciledInvoice{ID: invID, TransactionType: domain.TransactionPurchase, FileKey: "invoices/x.pdf"}

	f.invoiceRepo.On("GetByID", mock.Anything, f.owner.ID, invID).Return(inv, nil)
	f.invoiceRepo.On("Delete", mock.Anything, f.owner.ID, invID).Return(errors.New("db down"))

	err := f.svc.Delete(context.Background(), f.owner.ID, invID)

	assert.Error(t, err)
	f.creditRepo.AssertNotCalled(t, "DeleteByInvoice", mock.Anything, mock.Anything, mock.Anything)
	f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Delete_NotOwned(t *testing.T) {
	f := newInvoiceFixture("")
	invID := uuid.New()
	f.invoiceRepo.On("GetByID", mock.Anything, f.owner.ID, invID).Return(nil, domain.ErrInvoiceNotFound)

	err := f.svc.Delete(context.Background(), f.owner.ID, invID)

	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	f.invoiceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_GetFileURL(t *testing.T) {
	f := newInvoiceFixture("invoices-bucket")
	invID := uuid.New()
	f.invoiceRepo.On("GetByID", mock.Anything, f.owner.ID, invID).
		Return(&domain.ReconciledInvoice{ID: invID, FileKey: "invoices/x.pdf"}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "invoices-bucket", "invoices/x.pdf", int64(900)).
		Return("https://signed.example/x.pdf", nil)

	url, err := f.svc.GetFileURL(context.Background(), f.owner.ID, invID)

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/x.pdf", url)
}

func TestInvoiceService_GetFileURL_NoFile(t *testing.T) {
	f := newInvoiceFixture("invoices-bucket")
	invID := uuid.New()
	f.invoiceRepo.On("GetByID", mock.Anything, f.owner.ID, invID).
		Return(&domain.ReconciledInvoice{ID: invID, Source: domain.SourceVoice}, nil)

	_, err := f.svc.GetFileURL(context.Background(), f.owner.ID, invID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
