package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstrecon/internal/domain"
	"gstrecon/internal/service"
	"gstrecon/mocks"
)

type returnFixture struct {
	userRepo    *mocks.MockUserRepo
	invoiceRepo *mocks.MockInvoiceRepo
	creditRepo  *mocks.MockPurchaseCreditRepo
	svc         service.ReturnService
	owner       *domain.User
}

func newReturnFixture() *returnFixture {
	f := &returnFixture{
		userRepo:    new(mocks.MockUserRepo),
		invoiceRepo: new(mocks.MockInvoiceRepo),
		creditRepo:  new(mocks.MockPurchaseCreditRepo),
		owner:       &domain.User{ID: uuid.New(), GSTIN: ownerGSTIN},
	}
	f.svc = service.NewReturnService(f.userRepo, f.invoiceRepo, f.creditRepo)
	return f
}

var (
	novStart = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	decStart = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
)

func sale(gstin, hsn string, taxable, cgst, sgst float64) domain.ReconciledInvoice {
	inv := domain.ReconciledInvoice{
		TransactionType: domain.TransactionSale,
		TaxableValue:    taxable,
		CorrectedCGST:   cgst,
		CorrectedSGST:   sgst,
	}
	inv.GSTIN = gstin
	inv.HSN = hsn
	return inv
}

func TestReturnService_GSTR1(t *testing.T) {
	f := newReturnFixture()
	f.userRepo.On("GetByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
	f.invoiceRepo.On("ListByDateRange", mock.Anything, f.owner.ID, domain.TransactionSale, novStart, decStart).
		Return([]domain.ReconciledInvoice{
			sale("29AAACB1234C1Z5", "8471", 1000, 90, 90),
			sale(domain.NotFound, "8471", 500, 45, 45),
		}, nil)

	ret, err := f.svc.GSTR1(context.Background(), f.owner.ID, "2025-11")

	require.NoError(t, err)
	assert.Equal(t, ownerGSTIN, ret.GSTIN)
	assert.Equal(t, "2025-11", ret.Period)
	assert.Len(t, ret.B2B, 1)
	assert.Len(t, ret.B2C, 1)
	require.Len(t, ret.HSN, 1)
	assert.Equal(t, 1500.0, ret.HSN[0].Taxable)
	assert.Equal(t, 135.0, ret.HSN[0].CGST)
}

func TestReturnService_GSTR1_BadMonth(t *testing.T) {
	f := newReturnFixture()

	_, err := f.svc.GSTR1(context.Background(), f.owner.ID, "11-2025")

	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	f.invoiceRepo.AssertNotCalled(t, "ListByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReturnService_GSTR2A_EmptyIsNotNil(t *testing.T) {
	f := newReturnFixture()
	f.creditRepo.On("ListByOwner", mock.Anything, f.owner.ID).Return(nil, nil)

	entries, err := f.svc.GSTR2A(context.Background(), f.owner.ID)

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestReturnService_SummarizeITC(t *testing.T) {
	f := newReturnFixture()
	f.creditRepo.On("ListByOwner", mock.Anything, f.owner.ID).Return([]domain.PurchaseCreditEntry{
		{SupplierGSTIN: "29AAACB1234C1Z5", InvoiceNumber: "P-1", IGST: 180, TotalGST: 180},
		{SupplierGSTIN: domain.Unknown, InvoiceNumber: "P-2", TotalGST: 40},
	}, nil)

	s, err := f.svc.SummarizeITC(context.Background(), f.owner.ID)

	require.NoError(t, err)
	assert.Equal(t, 180.0, s.Summary.TotalEligibleITC)
	assert.Equal(t, 40.0, s.Summary.TotalIneligibleITC)
	assert.Len(t, s.Invoices, 2)
}

func TestReturnService_SummarizeITC_StoreError(t *testing.T) {
	f := newReturnFixture()
	f.creditRepo.On("ListByOwner", mock.Anything, f.owner.ID).Return(nil, errors.New("db down"))

	_, err := f.svc.SummarizeITC(context.Background(), f.owner.ID)

	assert.Error(t, err)
}

func TestReturnService_GSTR3B(t *testing.T) {
	f := newReturnFixture()
	f.userRepo.On("GetByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
	f.invoiceRepo.On("ListByDateRange", mock.Anything, f.owner.ID, domain.TransactionType(""), novStart, decStart).
		Return([]domain.ReconciledInvoice{sale("29AAACB1234C1Z5", "8471", 1000, 90, 90)}, nil)
	f.creditRepo.On("ListByOwner", mock.Anything, f.owner.ID).Return([]domain.PurchaseCreditEntry{
		{InvoiceDate: time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC), CGST: 30, SGST: 30, TotalGST: 60},
	}, nil)

	ret, err := f.svc.GSTR3B(context.Background(), f.owner.ID, "2025-11")

	require.NoError(t, err)
	assert.Equal(t, 60.0, ret.EligibleITC)
	assert.Equal(t, 120.0, ret.NetTaxPayable)
	assert.Equal(t, 1, ret.PeriodSummary.B2BCount)
}

func TestReturnService_SummarizePeriod(t *testing.T) {
	f := newReturnFixture()
	start := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	f.invoiceRepo.On("ListByDateRange", mock.Anything, f.owner.ID, domain.TransactionType(""), start, end).
		Return([]domain.ReconciledInvoice{sale(domain.NotFound, "9403", 200, 18, 18)}, nil)

	s, err := f.svc.SummarizePeriod(context.Background(), f.owner.ID, start, end)

	require.NoError(t, err)
	assert.Equal(t, "2025-11-10/2025-11-20", s.Period)
	assert.Equal(t, 1, s.B2CCount)
	assert.Equal(t, 36.0, s.TotalTax)
}

func TestReturnService_SummarizePeriod_EmptyRange(t *testing.T) {
	f := newReturnFixture()

	_, err := f.svc.SummarizePeriod(context.Background(), f.owner.ID, decStart, novStart)

	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestReturnService_MonthlySummary_DefaultsToCurrentMonth(t *testing.T) {
	f := newReturnFixture()
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	f.invoiceRepo.On("ListByDateRange", mock.Anything, f.owner.ID, domain.TransactionType(""), start, start.AddDate(0, 1, 0)).
		Return([]domain.ReconciledInvoice{}, nil)

	s, err := f.svc.MonthlySummary(context.Background(), f.owner.ID, "")

	require.NoError(t, err)
	assert.Equal(t, start.Format("2006-01"), s.Period)
	assert.Zero(t, s.InvoiceCount)
}
