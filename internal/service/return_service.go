package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gstrecon/internal/domain"
	"gstrecon/internal/port"
	"gstrecon/internal/returns"
)

// ReturnService builds GST return views over an owner's stored invoices.
// Nothing it returns is persisted; every call recomputes from the rows.
type ReturnService interface {
	GSTR1(ctx context.Context, ownerID uuid.UUID, month string) (*domain.GSTR1Return, error)
	GSTR2A(ctx context.Context, ownerID uuid.UUID) ([]domain.PurchaseCreditEntry, error)
	SummarizeITC(ctx context.Context, ownerID uuid.UUID) (*domain.ITCSummary, error)
	GSTR3B(ctx context.Context, ownerID uuid.UUID, month string) (*domain.GSTR3BReturn, error)
	SummarizePeriod(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (*domain.PeriodSummary, error)
	MonthlySummary(ctx context.Context, ownerID uuid.UUID, month string) (*domain.PeriodSummary, error)
}

type returnService struct {
	userRepo    port.UserRepository
	invoiceRepo port.InvoiceRepository
	creditRepo  port.PurchaseCreditRepository
	now         func() time.Time
}

// NewReturnService creates a new ReturnService implementation.
func NewReturnService(
	userRepo port.UserRepository,
	invoiceRepo port.InvoiceRepository,
	creditRepo port.PurchaseCreditRepository,
) ReturnService {
	return &returnService{
		userRepo:    userRepo,
		invoiceRepo: invoiceRepo,
		creditRepo:  creditRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *returnService) GSTR1(ctx context.Context, ownerID uuid.UUID, month string) (*domain.GSTR1Return, error) {
	period, err := returns.ParseMonth(month, s.now())
	if err != nil {
		return nil, err
	}
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sales, err := s.invoiceRepo.ListByDateRange(ctx, ownerID, domain.TransactionSale, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	ret := returns.BuildGSTR1(sales, owner.GSTIN, period.Label)
	return &ret, nil
}

func (s *returnService) GSTR2A(ctx context.Context, ownerID uuid.UUID) ([]domain.PurchaseCreditEntry, error) {
	entries, err := s.creditRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.PurchaseCreditEntry{}
	}
	return entries, nil
}

func (s *returnService) SummarizeITC(ctx context.Context, ownerID uuid.UUID) (*domain.ITCSummary, error) {
	entries, err := s.creditRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	summary := returns.SummarizeITC(entries)
	return &summary, nil
}

func (s *returnService) GSTR3B(ctx context.Context, ownerID uuid.UUID, month string) (*domain.GSTR3BReturn, error) {
	period, err := returns.ParseMonth(month, s.now())
	if err != nil {
		return nil, err
	}
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListByDateRange(ctx, ownerID, "", period.Start, period.End)
	if err != nil {
		return nil, err
	}
	credits, err := s.creditRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ret := returns.BuildGSTR3B(invoices, credits, owner.GSTIN, period)
	return &ret, nil
}

func (s *returnService) SummarizePeriod(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (*domain.PeriodSummary, error) {
	if !end.After(start) {
		return nil, domain.ErrInvalidPeriod
	}
	invoices, err := s.invoiceRepo.ListByDateRange(ctx, ownerID, "", start, end)
	if err != nil {
		return nil, err
	}

	summary := returns.SummarizePeriod(invoices, periodLabel(start, end))
	return &summary, nil
}

func (s *returnService) MonthlySummary(ctx context.Context, ownerID uuid.UUID, month string) (*domain.PeriodSummary, error) {
	period, err := returns.ParseMonth(month, s.now())
	if err != nil {
		return nil, err
	}
	return s.SummarizePeriod(ctx, ownerID, period.Start, period.End)
}

// periodLabel names a whole calendar month as YYYY-MM and any other range
// by its bounds.
func periodLabel(start, end time.Time) string {
	midnight := start.Hour() == 0 && start.Minute() == 0 && start.Second() == 0 && start.Nanosecond() == 0
	if start.Day() == 1 && midnight && end.Equal(start.AddDate(0, 1, 0)) {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02") + "/" + end.Format("2006-01-02")
}
