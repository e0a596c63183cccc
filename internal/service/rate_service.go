package service

import (
	"context"
	"strings"

	"gstrecon/internal/domain"
)

// RateResolver answers direct rate queries from the in-memory rate table.
type RateResolver interface {
	Resolve(hsn, text string) domain.RateResolution
}

// RateService answers "what rate applies to this HSN code or description".
type RateService interface {
	Resolve(ctx context.Context, hsn, text string) (*domain.RateResolution, error)
}

type rateService struct {
	resolver RateResolver
}

// NewRateService creates a new RateService implementation.
func NewRateService(resolver RateResolver) RateService {
	return &rateService{resolver: resolver}
}

func (s *rateService) Resolve(ctx context.Context, hsn, text string) (*domain.RateResolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := s.resolver.Resolve(strings.TrimSpace(hsn), text)
	return &res, nil
}
