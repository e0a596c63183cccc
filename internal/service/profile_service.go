package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"gstrecon/internal/domain"
	"gstrecon/internal/extract"
	"gstrecon/internal/port"
)

// UpdateGSTINInput is the DTO for setting the caller's own GSTIN.
type UpdateGSTINInput struct {
	GSTIN string `json:"gstin" binding:"required"`
}

// ProfileService exposes the signed-in user's own profile.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateGSTIN(ctx context.Context, userID uuid.UUID, gstin string) (*domain.User, error)
}

type profileService struct {
	repo port.UserRepository
}

// NewProfileService creates a new ProfileService implementation.
func NewProfileService(repo port.UserRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *profileService) UpdateGSTIN(ctx context.Context, userID uuid.UUID, gstin string) (*domain.User, error) {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if !extract.ValidGSTIN(gstin) {
		return nil, domain.ErrInvalidGSTIN
	}
	if err := s.repo.UpdateGSTIN(ctx, userID, gstin); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}
