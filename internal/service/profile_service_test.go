package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstrecon/internal/domain"
	"gstrecon/internal/port"
	"gstrecon/internal/rates"
	"gstrecon/internal/service"
	"gstrecon/mocks"
)

func TestProfileService_UpdateGSTIN(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewProfileService(userRepo)
	userID := uuid.New()

	userRepo.On("UpdateGSTIN", mock.Anything, userID, "27AAPFU0939F1ZV").Return(nil)
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, GSTIN: "27AAPFU0939F1ZV"}, nil)

	user, err := svc.UpdateGSTIN(context.Background(), userID, " 27aapfu0939f1zv ")

	require.NoError(t, err)
	assert.Equal(t, "27AAPFU0939F1ZV", user.GSTIN)
	userRepo.AssertExpectations(t)
}

func TestProfileService_UpdateGSTIN_Invalid(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewProfileService(userRepo)

	for _, gstin := range []string{"", "27AAPFU0939F1Z", "27AAPFU0939F1XV"} {
		_, err := svc.UpdateGSTIN(context.Background(), uuid.New(), gstin)
		assert.ErrorIs(t, err, domain.ErrInvalidGSTIN, gstin)
	}
	userRepo.AssertNotCalled(t, "UpdateGSTIN", mock.Anything, mock.Anything, mock.Anything)
}

func TestRateService_Resolve(t *testing.T) {
	table := rates.NewTableLookup([]port.HSNEntry{
		{Code: "8471", Description: "automatic data processing machines", GSTRate: 18},
	}, &rates.KeywordFile{
		Keywords: []rates.KeywordEntry{{Name: "Restaurant", Rate: 5, Aliases: []string{"restaurant"}}},
	})
	svc := service.NewRateService(table)

	res, err := svc.Resolve(context.Background(), " 8471 ", "")
	require.NoError(t, err)
	require.NotNil(t, res.Rate)
	assert.Equal(t, 18.0, *res.Rate)
	assert.Equal(t, "hsn", res.Source)

	res, err = svc.Resolve(context.Background(), "", "dinner at a restaurant")
	require.NoError(t, err)
	assert.Equal(t, "keyword", res.Source)
	assert.Equal(t, "restaurant", res.Matched)

	res, err = svc.Resolve(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, res.Rate)
	assert.Equal(t, "none", res.Source)
}

func TestRateService_Resolve_CancelledContext(t *testing.T) {
	svc := service.NewRateService(rates.NewTableLookup(nil, &rates.KeywordFile{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Resolve(ctx, "8471", "")

	assert.ErrorIs(t, err, context.Canceled)
}
