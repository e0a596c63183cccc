package rates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstrecon/internal/domain"
	"gstrecon/internal/port"
	"gstrecon/internal/rates"
	"gstrecon/mocks"
)

func TestFallbackLookup_FirstSucceeds(t *testing.T) {
	l1 := new(mocks.MockRateLookup)
	l2 := new(mocks.MockRateLookup)
	l1.On("Lookup", mock.Anything, "8471").Return("18%", nil)

	f := rates.NewFallbackLookup([]port.RateLookup{l1, l2}, []string{"command", "table"}, time.Minute)
	got, err := f.Lookup(context.Background(), "8471")

	require.NoError(t, err)
	assert.Equal(t, "18%", got)
	l2.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestFallbackLookup_FailureOpensCircuit(t *testing.T) {
	l1 := new(mocks.MockRateLookup)
	l2 := new(mocks.MockRateLookup)
	l1.On("Lookup", mock.Anything, "8471").Return("", errors.New("exit status 1")).Once()
	l2.On("Lookup", mock.Anything, "8471").Return("12%", nil).Twice()

	f := rates.NewFallbackLookup([]port.RateLookup{l1, l2}, []string{"command", "table"}, time.Minute)

	got, err := f.Lookup(context.Background(), "8471")
	require.NoError(t, err)
	assert.Equal(t, "12%", got)

	// second call skips the failed lookup while its circuit is open
	got, err = f.Lookup(context.Background(), "8471")
	require.NoError(t, err)
	assert.Equal(t, "12%", got)
	l1.AssertNumberOfCalls(t, "Lookup", 1)
	l2.AssertNumberOfCalls(t, "Lookup", 2)
}

func TestFallbackLookup_NotFoundDoesNotOpenCircuit(t *testing.T) {
	l1 := new(mocks.MockRateLookup)
	l2 := new(mocks.MockRateLookup)
	l1.On("Lookup", mock.Anything, "widget").Return("", domain.ErrRateNotFound)
	l2.On("Lookup", mock.Anything, "widget").Return("", domain.ErrRateNotFound)

	f := rates.NewFallbackLookup([]port.RateLookup{l1, l2}, []string{"table", "http"}, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := f.Lookup(context.Background(), "widget")
		assert.ErrorIs(t, err, domain.ErrRateNotFound)
	}
	l1.AssertNumberOfCalls(t, "Lookup", 2)
}

func TestFallbackLookup_AllFail(t *testing.T) {
	l1 := new(mocks.MockRateLookup)
	l1.On("Lookup", mock.Anything, "8471").Return("", errors.New("boom"))

	f := rates.NewFallbackLookup([]port.RateLookup{l1}, []string{"command"}, time.Minute)
	_, err := f.Lookup(context.Background(), "8471")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all rate lookups failed")
}
