package rates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstrecon/internal/rates"
	"gstrecon/mocks"
)

func TestRefresher_Refresh(t *testing.T) {
	repo := new(mocks.MockHSNRepo)
	repo.On("LoadAll", mock.Anything).Return(masterEntries(), nil).Once()

	table := rates.NewTableLookup(nil, nil)
	r, err := rates.NewRefresher(repo, table, "@daily", time.Second)
	require.NoError(t, err)

	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, 3, table.Size())
}

func TestRefresher_RefreshErrorKeepsTable(t *testing.T) {
	repo := new(mocks.MockHSNRepo)
	repo.On("LoadAll", mock.Anything).Return(nil, errors.New("db down"))

	table := rates.NewTableLookup(masterEntries(), nil)
	r, err := rates.NewRefresher(repo, table, "0 3 * * *", time.Second)
	require.NoError(t, err)

	assert.Error(t, r.Refresh(context.Background()))
	assert.Equal(t, 3, table.Size())
}

func TestNewRefresher_InvalidSchedule(t *testing.T) {
	_, err := rates.NewRefresher(new(mocks.MockHSNRepo), rates.NewTableLookup(nil, nil), "every tuesday", time.Second)
	assert.Error(t, err)
}
