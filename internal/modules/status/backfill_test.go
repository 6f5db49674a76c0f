package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"famchat/internal/domain"
)

func TestBackfiller_DerivesExpiryFromCreatedAt(t *testing.T) {
	store := new(mockStatusStore)

	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	missing := []domain.Status{
		{ID: "s1", OwnerID: 1, CreatedAt: created},
	}

	store.On("FindMissingExpiry", mock.Anything, 500).Return(missing, nil)
	store.On("SetExpiryBatch", mock.Anything, mock.MatchedBy(func(m map[string]time.Time) bool {
		exp, ok := m["s1"]
		return ok && exp.Equal(created.Add(24*time.Hour))
	})).Return(nil)

	bf := NewBackfiller(store, 500)
	n, err := bf.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	store.AssertExpectations(t)
}

func TestBackfiller_FallsBackToNowPlusTTL(t *testing.T) {
	store := new(mockStatusStore)

	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	missing := []domain.Status{
		{ID: "broken", OwnerID: 1}, // no usable created_at
	}

	store.On("FindMissingExpiry", mock.Anything, 500).Return(missing, nil)
	store.On("SetExpiryBatch", mock.Anything, mock.MatchedBy(func(m map[string]time.Time) bool {
		exp, ok := m["broken"]
		return ok && exp.Equal(frozen.Add(24*time.Hour))
	})).Return(nil)

	bf := NewBackfiller(store, 500)
	bf.now = func() time.Time { return frozen }

	n, err := bf.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	store.AssertExpectations(t)
}

func TestBackfiller_NothingMissing(t *testing.T) {
	store := new(mockStatusStore)
	store.On("FindMissingExpiry", mock.Anything, 500).Return([]domain.Status{}, nil)

	bf := NewBackfiller(store, 500)
	n, err := bf.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	store.AssertNotCalled(t, "SetExpiryBatch", mock.Anything, mock.Anything)
}

func TestBackfiller_WriteFailurePropagates(t *testing.T) {
	store := new(mockStatusStore)

	missing := []domain.Status{{ID: "s1", CreatedAt: time.Now()}}
	store.On("FindMissingExpiry", mock.Anything, 500).Return(missing, nil)
	store.On("SetExpiryBatch", mock.Anything, mock.Anything).Return(errors.New("store down"))

	bf := NewBackfiller(store, 500)
	_, err := bf.Run(context.Background())

	// Left for the operator to re-run; the rows still match the query.
	require.Error(t, err)
}

func TestBackfiller_RepeatedRunsDrainTheStore(t *testing.T) {
	store := new(mockStatusStore)

	created := time.Now().Add(-time.Hour)
	first := []domain.Status{{ID: "s1", CreatedAt: created}, {ID: "s2", CreatedAt: created}}

	store.On("FindMissingExpiry", mock.Anything, 2).Return(first, nil).Once()
	store.On("SetExpiryBatch", mock.Anything, mock.Anything).Return(nil).Once()
	store.On("FindMissingExpiry", mock.Anything, 2).Return([]domain.Status{}, nil).Once()

	bf := NewBackfiller(store, 2)

	n, err := bf.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = bf.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "after draining, every row has an expiry")
}
