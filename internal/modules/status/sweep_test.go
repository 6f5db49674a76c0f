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

func strp(s string) *string { return &s }

func kindp(k domain.MediaKind) *domain.MediaKind { return &k }

func expiredStatus(id string, media bool) domain.Status {
	created := time.Now().Add(-48 * time.Hour)
	exp := created.Add(24 * time.Hour)
	st := domain.Status{ID: id, OwnerID: 1, CreatedAt: created, ExpiresAt: &exp}
	if media {
		st.MediaExternalID = strp("ext-" + id)
		st.MediaKind = kindp(domain.MediaKindImage)
	}
	return st
}

func TestSweeper_DeletesExpiredAndMedia(t *testing.T) {
	store := new(mockStatusStore)
	cleaner := new(mockCleaner)

	expired := []domain.Status{
		expiredStatus("s1", true),
		expiredStatus("s2", false),
		expiredStatus("s3", true),
	}

	store.On("FindExpired", mock.Anything, mock.Anything, 500).Return(expired, nil)
	cleaner.On("Delete", mock.Anything, "ext-s1", domain.MediaKindImage).Return(nil)
	cleaner.On("Delete", mock.Anything, "ext-s3", domain.MediaKindImage).Return(nil)
	store.On("DeleteBatch", mock.Anything, []string{"s1", "s2", "s3"}).Return(nil)

	sw := NewSweeper(store, cleaner, 500)
	n, err := sw.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	store.AssertExpectations(t)
	cleaner.AssertExpectations(t)
	// Text-only s2 never reaches the cleaner.
	cleaner.AssertNumberOfCalls(t, "Delete", 2)
}

func TestSweeper_ZeroMatchesIsNoOp(t *testing.T) {
	store := new(mockStatusStore)
	cleaner := new(mockCleaner)

	store.On("FindExpired", mock.Anything, mock.Anything, 500).Return([]domain.Status{}, nil)

	sw := NewSweeper(store, cleaner, 500)
	n, err := sw.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	store.AssertNotCalled(t, "DeleteBatch", mock.Anything, mock.Anything)
	cleaner.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestSweeper_MediaFailureDoesNotBlockRowDelete(t *testing.T) {
	store := new(mockStatusStore)
	cleaner := new(mockCleaner)

	expired := []domain.Status{expiredStatus("s1", true)}

	store.On("FindExpired", mock.Anything, mock.Anything, 500).Return(expired, nil)
	cleaner.On("Delete", mock.Anything, "ext-s1", domain.MediaKindImage).
		Return(errors.New("cdn rate limited"))
	store.On("DeleteBatch", mock.Anything, []string{"s1"}).Return(nil)

	sw := NewSweeper(store, cleaner, 500)
	n, err := sw.Run(context.Background())

	require.NoError(t, err, "a failed media delete is logged, never fatal")
	assert.Equal(t, 1, n)
	store.AssertExpectations(t)
}

func TestSweeper_BatchFailureLeavesRowsForNextRun(t *testing.T) {
	store := new(mockStatusStore)
	cleaner := new(mockCleaner)

	expired := []domain.Status{expiredStatus("s1", false)}

	store.On("FindExpired", mock.Anything, mock.Anything, 500).Return(expired, nil)
	store.On("DeleteBatch", mock.Anything, []string{"s1"}).Return(errors.New("write conflict"))

	sw := NewSweeper(store, cleaner, 500)
	n, err := sw.Run(context.Background())

	require.Error(t, err)
	assert.Zero(t, n)
}

func TestSweeper_SecondRunDeletesNothing(t *testing.T) {
	store := new(mockStatusStore)
	cleaner := new(mockCleaner)

	expired := []domain.Status{expiredStatus("s1", false)}

	// First run sees the row; once deleted, the second query matches nothing.
	store.On("FindExpired", mock.Anything, mock.Anything, 500).Return(expired, nil).Once()
	store.On("DeleteBatch", mock.Anything, []string{"s1"}).Return(nil).Once()
	store.On("FindExpired", mock.Anything, mock.Anything, 500).Return([]domain.Status{}, nil).Once()

	sw := NewSweeper(store, cleaner, 500)

	n1, err := sw.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n1)

	n2, err := sw.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n2, "sweeping an already-swept store is a no-op")
}

func TestSweeper_RespectsBatchBound(t *testing.T) {
	store := new(mockStatusStore)
	cleaner := new(mockCleaner)

	batch := []domain.Status{expiredStatus("s1", false), expiredStatus("s2", false)}

	store.On("FindExpired", mock.Anything, mock.Anything, 2).Return(batch, nil)
	store.On("DeleteBatch", mock.Anything, []string{"s1", "s2"}).Return(nil)

	sw := NewSweeper(store, cleaner, 2)
	n, err := sw.Run(context.Background())

	require.NoError(t, err)
	// One bounded batch per run; the remainder waits for the next cadence.
	assert.Equal(t, 2, n)
	store.AssertNumberOfCalls(t, "FindExpired", 1)
}
