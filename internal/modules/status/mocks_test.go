package status

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"famchat/internal/domain"
)

// mockStatusStore covers Store, SweepStore and BackfillStore.
type mockStatusStore struct {
	mock.Mock
}

func (m *mockStatusStore) Create(ctx context.Context, st *domain.Status) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

func (m *mockStatusStore) GetByID(ctx context.Context, id string) (*domain.Status, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Status), args.Error(1)
}

func (m *mockStatusStore) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStatusStore) ListCandidates(ctx context.Context, viewerID int64) ([]domain.Status, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Status), args.Error(1)
}

func (m *mockStatusStore) AddView(ctx context.Context, statusID string, viewerID int64) error {
	args := m.Called(ctx, statusID, viewerID)
	return args.Error(0)
}

func (m *mockStatusStore) SetReaction(ctx context.Context, statusID string, viewerID int64, emoji string) error {
	args := m.Called(ctx, statusID, viewerID, emoji)
	return args.Error(0)
}

func (m *mockStatusStore) GetViews(ctx context.Context, statusID string) ([]domain.StatusView, error) {
	args := m.Called(ctx, statusID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusView), args.Error(1)
}

func (m *mockStatusStore) GetReactions(ctx context.Context, statusID string) ([]domain.StatusReaction, error) {
	args := m.Called(ctx, statusID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusReaction), args.Error(1)
}

func (m *mockStatusStore) FindExpired(ctx context.Context, now time.Time, limit int) ([]domain.Status, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Status), args.Error(1)
}

func (m *mockStatusStore) DeleteBatch(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *mockStatusStore) FindMissingExpiry(ctx context.Context, limit int) ([]domain.Status, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Status), args.Error(1)
}

func (m *mockStatusStore) SetExpiryBatch(ctx context.Context, expiries map[string]time.Time) error {
	args := m.Called(ctx, expiries)
	return args.Error(0)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockCleaner struct {
	mock.Mock
}

func (m *mockCleaner) Delete(ctx context.Context, externalID string, kind domain.MediaKind) error {
	args := m.Called(ctx, externalID, kind)
	return args.Error(0)
}
