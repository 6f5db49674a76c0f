package status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"famchat/internal/domain"
)

func newTestService(store *mockStatusStore, users *mockUserStore, cleaner *mockCleaner) *Service {
	return NewService(store, users, cleaner, NewBroker(), 24*time.Hour)
}

func TestService_PostStampsExpiry(t *testing.T) {
	store := new(mockStatusStore)
	svc := newTestService(store, new(mockUserStore), new(mockCleaner))

	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	var created *domain.Status
	store.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.Status)
	}).Return(nil)

	st, err := svc.Post(context.Background(), 7, CreateStatusRequest{
		Caption:         "beach day",
		MediaExternalID: "ext-123",
		MediaKind:       "video",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, int64(7), st.OwnerID)
	require.NotNil(t, st.ExpiresAt)
	assert.True(t, st.ExpiresAt.Equal(frozen.Add(24*time.Hour)), "new statuses carry an explicit expiry")
	require.NotNil(t, st.Media())
	assert.Equal(t, domain.MediaKindVideo, st.Media().Kind)
}

func TestService_PostRejectsEmpty(t *testing.T) {
	svc := newTestService(new(mockStatusStore), new(mockUserStore), new(mockCleaner))

	_, err := svc.Post(context.Background(), 7, CreateStatusRequest{Caption: "   "})
	assert.ErrorIs(t, err, ErrEmptyStatus)
}

func TestService_DeleteOwnershipGate(t *testing.T) {
	store := new(mockStatusStore)
	cleaner := new(mockCleaner)
	svc := newTestService(store, new(mockUserStore), cleaner)

	st := expiredStatus("s1", true)
	st.OwnerID = 1
	store.On("GetByID", mock.Anything, "s1").Return(&st, nil)

	err := svc.Delete(context.Background(), 2, "s1")

	assert.ErrorIs(t, err, ErrNotOwner)
	// Rejected before any side effect: no row delete, no media delete.
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	cleaner.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_DeleteNotFound(t *testing.T) {
	store := new(mockStatusStore)
	svc := newTestService(store, new(mockUserStore), new(mockCleaner))

	store.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	err := svc.Delete(context.Background(), 1, "ghost")
	assert.ErrorIs(t, err, ErrStatusNotFound)
}

func TestService_DeleteRunsCleanupHook(t *testing.T) {
	store := new(mockStatusStore)
	cleaner := new(mockCleaner)
	svc := newTestService(store, new(mockUserStore), cleaner)

	st := expiredStatus("s1", true)
	st.OwnerID = 1
	store.On("GetByID", mock.Anything, "s1").Return(&st, nil)
	store.On("Delete", mock.Anything, "s1").Return(int64(1), nil)
	cleaner.On("Delete", mock.Anything, "ext-s1", domain.MediaKindImage).Return(nil)

	err := svc.Delete(context.Background(), 1, "s1")

	require.NoError(t, err)
	cleaner.AssertExpectations(t)
}

func TestService_DeleteToleratesSweepRace(t *testing.T) {
	store := new(mockStatusStore)
	cleaner := new(mockCleaner)
	svc := newTestService(store, new(mockUserStore), cleaner)

	st := expiredStatus("s1", true)
	st.OwnerID = 1
	store.On("GetByID", mock.Anything, "s1").Return(&st, nil)
	// The sweep got there first: zero rows affected.
	store.On("Delete", mock.Anything, "s1").Return(int64(0), nil)
	// The cleanup hook still fires with the snapshot; the CDN-side
	// double delete is a no-op by contract.
	cleaner.On("Delete", mock.Anything, "ext-s1", domain.MediaKindImage).Return(nil)

	err := svc.Delete(context.Background(), 1, "s1")
	assert.NoError(t, err)
}

func TestService_ViewAndReactRequireLiveStatus(t *testing.T) {
	store := new(mockStatusStore)
	svc := newTestService(store, new(mockUserStore), new(mockCleaner))

	dead := expiredStatus("s1", false)
	store.On("GetByID", mock.Anything, "s1").Return(&dead, nil)

	assert.ErrorIs(t, svc.View(context.Background(), 2, "s1"), ErrStatusNotFound)
	assert.ErrorIs(t, svc.React(context.Background(), 2, "s1", "🔥"), ErrStatusNotFound)
}

func TestService_ReactLastWriteWins(t *testing.T) {
	store := new(mockStatusStore)
	svc := newTestService(store, new(mockUserStore), new(mockCleaner))

	live := domain.Status{ID: "s1", OwnerID: 1, CreatedAt: time.Now()}
	store.On("GetByID", mock.Anything, "s1").Return(&live, nil)
	store.On("SetReaction", mock.Anything, "s1", int64(2), "🔥").Return(nil).Once()
	store.On("SetReaction", mock.Anything, "s1", int64(2), "❤️").Return(nil).Once()

	require.NoError(t, svc.React(context.Background(), 2, "s1", "🔥"))
	require.NoError(t, svc.React(context.Background(), 2, "s1", "❤️"))
	store.AssertExpectations(t)
}

func TestService_ReactRejectsEmptyEmoji(t *testing.T) {
	svc := newTestService(new(mockStatusStore), new(mockUserStore), new(mockCleaner))
	assert.ErrorIs(t, svc.React(context.Background(), 2, "s1", "  "), ErrEmptyEmoji)
}

func TestService_GetHidesPrivateOwners(t *testing.T) {
	store := new(mockStatusStore)
	users := new(mockUserStore)
	svc := newTestService(store, users, new(mockCleaner))

	live := domain.Status{ID: "s1", OwnerID: 1, CreatedAt: time.Now()}
	store.On("GetByID", mock.Anything, "s1").Return(&live, nil)
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{
		ID:             1,
		StatusAudience: domain.AudienceNobody,
	}, nil)

	_, err := svc.Get(context.Background(), 2, "s1")
	assert.ErrorIs(t, err, ErrStatusNotFound)
}

func TestService_FeedDerivesLiveView(t *testing.T) {
	store := new(mockStatusStore)
	users := new(mockUserStore)
	svc := newTestService(store, users, new(mockCleaner))

	now := time.Now()
	candidates := []domain.Status{
		{ID: "live", OwnerID: 1, CreatedAt: now.Add(-time.Hour)},
		{ID: "dead", OwnerID: 1, CreatedAt: now.Add(-30 * time.Hour)},
	}
	store.On("ListCandidates", mock.Anything, int64(2)).Return(candidates, nil)
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Name: "Mom"}, nil)

	feed, err := svc.Feed(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Len(t, feed[0].Statuses, 1)
	assert.Equal(t, "live", feed[0].Statuses[0].ID)
	require.NotNil(t, feed[0].Owner)
	assert.Equal(t, "Mom", feed[0].Owner.Name)
}

func recvEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event arrived")
		return Event{}
	}
}

func TestService_SubscribeForHidesPrivateOwners(t *testing.T) {
	store := new(mockStatusStore)
	users := new(mockUserStore)
	svc := newTestService(store, users, new(mockCleaner))

	users.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, StatusAudience: domain.AudienceNobody}, nil)
	users.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.User{ID: 3, StatusAudience: domain.AudienceEveryone}, nil)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, unsubscribe := svc.SubscribeFor(ctx, 2)
	defer unsubscribe()

	_, err := svc.Post(ctx, 1, CreateStatusRequest{Caption: "just for me"})
	require.NoError(t, err)
	shared, err := svc.Post(ctx, 3, CreateStatusRequest{Caption: "hello everyone"})
	require.NoError(t, err)

	// The private owner's upsert was dropped; the first delivered event is
	// the shared one.
	ev := recvEvent(t, events)
	assert.Equal(t, EventUpsert, ev.Type)
	require.NotNil(t, ev.Record)
	assert.Equal(t, shared.ID, ev.Record.ID)
}

func TestService_SubscribeForKeepsOwnStatuses(t *testing.T) {
	store := new(mockStatusStore)
	users := new(mockUserStore)
	svc := newTestService(store, users, new(mockCleaner))

	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, unsubscribe := svc.SubscribeFor(ctx, 1)
	defer unsubscribe()

	own, err := svc.Post(ctx, 1, CreateStatusRequest{Caption: "mine"})
	require.NoError(t, err)

	ev := recvEvent(t, events)
	require.NotNil(t, ev.Record)
	assert.Equal(t, own.ID, ev.Record.ID)
	// Own upserts skip the privacy lookup entirely.
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_SubscribeForPassesDeletes(t *testing.T) {
	broker := NewBroker()
	svc := NewService(new(mockStatusStore), new(mockUserStore), new(mockCleaner), broker, 24*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, unsubscribe := svc.SubscribeFor(ctx, 2)
	defer unsubscribe()

	broker.Publish(Event{Type: EventDelete, StatusID: "gone"})

	ev := recvEvent(t, events)
	assert.Equal(t, EventDelete, ev.Type)
	assert.Equal(t, "gone", ev.StatusID)
}
