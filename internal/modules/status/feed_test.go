package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famchat/internal/domain"
)

func statusAt(id string, owner int64, created time.Time) domain.Status {
	return domain.Status{ID: id, OwnerID: owner, CreatedAt: created}
}

func TestDerive_FiltersAndSorts(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := base.Add(12 * time.Hour)

	records := []domain.Status{
		statusAt("a1", 1, base.Add(2*time.Hour)),
		statusAt("a2", 1, base.Add(5*time.Hour)),
		statusAt("b1", 2, base.Add(6*time.Hour)),
		// Expired two hours before now.
		statusAt("old", 2, base.Add(-26*time.Hour)),
	}

	feed := Derive(records, now)

	require.Len(t, feed, 2)
	// Owner 2 has the newest status overall, so their group comes first.
	assert.Equal(t, int64(2), feed[0].OwnerID)
	require.Len(t, feed[0].Statuses, 1)
	assert.Equal(t, "b1", feed[0].Statuses[0].ID)

	assert.Equal(t, int64(1), feed[1].OwnerID)
	require.Len(t, feed[1].Statuses, 2)
	assert.Equal(t, "a2", feed[1].Statuses[0].ID, "newest first within a group")
	assert.Equal(t, "a1", feed[1].Statuses[1].ID)
}

func TestDerive_EmptyWhenAllExpired(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.Status{
		statusAt("x", 1, base),
	}

	assert.Empty(t, Derive(records, base.Add(25*time.Hour)))
}

func TestFeed_AgesOutOnLaterSnapshot(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	feed := NewFeed()
	feed.Load([]domain.Status{statusAt("x", 1, base)})

	// Same raw state, two clock readings: only time passed.
	assert.Len(t, feed.Snapshot(base.Add(23*time.Hour)), 1)
	assert.Empty(t, feed.Snapshot(base.Add(25*time.Hour)))
}

func TestFeed_ApplyUpsertAndDelete(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := base.Add(time.Hour)

	feed := NewFeed()

	st := statusAt("x", 1, base)
	feed.Apply(Event{Type: EventUpsert, Record: &st})
	require.Len(t, feed.Snapshot(now), 1)

	feed.Apply(Event{Type: EventDelete, StatusID: "x"})
	assert.Empty(t, feed.Snapshot(now))
}

func TestFeed_StreamErrorIsExplicit(t *testing.T) {
	feed := NewFeed()
	feed.Apply(Event{Err: errors.New("permission denied")})

	require.Error(t, feed.Err())

	// Reloading (the retry path) clears the error state.
	feed.Load(nil)
	assert.NoError(t, feed.Err())
}

func TestFeed_RunReactsToEventsAndTicks(t *testing.T) {
	base := time.Now().Add(-time.Minute)

	feed := NewFeed()
	events := make(chan Event, 1)
	views := make(chan []OwnerFeed, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go feed.Run(ctx, events, 10*time.Millisecond, func(view []OwnerFeed, err error) {
		views <- view
	})

	st := statusAt("x", 1, base)
	events <- Event{Type: EventUpsert, Record: &st}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case view := <-views:
			if len(view) == 1 {
				return // upsert reflected, either by the event or by a tick
			}
		case <-deadline:
			t.Fatal("feed never emitted the upserted status")
		}
	}
}
