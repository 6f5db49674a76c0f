package status

import (
	"context"
	"sort"
	"sync"
	"time"

	"famchat/internal/domain"
)

type EventType string

const (
	EventUpsert EventType = "upsert"
	EventDelete EventType = "delete"
)

// Event is one change from the status store's read path: a new or updated
// record, a deletion, or a stream failure.
type Event struct {
	Type     EventType
	Record   *domain.Status // set for upserts
	StatusID string         // set for deletes
	Err      error          // set when the stream itself failed
}

// OwnerFeed groups one member's live statuses, newest first.
type OwnerFeed struct {
	OwnerID  int64           `json:"owner_id"`
	Owner    *domain.User    `json:"owner,omitempty"`
	Statuses []domain.Status `json:"statuses"`
}

// Derive computes the visible feed from raw candidate records and a single
// clock reading: live records only, grouped by owner, newest first within a
// group, groups ordered by their newest status. Pure; both the data-changed
// and the time-passed triggers funnel into this one function.
func Derive(records []domain.Status, now time.Time) []OwnerFeed {
	byOwner := make(map[int64][]domain.Status)
	for _, st := range records {
		if !IsLive(&st, now) {
			continue
		}
		byOwner[st.OwnerID] = append(byOwner[st.OwnerID], st)
	}

	feeds := make([]OwnerFeed, 0, len(byOwner))
	for ownerID, sts := range byOwner {
		sort.Slice(sts, func(i, j int) bool {
			return sts[i].CreatedAt.After(sts[j].CreatedAt)
		})
		feeds = append(feeds, OwnerFeed{OwnerID: ownerID, Statuses: sts})
	}

	sort.Slice(feeds, func(i, j int) bool {
		return feeds[i].Statuses[0].CreatedAt.After(feeds[j].Statuses[0].CreatedAt)
	})

	return feeds
}

// Feed is the live view one subscriber watches: raw records keyed by ID,
// mutated by store events and re-derived on a timer so that statuses age
// out of the view without any store round-trip.
type Feed struct {
	mu      sync.RWMutex
	records map[string]domain.Status
	err     error
}

func NewFeed() *Feed {
	return &Feed{records: make(map[string]domain.Status)}
}

// Load replaces the raw state wholesale, e.g. from the initial query on
// connect or after a retry.
func (f *Feed) Load(records []domain.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = make(map[string]domain.Status, len(records))
	for _, st := range records {
		f.records[st.ID] = st
	}
	f.err = nil
}

// Apply folds one store event into the raw state. A stream error parks the
// feed in an explicit error state; the view must never go silently stale.
func (f *Feed) Apply(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ev.Err != nil {
		f.err = ev.Err
		return
	}

	switch ev.Type {
	case EventUpsert:
		if ev.Record != nil {
			f.records[ev.Record.ID] = *ev.Record
		}
	case EventDelete:
		delete(f.records, ev.StatusID)
	}
}

func (f *Feed) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.err
}

// Snapshot derives the current visible view at now.
func (f *Feed) Snapshot(now time.Time) []OwnerFeed {
	f.mu.RLock()
	records := make([]domain.Status, 0, len(f.records))
	for _, st := range f.records {
		records = append(records, st)
	}
	f.mu.RUnlock()

	return Derive(records, now)
}

// Run folds incoming events into the feed and re-derives the view both on
// each event and on every interval tick, so records silently age out even
// when no event arrives. emit receives the fresh view and the current
// stream error state. Returns when ctx is cancelled or events closes.
func (f *Feed) Run(ctx context.Context, events <-chan Event, interval time.Duration, emit func(view []OwnerFeed, err error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			f.Apply(ev)
			emit(f.Snapshot(time.Now()), f.Err())
		case <-ticker.C:
			emit(f.Snapshot(time.Now()), f.Err())
		}
	}
}
