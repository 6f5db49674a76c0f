package status

import (
	"context"
	"fmt"
	"log"
	"time"

	"famchat/internal/domain"
)

// BackfillStore is the slice of the status repository the backfill needs.
type BackfillStore interface {
	FindMissingExpiry(ctx context.Context, limit int) ([]domain.Status, error)
	SetExpiryBatch(ctx context.Context, expiries map[string]time.Time) error
}

// Backfiller migrates pre-TTL rows into the expiry scheme by deriving
// expires_at from created_at. One-shot maintenance, never part of the
// steady-state runtime, and it never touches media.
type Backfiller struct {
	store     BackfillStore
	batchSize int
	now       func() time.Time
}

func NewBackfiller(store BackfillStore, batchSize int) *Backfiller {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Backfiller{
		store:     store,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// Run processes one batch and returns how many rows it matched. Operators
// (or the cmd wrapper) call it repeatedly until it returns zero; each pass
// removes its rows from the NULL-expiry query, so the loop terminates.
//
// Rows with an unusable created_at get now + TTL. That can extend a status's
// visible lifetime to "24 hours from when the backfill ran"; the fallback is
// logged distinctly so operators can see it.
func (b *Backfiller) Run(ctx context.Context) (int, error) {
	missing, err := b.store.FindMissingExpiry(ctx, b.batchSize)
	if err != nil {
		return 0, fmt.Errorf("backfill: query statuses without expiry: %w", err)
	}
	if len(missing) == 0 {
		return 0, nil
	}

	now := b.now()
	expiries := make(map[string]time.Time, len(missing))
	for i := range missing {
		st := &missing[i]
		if st.CreatedAt.IsZero() {
			expiries[st.ID] = now.Add(domain.StatusTTL)
			log.Printf("backfill: status %s has no usable created_at, expiry set to now+%s", st.ID, domain.StatusTTL)
			continue
		}
		expiries[st.ID] = st.CreatedAt.Add(domain.StatusTTL)
	}

	if err := b.store.SetExpiryBatch(ctx, expiries); err != nil {
		return 0, fmt.Errorf("backfill: write %d expiries: %w", len(expiries), err)
	}

	log.Printf("backfill: set expires_at on %d statuses", len(expiries))
	return len(missing), nil
}
