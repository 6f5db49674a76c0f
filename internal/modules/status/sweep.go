package status

import (
	"context"
	"fmt"
	"log"
	"time"

	"famchat/internal/domain"
	"famchat/internal/pkg/media"
)

// SweepStore is the slice of the status repository the sweep needs.
type SweepStore interface {
	FindExpired(ctx context.Context, now time.Time, limit int) ([]domain.Status, error)
	DeleteBatch(ctx context.Context, ids []string) error
}

// Sweeper physically deletes expired statuses and their CDN media. It runs
// as a one-shot unit of work on an external cron cadence; no state survives
// between runs beyond what is in the store.
type Sweeper struct {
	store     SweepStore
	cleaner   media.Cleaner
	batchSize int
	now       func() time.Time
}

func NewSweeper(store SweepStore, cleaner media.Cleaner, batchSize int) *Sweeper {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Sweeper{
		store:     store,
		cleaner:   cleaner,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// Run performs one bounded sweep pass and returns how many statuses it
// deleted. Media deletes are best-effort: a CDN failure is logged and never
// blocks the row deletion (an orphaned media object is a storage cost, not
// a correctness problem). The row batch is atomic; if it fails, the rows
// still match the expiry query and the next run retries them.
func (s *Sweeper) Run(ctx context.Context) (int, error) {
	now := s.now()

	expired, err := s.store.FindExpired(ctx, now, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("sweep: query expired statuses: %w", err)
	}
	if len(expired) == 0 {
		log.Println("sweep: no expired statuses")
		return 0, nil
	}

	ids := make([]string, 0, len(expired))
	for i := range expired {
		st := &expired[i]
		ids = append(ids, st.ID)

		ref := st.Media()
		if ref == nil {
			continue
		}
		if err := s.cleaner.Delete(ctx, ref.ExternalID, ref.Kind); err != nil {
			log.Printf("sweep: media delete failed for status %s (%s/%s): %v",
				st.ID, ref.Kind, ref.ExternalID, err)
		}
	}

	if err := s.store.DeleteBatch(ctx, ids); err != nil {
		return 0, fmt.Errorf("sweep: batch delete %d statuses: %w", len(ids), err)
	}

	log.Printf("sweep: deleted %d expired statuses", len(ids))
	return len(ids), nil
}
