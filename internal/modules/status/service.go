package status

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"famchat/internal/domain"
	"famchat/internal/pkg/media"
)

// Store is the status repository surface the service consumes.
type Store interface {
	Create(ctx context.Context, st *domain.Status) error
	GetByID(ctx context.Context, id string) (*domain.Status, error)
	Delete(ctx context.Context, id string) (int64, error)
	ListCandidates(ctx context.Context, viewerID int64) ([]domain.Status, error)
	AddView(ctx context.Context, statusID string, viewerID int64) error
	SetReaction(ctx context.Context, statusID string, viewerID int64, emoji string) error
	GetViews(ctx context.Context, statusID string) ([]domain.StatusView, error)
	GetReactions(ctx context.Context, statusID string) ([]domain.StatusReaction, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Service owns the status lifecycle: posting, viewing, reacting, and the
// owner-gated delete with its media cleanup hook. The sweep and backfill
// live in their own types; all three share the same media.Cleaner so the
// idempotence contract is implemented exactly once.
type Service struct {
	store   Store
	users   UserStore
	cleaner media.Cleaner
	broker  *Broker
	ttl     time.Duration
	now     func() time.Time
}

func NewService(store Store, users UserStore, cleaner media.Cleaner, broker *Broker, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = domain.StatusTTL
	}
	return &Service{
		store:   store,
		users:   users,
		cleaner: cleaner,
		broker:  broker,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Post creates a status with expires_at stamped up front. New records always
// carry an explicit expiry; only pre-TTL rows rely on the created_at default.
func (s *Service) Post(ctx context.Context, ownerID int64, req CreateStatusRequest) (*domain.Status, error) {
	caption := strings.TrimSpace(req.Caption)
	if caption == "" && req.MediaExternalID == "" {
		return nil, ErrEmptyStatus
	}

	now := s.now()
	expires := now.Add(s.ttl)

	st := &domain.Status{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Caption:   caption,
		CreatedAt: now,
		ExpiresAt: &expires,
	}
	if req.MediaExternalID != "" {
		kind := domain.MediaKindImage
		if req.MediaKind == string(domain.MediaKindVideo) {
			kind = domain.MediaKindVideo
		}
		st.MediaExternalID = &req.MediaExternalID
		st.MediaKind = &kind
	}

	if err := s.store.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("create status: %w", err)
	}

	s.broker.Publish(Event{Type: EventUpsert, Record: st})
	return st, nil
}

// Feed returns the viewer's live status feed, derived from the candidate
// records at a single clock reading.
func (s *Service) Feed(ctx context.Context, viewerID int64) ([]OwnerFeed, error) {
	candidates, err := s.store.ListCandidates(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load feed candidates: %w", err)
	}

	feeds := Derive(candidates, s.now())
	for i := range feeds {
		owner, err := s.users.GetByID(ctx, feeds[i].OwnerID)
		if err == nil {
			feeds[i].Owner = owner
		}
	}
	return feeds, nil
}

// Candidates exposes the raw visible records, for feed subscribers that
// maintain their own live view.
func (s *Service) Candidates(ctx context.Context, viewerID int64) ([]domain.Status, error) {
	return s.store.ListCandidates(ctx, viewerID)
}

// SubscribeFor returns the change stream scoped to one viewer. Upserts from
// owners whose privacy setting hides statuses from the viewer are dropped
// before they reach the subscriber, mirroring the candidate query's filter;
// deletes and stream errors always pass through. The stream ends when ctx
// is cancelled or the returned unsubscribe func runs.
func (s *Service) SubscribeFor(ctx context.Context, viewerID int64) (<-chan Event, func()) {
	events, unsubscribe := s.broker.Subscribe()

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		for ev := range events {
			if !s.eventVisibleTo(ctx, viewerID, ev) {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, unsubscribe
}

func (s *Service) eventVisibleTo(ctx context.Context, viewerID int64, ev Event) bool {
	if ev.Type != EventUpsert || ev.Record == nil || ev.Record.OwnerID == viewerID {
		return true
	}
	owner, err := s.users.GetByID(ctx, ev.Record.OwnerID)
	if err != nil || owner == nil {
		// An owner we cannot check stays hidden.
		return false
	}
	return owner.SharesStatusesWith(viewerID)
}

// Get returns one live status enriched with its views and reactions.
func (s *Service) Get(ctx context.Context, viewerID int64, id string) (*domain.Status, error) {
	st, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil || !IsLive(st, s.now()) {
		return nil, ErrStatusNotFound
	}

	owner, err := s.users.GetByID(ctx, st.OwnerID)
	if err == nil && owner != nil {
		if !owner.SharesStatusesWith(viewerID) {
			return nil, ErrStatusNotFound
		}
		st.Owner = owner
	}

	if views, err := s.store.GetViews(ctx, id); err == nil {
		for _, v := range views {
			st.ViewedBy = append(st.ViewedBy, v.ViewerID)
		}
	}
	if reactions, err := s.store.GetReactions(ctx, id); err == nil {
		st.Reactions = make(map[int64]string, len(reactions))
		for _, r := range reactions {
			st.Reactions[r.ViewerID] = r.Emoji
		}
	}
	return st, nil
}

// View records that the viewer opened the status. Append-only; repeat
// views are no-ops.
func (s *Service) View(ctx context.Context, viewerID int64, id string) error {
	st, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil || !IsLive(st, s.now()) {
		return ErrStatusNotFound
	}
	return s.store.AddView(ctx, id, viewerID)
}

// React stores the viewer's reaction, replacing any previous one.
func (s *Service) React(ctx context.Context, viewerID int64, id, emoji string) error {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return ErrEmptyEmoji
	}

	st, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil || !IsLive(st, s.now()) {
		return ErrStatusNotFound
	}
	return s.store.SetReaction(ctx, id, viewerID, emoji)
}

// Delete is the explicit, owner-gated deletion path. The ownership check
// runs before any side effect; the media cleanup runs after the row delete
// and never fails the request.
func (s *Service) Delete(ctx context.Context, callerID int64, id string) error {
	st, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load status %s: %w", id, err)
	}
	if st == nil {
		return ErrStatusNotFound
	}
	if st.OwnerID != callerID {
		return ErrNotOwner
	}

	// Zero rows means the sweep raced us and already deleted the row;
	// the delete is idempotent, so that still counts as success.
	if _, err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete status %s: %w", id, err)
	}

	s.CleanupDeleted(ctx, st)
	s.broker.Publish(Event{Type: EventDelete, StatusID: id})
	return nil
}

// CleanupDeleted is the delete-triggered cleanup hook: given the last-known
// snapshot of a deleted status, best-effort delete its CDN media. The row
// is already gone by the time this runs, so nothing here may fail the
// deletion; errors are logged and swallowed. Double invocation (the sweep
// cleans media and this fires again) is fine, the cleaner treats a missing
// object as success.
func (s *Service) CleanupDeleted(ctx context.Context, snapshot *domain.Status) {
	ref := snapshot.Media()
	if ref == nil {
		return
	}
	if err := s.cleaner.Delete(ctx, ref.ExternalID, ref.Kind); err != nil {
		log.Printf("status cleanup: media delete failed for %s (%s/%s): %v",
			snapshot.ID, ref.Kind, ref.ExternalID, err)
		return
	}
	log.Printf("status cleanup: media deleted for %s (%s/%s)", snapshot.ID, ref.Kind, ref.ExternalID)
}
