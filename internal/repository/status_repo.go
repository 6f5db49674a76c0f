package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"famchat/internal/domain"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) Create(ctx context.Context, st *domain.Status) error {
	return r.db.WithContext(ctx).Create(st).Error
}

// GetByID returns (nil, nil) when the status does not exist.
func (r *StatusRepository) GetByID(ctx context.Context, id string) (*domain.Status, error) {
	var st domain.Status
	err := r.db.WithContext(ctx).First(&st, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// Delete removes one status row. Returns the number of rows deleted so the
// caller can distinguish not-found (0) without treating it as an error.
func (r *StatusRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Status{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// ListCandidates returns every status the viewer is allowed to see,
// newest first. Liveness is deliberately not filtered here: expiry is
// evaluated at read time by the feed, against a single clock.
func (r *StatusRepository) ListCandidates(ctx context.Context, viewerID int64) ([]domain.Status, error) {
	var out []domain.Status
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = statuses.owner_id").
		Where("statuses.owner_id = ? OR users.status_audience <> ?", viewerID, domain.AudienceNobody).
		Order("statuses.created_at DESC").
		Find(&out).Error
	return out, err
}

// FindExpired returns up to limit statuses whose explicit expiry has passed.
// Rows with NULL expires_at are ignored here; the backfill is responsible
// for giving them one, and the read path already hides them once stale.
func (r *StatusRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]domain.Status, error) {
	var out []domain.Status
	err := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeleteBatch removes the given statuses and their view/reaction rows in a
// single transaction: either every row goes or none does, so a failed run
// leaves the expired rows in place for the next sweep to retry.
func (r *StatusRepository) DeleteBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.StatusView{}, "status_id IN ?", ids).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.StatusReaction{}, "status_id IN ?", ids).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Status{}, "id IN ?", ids).Error
	})
}

// FindMissingExpiry returns up to limit statuses that predate the TTL
// scheme (NULL expires_at), for the backfill.
func (r *StatusRepository) FindMissingExpiry(ctx context.Context, limit int) ([]domain.Status, error) {
	var out []domain.Status
	err := r.db.WithContext(ctx).
		Where("expires_at IS NULL").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SetExpiryBatch writes computed expiry timestamps in one transaction.
func (r *StatusRepository) SetExpiryBatch(ctx context.Context, expiries map[string]time.Time) error {
	if len(expiries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, exp := range expiries {
			if err := tx.Model(&domain.Status{}).
				Where("id = ?", id).
				Update("expires_at", exp).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddView appends the viewer to the status's viewed-by set. Re-viewing is
// a no-op thanks to the unique (status_id, viewer_id) index.
func (r *StatusRepository) AddView(ctx context.Context, statusID string, viewerID int64) error {
	view := domain.StatusView{
		StatusID: statusID,
		ViewerID: viewerID,
		ViewedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&view).Error
}

// SetReaction stores one emoji per viewer per status, last write wins.
func (r *StatusRepository) SetReaction(ctx context.Context, statusID string, viewerID int64, emoji string) error {
	reaction := domain.StatusReaction{
		StatusID:  statusID,
		ViewerID:  viewerID,
		Emoji:     emoji,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "status_id"}, {Name: "viewer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"emoji", "updated_at"}),
		}).
		Create(&reaction).Error
}

func (r *StatusRepository) GetViews(ctx context.Context, statusID string) ([]domain.StatusView, error) {
	var out []domain.StatusView
	err := r.db.WithContext(ctx).
		Where("status_id = ?", statusID).
		Order("viewed_at ASC").
		Find(&out).Error
	return out, err
}

func (r *StatusRepository) GetReactions(ctx context.Context, statusID string) ([]domain.StatusReaction, error) {
	var out []domain.StatusReaction
	err := r.db.WithContext(ctx).
		Where("status_id = ?", statusID).
		Find(&out).Error
	return out, err
}
