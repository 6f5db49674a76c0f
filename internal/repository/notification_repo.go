package repository

import (
	"context"

	"gorm.io/gorm"

	"famchat/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID int64, unseenOnly bool, limit int) ([]domain.Notification, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit)
	if unseenOnly {
		q = q.Where("seen = ?", false)
	}

	var out []domain.Notification
	err := q.Find(&out).Error
	return out, err
}

func (r *NotificationRepository) MarkSeen(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Update("seen", true)
	return res.RowsAffected, res.Error
}
