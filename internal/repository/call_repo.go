package repository

import (
	"context"

	"gorm.io/gorm"

	"famchat/internal/domain"
)

type CallRepository struct {
	db *gorm.DB
}

func NewCallRepository(db *gorm.DB) *CallRepository {
	return &CallRepository{db: db}
}

func (r *CallRepository) Create(ctx context.Context, call *domain.CallRecord) error {
	return r.db.WithContext(ctx).Create(call).Error
}

func (r *CallRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.CallRecord, error) {
	var out []domain.CallRecord
	err := r.db.WithContext(ctx).
		Where("caller_id = ? OR callee_id = ?", userID, userID).
		Order("started_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, err
}
