package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"famchat/internal/domain"
	"famchat/internal/repository"
)

type Service struct {
	repo *repository.NotificationRepository
}

func NewService(repo *repository.NotificationRepository) *Service {
	return &Service{repo: repo}
}

// Create stores a notification for a user who missed a live delivery.
func (s *Service) Create(ctx context.Context, userID int64, typ domain.NotificationType, title, body string, data map[string]any) error {
	n := &domain.Notification{
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode notification data: %w", err)
		}
		n.Data = string(raw)
	}
	return s.repo.Create(ctx, n)
}

func (s *Service) List(ctx context.Context, userID int64, unseenOnly bool, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.repo.ListForUser(ctx, userID, unseenOnly, limit)
}

func (s *Service) MarkSeen(ctx context.Context, userID int64, ids []int64) (int64, error) {
	return s.repo.MarkSeen(ctx, userID, ids)
}
