package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"famchat/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	ListAll(ctx context.Context) ([]domain.User, error)
}

type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		u.Name = name
	}
	if req.About != nil {
		u.About = strings.TrimSpace(*req.About)
	}
	if req.AvatarURL != nil {
		u.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

func (s *Service) UpdatePrivacy(ctx context.Context, userID int64, req UpdatePrivacyRequest) (*domain.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.StatusAudience != nil {
		u.StatusAudience = domain.StatusAudience(*req.StatusAudience)
	}
	if req.ReadReceipts != nil {
		u.ReadReceipts = *req.ReadReceipts
	}
	if req.ShowLastSeen != nil {
		u.ShowLastSeen = *req.ShowLastSeen
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update privacy settings: %w", err)
	}
	return u, nil
}

// Contacts lists every family member except the caller, hiding last-seen
// for members who turned it off.
func (s *Service) Contacts(ctx context.Context, userID int64) ([]domain.User, error) {
	all, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		if u.ID == userID {
			continue
		}
		if !u.ShowLastSeen {
			u.LastSeenAt = nil
		}
		out = append(out, u)
	}
	return out, nil
}
