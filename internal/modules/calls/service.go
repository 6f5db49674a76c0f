package calls

import (
	"context"
	"errors"
	"fmt"
	"time"

	"famchat/internal/domain"
)

var (
	ErrPeerNotFound  = errors.New("peer not found")
	ErrCannotLogSelf = errors.New("cannot log a call with yourself")
)

type CallStore interface {
	Create(ctx context.Context, call *domain.CallRecord) error
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.CallRecord, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Service keeps the call history. There is no signalling; clients log
// finished or missed calls after the fact.
type Service struct {
	calls CallStore
	users UserStore
}

func NewService(calls CallStore, users UserStore) *Service {
	return &Service{calls: calls, users: users}
}

func (s *Service) LogCall(ctx context.Context, callerID int64, req LogCallRequest) (*domain.CallRecord, error) {
	if callerID == req.CalleeID {
		return nil, ErrCannotLogSelf
	}

	callee, err := s.users.GetByID(ctx, req.CalleeID)
	if err != nil || callee == nil {
		return nil, ErrPeerNotFound
	}

	call := &domain.CallRecord{
		CallerID:   callerID,
		CalleeID:   req.CalleeID,
		Kind:       domain.CallKind(req.Kind),
		Status:     domain.CallStatus(req.Status),
		DurationMS: req.DurationMS,
		StartedAt:  req.StartedAt,
	}
	if call.StartedAt.IsZero() {
		call.StartedAt = time.Now()
	}

	if err := s.calls.Create(ctx, call); err != nil {
		return nil, fmt.Errorf("failed to log call: %w", err)
	}
	return call, nil
}

func (s *Service) History(ctx context.Context, userID int64, limit, offset int) ([]domain.CallRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.calls.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load call history: %w", err)
	}

	for i := range records {
		caller, _ := s.users.GetByID(ctx, records[i].CallerID)
		callee, _ := s.users.GetByID(ctx, records[i].CalleeID)
		records[i].Caller = caller
		records[i].Callee = callee
	}
	return records, nil
}
