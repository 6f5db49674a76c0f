package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"famchat/internal/domain"
)

// rule maps a keyword to a canned reply. Matching is case-insensitive
// substring; first hit wins, in order.
type rule struct {
	keyword string
	reply   string
}

var defaultRules = []rule{
	{"help", "Hi! I can answer questions about FamChat. Try asking about statuses, voice notes, or privacy."},
	{"status", "Statuses disappear 24 hours after you post them. Post one from the Updates tab!"},
	{"voice", "Hold the microphone button in any chat to record a voice note."},
	{"privacy", "You can hide your statuses and turn off read receipts under Settings → Privacy."},
	{"call", "Calls are coming soon. For now you can see your call history in the Calls tab."},
	{"hello", "Hello! How can I help you today?"},
	{"hi", "Hello! How can I help you today?"},
}

const fallbackReply = "Sorry, I didn't get that. Type \"help\" to see what I can do."

// Service is the canned-response helper bot. No model, no state; a fixed
// rule table keeps replies predictable for kids and grandparents alike.
type Service struct {
	rules []rule
}

func NewService() *Service {
	return &Service{rules: defaultRules}
}

var ErrAccountNotFound = errors.New("bot account not found")

// UserStore is the slice of the user repository the bot needs.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

// EnsureAccount verifies the configured bot user exists and carries the bot
// flag, setting the flag when it is missing. Reply dispatch keys on the
// flag, so an unflagged account would silently never answer.
func EnsureAccount(ctx context.Context, users UserStore, id int64) error {
	u, err := users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load bot account: %w", err)
	}
	if u == nil {
		return ErrAccountNotFound
	}
	if u.IsBot {
		return nil
	}
	u.IsBot = true
	if err := users.Update(ctx, u); err != nil {
		return fmt.Errorf("flag bot account: %w", err)
	}
	return nil
}

// Reply returns the canned response for a message.
func (s *Service) Reply(content string) string {
	lowered := strings.ToLower(content)
	for _, r := range s.rules {
		if strings.Contains(lowered, r.keyword) {
			return r.reply
		}
	}
	return fallbackReply
}
