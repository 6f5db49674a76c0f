package chat

import "errors"

var (
	ErrNotParticipant       = errors.New("you are not a participant of this conversation")
	ErrBlocked              = errors.New("user has blocked you or you have blocked user")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrEmptyContent         = errors.New("message content cannot be empty")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrCannotMessageSelf    = errors.New("cannot send message to yourself")
	ErrCannotBlockSelf      = errors.New("cannot block yourself")
)
