package chat

import (
	"context"
	"fmt"
	"strings"

	"famchat/internal/domain"
)

type Service struct {
	chatStore ChatStore
	userStore UserStore
	notifier  Notifier
	responder Responder
}

func NewService(chatStore ChatStore, userStore UserStore, notifier Notifier, responder Responder) *Service {
	return &Service{
		chatStore: chatStore,
		userStore: userStore,
		notifier:  notifier,
		responder: responder,
	}
}

// GetOrCreateConversation returns the existing thread with the recipient or
// starts a new one, optionally sending a first message.
func (s *Service) GetOrCreateConversation(ctx context.Context, senderID int64, req CreateConversationRequest) (*domain.Conversation, *domain.Message, error) {
	if senderID == req.RecipientID {
		return nil, nil, ErrCannotMessageSelf
	}

	recipient, err := s.userStore.GetByID(ctx, req.RecipientID)
	if err != nil || recipient == nil {
		return nil, nil, ErrRecipientNotFound
	}

	blocked, err := s.chatStore.IsBlocked(ctx, senderID, req.RecipientID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check block status: %w", err)
	}
	if blocked {
		return nil, nil, ErrBlocked
	}

	conv, err := s.chatStore.GetConversationByParticipants(ctx, senderID, req.RecipientID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find conversation: %w", err)
	}

	if conv == nil {
		a, b := senderID, req.RecipientID
		if a > b {
			a, b = b, a
		}
		conv = &domain.Conversation{ParticipantA: a, ParticipantB: b}
		if err := s.chatStore.CreateConversation(ctx, conv); err != nil {
			return nil, nil, fmt.Errorf("failed to create conversation: %w", err)
		}
	}

	var msg *domain.Message
	if strings.TrimSpace(req.InitialMessage) != "" {
		msg, _, _ = s.SendMessage(ctx, senderID, conv.ID, SendMessageRequest{Content: req.InitialMessage})
	}

	_ = s.enrichConversation(ctx, conv, senderID)
	return conv, msg, nil
}

func (s *Service) GetUserConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	convs, err := s.chatStore.GetUserConversations(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversations: %w", err)
	}

	for i := range convs {
		_ = s.enrichConversation(ctx, &convs[i], userID)
	}
	return convs, nil
}

func (s *Service) IsParticipant(ctx context.Context, userID, conversationID int64) bool {
	conv, err := s.chatStore.GetConversationByID(ctx, conversationID)
	if err != nil || conv == nil {
		return false
	}
	return conv.ParticipantA == userID || conv.ParticipantB == userID
}

func (s *Service) enrichConversation(ctx context.Context, conv *domain.Conversation, currentUserID int64) error {
	otherUserID := conv.ParticipantA
	if otherUserID == currentUserID {
		otherUserID = conv.ParticipantB
	}

	otherUser, _ := s.userStore.GetByID(ctx, otherUserID)
	conv.OtherUser = otherUser

	msgs, _ := s.chatStore.GetMessages(ctx, conv.ID, 1, nil)
	if len(msgs) > 0 {
		conv.LastMessage = &msgs[0]
	}

	unread, _ := s.chatStore.CountUnread(ctx, conv.ID, currentUserID)
	conv.UnreadCount = int(unread)
	return nil
}

// SendMessage stores a text message. When the other participant is the
// helper bot, the bot's canned reply is stored too and returned as the
// second message.
func (s *Service) SendMessage(ctx context.Context, senderID, conversationID int64, req SendMessageRequest) (*domain.Message, *domain.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, nil, ErrEmptyContent
	}

	conv, recipientID, err := s.authorizeSend(ctx, senderID, conversationID)
	if err != nil {
		return nil, nil, err
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        req.Content,
		MessageType:    domain.MessageTypeText,
	}
	if err := s.storeMessage(ctx, msg); err != nil {
		return nil, nil, err
	}

	botReply := s.maybeBotReply(ctx, conv, recipientID, req.Content)
	return msg, botReply, nil
}

// SendVoiceMessage stores a voice-note message referencing CDN media.
func (s *Service) SendVoiceMessage(ctx context.Context, senderID, conversationID int64, req SendVoiceRequest) (*domain.Message, error) {
	_, _, err := s.authorizeSend(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	kind := domain.MediaKindVideo
	duration := req.DurationSeconds
	msg := &domain.Message{
		ConversationID:  conversationID,
		SenderID:        senderID,
		Content:         "[Voice note]",
		MessageType:     domain.MessageTypeVoice,
		MediaExternalID: &req.MediaExternalID,
		MediaKind:       &kind,
		VoiceDuration:   &duration,
	}
	if err := s.storeMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// SendImageMessage stores an image message referencing CDN media.
func (s *Service) SendImageMessage(ctx context.Context, senderID, conversationID int64, req SendImageRequest) (*domain.Message, error) {
	_, _, err := s.authorizeSend(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Caption)
	if content == "" {
		content = "[Photo]"
	}
	kind := domain.MediaKindImage
	msg := &domain.Message{
		ConversationID:  conversationID,
		SenderID:        senderID,
		Content:         content,
		MessageType:     domain.MessageTypeImage,
		MediaExternalID: &req.MediaExternalID,
		MediaKind:       &kind,
	}
	if err := s.storeMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Service) GetMessages(ctx context.Context, userID, conversationID int64, limit int, beforeID *int64) ([]domain.Message, bool, error) {
	if !s.IsParticipant(ctx, userID, conversationID) {
		return nil, false, ErrNotParticipant
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	msgs, err := s.chatStore.GetMessages(ctx, conversationID, limit+1, beforeID)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(msgs) > limit
	if hasMore {
		msgs = msgs[:limit]
	}

	for i := range msgs {
		u, _ := s.userStore.GetByID(ctx, msgs[i].SenderID)
		msgs[i].Sender = u
	}
	return msgs, hasMore, nil
}

// MarkAsRead flags the counterpart's messages as read. When the reader has
// read receipts disabled, the write is skipped so the sender never learns.
func (s *Service) MarkAsRead(ctx context.Context, userID, conversationID int64) (int64, error) {
	if !s.IsParticipant(ctx, userID, conversationID) {
		return 0, ErrNotParticipant
	}

	reader, err := s.userStore.GetByID(ctx, userID)
	if err == nil && reader != nil && !reader.ReadReceipts {
		return 0, nil
	}

	return s.chatStore.MarkMessagesAsRead(ctx, conversationID, userID)
}

func (s *Service) BlockUser(ctx context.Context, blockerID, blockedID int64, reason string) error {
	if blockerID == blockedID {
		return ErrCannotBlockSelf
	}
	return s.chatStore.BlockUser(ctx, blockerID, blockedID, reason)
}

func (s *Service) UnblockUser(ctx context.Context, blockerID, blockedID int64) error {
	return s.chatStore.UnblockUser(ctx, blockerID, blockedID)
}

// GetRecipientID returns the other participant of a thread.
func (s *Service) GetRecipientID(conv *domain.Conversation, senderID int64) int64 {
	if conv.ParticipantA == senderID {
		return conv.ParticipantB
	}
	return conv.ParticipantA
}

// NotifyIfOffline stores a notification when websocket delivery failed.
func (s *Service) NotifyIfOffline(ctx context.Context, recipientID int64, conv *domain.Conversation, msg *domain.Message) error {
	sender, err := s.userStore.GetByID(ctx, msg.SenderID)
	if err != nil || sender == nil {
		return err
	}

	preview := msg.Content
	if len(preview) > 50 {
		preview = preview[:50] + "..."
	}
	switch msg.MessageType {
	case domain.MessageTypeImage:
		preview = "Photo"
	case domain.MessageTypeVoice:
		preview = "Voice note"
	}

	title := fmt.Sprintf("Message from %s", sender.Name)
	return s.notifier.Create(ctx, recipientID, domain.NotifNewMessage, title, preview, map[string]any{
		"conversation_id": conv.ID,
		"message_id":      msg.ID,
		"sender_id":       msg.SenderID,
		"sender_name":     sender.Name,
	})
}

func (s *Service) authorizeSend(ctx context.Context, senderID, conversationID int64) (*domain.Conversation, int64, error) {
	conv, err := s.chatStore.GetConversationByID(ctx, conversationID)
	if err != nil || conv == nil {
		return nil, 0, ErrConversationNotFound
	}

	if conv.ParticipantA != senderID && conv.ParticipantB != senderID {
		return nil, 0, ErrNotParticipant
	}

	recipientID := s.GetRecipientID(conv, senderID)

	blocked, _ := s.chatStore.IsBlocked(ctx, senderID, recipientID)
	if blocked {
		return nil, 0, ErrBlocked
	}
	return conv, recipientID, nil
}

func (s *Service) storeMessage(ctx context.Context, msg *domain.Message) error {
	if err := s.chatStore.CreateMessage(ctx, msg); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	_ = s.chatStore.UpdateLastMessageAt(ctx, msg.ConversationID)

	sender, _ := s.userStore.GetByID(ctx, msg.SenderID)
	msg.Sender = sender
	return nil
}

// maybeBotReply appends the helper bot's canned response when the message
// was addressed to a bot account.
func (s *Service) maybeBotReply(ctx context.Context, conv *domain.Conversation, recipientID int64, content string) *domain.Message {
	if s.responder == nil {
		return nil
	}

	recipient, err := s.userStore.GetByID(ctx, recipientID)
	if err != nil || recipient == nil || !recipient.IsBot {
		return nil
	}

	reply := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       recipientID,
		Content:        s.responder.Reply(content),
		MessageType:    domain.MessageTypeText,
	}
	if err := s.storeMessage(ctx, reply); err != nil {
		return nil
	}
	return reply
}
