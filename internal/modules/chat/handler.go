package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"famchat/internal/domain"
	"famchat/internal/pkg/response"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// RegisterRoutes registers chat routes under the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	chatGroup := rg.Group("/chat")
	{
		chatGroup.POST("/conversations", h.CreateConversation)
		chatGroup.GET("/conversations", h.ListConversations)

		chatGroup.GET("/conversations/:id/messages", h.GetMessages)
		chatGroup.POST("/conversations/:id/messages", h.SendMessage)
		chatGroup.POST("/conversations/:id/voice", h.SendVoice)
		chatGroup.POST("/conversations/:id/images", h.SendImage)
		chatGroup.POST("/conversations/:id/read", h.MarkAsRead)

		chatGroup.POST("/users/:id/block", h.BlockUser)
		chatGroup.DELETE("/users/:id/block", h.UnblockUser)
	}
}

func (h *Handler) CreateConversation(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	conv, initialMsg, err := h.service.GetOrCreateConversation(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "CHAT_ERROR", err.Error())
		return
	}

	out := gin.H{"conversation": ToConversationResponse(conv)}
	if initialMsg != nil {
		out["initial_message"] = ToMessageResponse(initialMsg)
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) ListConversations(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	convs, err := h.service.GetUserConversations(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CHAT_ERROR", "Failed to load conversations")
		return
	}

	out := make([]*ConversationResponse, 0, len(convs))
	for i := range convs {
		out = append(out, ToConversationResponse(&convs[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"conversations": out})
}

func (h *Handler) GetMessages(c *gin.Context) {
	userID := c.GetInt64("user_id")
	convID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	var beforeID *int64
	if raw := c.Query("before_id"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			beforeID = &v
		}
	}

	msgs, hasMore, err := h.service.GetMessages(c.Request.Context(), userID, convID, limit, beforeID)
	if err != nil {
		if errors.Is(err, ErrNotParticipant) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "CHAT_ERROR", "Failed to load messages")
		return
	}

	out := make([]*MessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, ToMessageResponse(&msgs[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"messages": out, "has_more": hasMore})
}

func (h *Handler) SendMessage(c *gin.Context) {
	userID := c.GetInt64("user_id")
	convID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	msg, botReply, err := h.service.SendMessage(c.Request.Context(), userID, convID, req)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.deliver(c, userID, convID, msg)
	out := gin.H{"message": ToMessageResponse(msg)}
	if botReply != nil {
		out["bot_reply"] = ToMessageResponse(botReply)
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) SendVoice(c *gin.Context) {
	userID := c.GetInt64("user_id")
	convID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	var req SendVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	msg, err := h.service.SendVoiceMessage(c.Request.Context(), userID, convID, req)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.deliver(c, userID, convID, msg)
	response.Success(c, http.StatusCreated, gin.H{"message": ToMessageResponse(msg)})
}

func (h *Handler) SendImage(c *gin.Context) {
	userID := c.GetInt64("user_id")
	convID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	var req SendImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	msg, err := h.service.SendImageMessage(c.Request.Context(), userID, convID, req)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.deliver(c, userID, convID, msg)
	response.Success(c, http.StatusCreated, gin.H{"message": ToMessageResponse(msg)})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	userID := c.GetInt64("user_id")
	convID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	n, err := h.service.MarkAsRead(c.Request.Context(), userID, convID)
	if err != nil {
		if errors.Is(err, ErrNotParticipant) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "CHAT_ERROR", "Failed to mark as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked_read": n})
}

func (h *Handler) BlockUser(c *gin.Context) {
	userID := c.GetInt64("user_id")
	blockedID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req BlockUserRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.service.BlockUser(c.Request.Context(), userID, blockedID, req.Reason); err != nil {
		response.Error(c, http.StatusBadRequest, "CHAT_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blocked": true})
}

func (h *Handler) UnblockUser(c *gin.Context) {
	userID := c.GetInt64("user_id")
	blockedID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.service.UnblockUser(c.Request.Context(), userID, blockedID); err != nil {
		response.Error(c, http.StatusInternalServerError, "CHAT_ERROR", "Failed to unblock user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unblocked": true})
}

// deliver pushes the message over the websocket hub; offline recipients get
// a stored notification instead.
func (h *Handler) deliver(c *gin.Context, senderID, convID int64, msg *domain.Message) {
	conv, err := h.service.chatStore.GetConversationByID(c.Request.Context(), convID)
	if err != nil || conv == nil {
		return
	}
	recipientID := h.service.GetRecipientID(conv, senderID)

	payload := gin.H{"type": "new_message", "message": ToMessageResponse(msg)}
	if h.hub.SendToUser(recipientID, payload) {
		return
	}
	_ = h.service.NotifyIfOffline(c.Request.Context(), recipientID, conv, msg)
}

func (h *Handler) sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrConversationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrBlocked), errors.Is(err, ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, "CHAT_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "CHAT_ERROR", "Failed to send message")
	}
}
