package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"famchat/internal/pkg/response"
)

type MarkSeenRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	notifGroup := rg.Group("/notifications")
	{
		notifGroup.GET("", h.List)
		notifGroup.POST("/seen", h.MarkSeen)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	unseenOnly := c.Query("unseen") == "true"

	notifs, err := h.service.List(c.Request.Context(), userID, unseenOnly, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "NOTIFICATION_ERROR", "Failed to load notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": notifs})
}

func (h *Handler) MarkSeen(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req MarkSeenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	n, err := h.service.MarkSeen(c.Request.Context(), userID, req.IDs)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "NOTIFICATION_ERROR", "Failed to mark notifications seen")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked_seen": n})
}
