package status

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"famchat/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers status routes under the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	statusGroup := rg.Group("/statuses")
	{
		statusGroup.POST("", h.PostStatus)
		statusGroup.GET("/feed", h.GetFeed)
		statusGroup.GET("/:id", h.GetStatus)
		statusGroup.POST("/:id/view", h.MarkViewed)
		statusGroup.POST("/:id/react", h.React)
		statusGroup.DELETE("/:id", h.DeleteStatus)
	}
}

func (h *Handler) PostStatus(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	st, err := h.service.Post(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrEmptyStatus) {
			response.Error(c, http.StatusBadRequest, "EMPTY_STATUS", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "STATUS_ERROR", "Failed to create status")
		return
	}

	response.Success(c, http.StatusCreated, st)
}

func (h *Handler) GetFeed(c *gin.Context) {
	userID := c.GetInt64("user_id")

	feed, err := h.service.Feed(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FEED_ERROR", "Failed to load feed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"feed": feed})
}

func (h *Handler) GetStatus(c *gin.Context) {
	userID := c.GetInt64("user_id")

	st, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrStatusNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Status not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "STATUS_ERROR", "Failed to load status")
		return
	}

	response.Success(c, http.StatusOK, st)
}

func (h *Handler) MarkViewed(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.View(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrStatusNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Status not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "STATUS_ERROR", "Failed to mark status viewed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"viewed": true})
}

func (h *Handler) React(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.React(c.Request.Context(), userID, c.Param("id"), req.Emoji); err != nil {
		switch {
		case errors.Is(err, ErrStatusNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Status not found")
		case errors.Is(err, ErrEmptyEmoji):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "STATUS_ERROR", "Failed to react")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reacted": true})
}

func (h *Handler) DeleteStatus(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrStatusNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Status not found")
		case errors.Is(err, ErrNotOwner):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only delete your own statuses")
		default:
			response.Error(c, http.StatusInternalServerError, "STATUS_ERROR", "Failed to delete status")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
