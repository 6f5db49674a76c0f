package calls

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"famchat/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	callsGroup := rg.Group("/calls")
	{
		callsGroup.POST("", h.LogCall)
		callsGroup.GET("", h.History)
	}
}

func (h *Handler) LogCall(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req LogCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	call, err := h.service.LogCall(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPeerNotFound), errors.Is(err, ErrCannotLogSelf):
			response.Error(c, http.StatusBadRequest, "CALL_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "CALL_ERROR", "Failed to log call")
		}
		return
	}

	response.Success(c, http.StatusCreated, call)
}

func (h *Handler) History(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := h.service.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CALL_ERROR", "Failed to load call history")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"calls": records})
}
