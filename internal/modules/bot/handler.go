package bot

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"famchat/internal/pkg/response"
)

type AskRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bot/ask", h.Ask)
}

func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reply": h.service.Reply(req.Message)})
}
