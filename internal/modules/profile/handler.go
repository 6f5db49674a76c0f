package profile

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.GetProfile)
	rg.PUT("/profile", h.UpdateProfile)
	rg.PUT("/profile/privacy", h.UpdatePrivacy)
	rg.GET("/contacts", h.Contacts)
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	u, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PROFILE_ERROR", "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, u)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PROFILE_ERROR", "Failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, u)
}

func (h *Handler) UpdatePrivacy(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req UpdatePrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	u, err := h.service.UpdatePrivacy(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PROFILE_ERROR", "Failed to update privacy settings")
		return
	}

	response.Success(c, http.StatusOK, u)
}

func (h *Handler) Contacts(c *gin.Context) {
	userID := c.GetInt64("user_id")

	contacts, err := h.service.Contacts(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PROFILE_ERROR", "Failed to list contacts")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contacts": contacts})
}
