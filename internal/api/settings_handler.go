package api

import (
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/service"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the app settings. The API key is write-only: responses
// carry a masked form.
type SettingsHandler struct {
	appService service.AppService
}

func NewSettingsHandler(appService service.AppService) *SettingsHandler {
	return &SettingsHandler{appService: appService}
}

// --- Request/Response Structs ---

type SettingsRequest struct {
	DarkMode      bool `json:"darkMode"`
	Notifications bool `json:"notifications"`
	WeekStartsOn  int  `json:"weekStartsOn" binding:"oneof=0 1"`
}

type SettingsPatchRequest struct {
	DarkMode      *bool `json:"darkMode"`
	Notifications *bool `json:"notifications"`
	WeekStartsOn  *int  `json:"weekStartsOn" binding:"omitempty,oneof=0 1"`
}

type APIKeyRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

type SettingsResponse struct {
	APIKey        string `json:"apiKey"` // Masked
	HasAPIKey     bool   `json:"hasApiKey"`
	DarkMode      bool   `json:"darkMode"`
	Notifications bool   `json:"notifications"`
	WeekStartsOn  int    `json:"weekStartsOn"`
}

// maskAPIKey keeps the first and last four characters of long keys.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// MapSettingsToResponse converts settings to their masked response form.
func MapSettingsToResponse(s domain.AppSettings) SettingsResponse {
	return SettingsResponse{
		APIKey:        maskAPIKey(s.APIKey),
		HasAPIKey:     s.APIKey != "",
		DarkMode:      s.DarkMode,
		Notifications: s.Notifications,
		WeekStartsOn:  s.WeekStartsOn,
	}
}

// --- Handler Methods ---

// GetSettings godoc
// @Summary Get the settings
// @Tags Settings
// @Produce json
// @Success 200 {object} SettingsResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, MapSettingsToResponse(h.appService.Settings()))
}

// SetSettings godoc
// @Summary Replace the settings
// @Description Replaces every setting except the API key, which has its own endpoint.
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body SettingsRequest true "Settings"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /settings [put]
func (h *SettingsHandler) SetSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	settings, err := h.appService.UpdateSettings(c.Request.Context(), domain.SettingsUpdate{
		DarkMode:      &req.DarkMode,
		Notifications: &req.Notifications,
		WeekStartsOn:  &req.WeekStartsOn,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSettingsToResponse(settings))
}

// UpdateSettings godoc
// @Summary Partially update the settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param update body SettingsPatchRequest true "Fields to change"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /settings [patch]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req SettingsPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	settings, err := h.appService.UpdateSettings(c.Request.Context(), domain.SettingsUpdate{
		DarkMode:      req.DarkMode,
		Notifications: req.Notifications,
		WeekStartsOn:  req.WeekStartsOn,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSettingsToResponse(settings))
}

// SetAPIKey godoc
// @Summary Validate and store the Anthropic API key
// @Description Sends a minimal request with the key and stores it only if accepted.
// @Tags Settings
// @Accept json
// @Produce json
// @Param key body APIKeyRequest true "API key"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} gin.H "Missing key"
// @Failure 422 {object} gin.H "Key rejected"
// @Router /settings/api-key [put]
func (h *SettingsHandler) SetAPIKey(c *gin.Context) {
	var req APIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	settings, err := h.appService.SetAPIKey(c.Request.Context(), req.APIKey)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSettingsToResponse(settings))
}
