package api

import (
	"alcyxob/fitgpt/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type SessionRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// --- Handler Methods ---

// CreateSession godoc
// @Summary Unlock the API with the passcode
// @Description Exchanges the configured passcode for a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body SessionRequest true "Passcode"
// @Success 200 {object} SessionResponse "Session created"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Wrong passcode"
// @Failure 404 {object} gin.H "Passcode lock not enabled"
// @Router /auth/session [post]
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, expiresAt, err := h.authService.Login(c.Request.Context(), req.Passcode)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Token: token, ExpiresAt: expiresAt})
}
