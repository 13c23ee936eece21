package api

import (
	"alcyxob/fitgpt/internal/planner"
	"alcyxob/fitgpt/internal/service"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// AuthMiddleware requires a session token from POST /auth/session when the
// passcode lock is enabled. With the lock disabled every request passes.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims := &service.SessionClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(authService.GetJWTSecret()), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// errorStatus maps service and planner errors to HTTP status codes.
func errorStatus(err error) int {
	var upstream *planner.UpstreamError
	switch {
	case errors.Is(err, planner.ErrConfiguration),
		errors.Is(err, service.ErrProfileMissing):
		return http.StatusBadRequest
	// 401 belongs to the passcode lock.
	case errors.Is(err, planner.ErrAuthentication),
		errors.Is(err, service.ErrInvalidAPIKey):
		return http.StatusUnprocessableEntity
	case errors.Is(err, planner.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &upstream),
		errors.Is(err, planner.ErrEmptyResponse),
		errors.Is(err, planner.ErrMalformedPlan):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrGenerationInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, service.ErrNoWorkout),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrBackupNotFound),
		errors.Is(err, service.ErrAuthDisabled):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidMonth),
		errors.Is(err, service.ErrInvalidLog),
		errors.Is(err, service.ErrRestDay),
		errors.Is(err, service.ErrInvalidProfile),
		errors.Is(err, service.ErrInvalidPlan),
		errors.Is(err, service.ErrInvalidSettings),
		errors.Is(err, service.ErrInvalidBackupKey),
		errors.Is(err, service.ErrInvalidBackup):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrBackupsDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondWithError aborts with the status of err. Unexpected errors are
// logged and hidden from the client.
func respondWithError(c *gin.Context, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, code, "An unexpected error occurred")
		return
	}
	abortWithError(c, code, err.Error())
}
