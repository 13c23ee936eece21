package api

import (
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the onboarding profile.
type ProfileHandler struct {
	appService service.AppService
}

func NewProfileHandler(appService service.AppService) *ProfileHandler {
	return &ProfileHandler{appService: appService}
}

// --- Request Structs ---

type AvailabilityRequest struct {
	DaysPerWeek       int      `json:"daysPerWeek" binding:"required,min=1,max=7"`
	MinutesPerSession int      `json:"minutesPerSession" binding:"required,min=1"`
	PreferredDays     []string `json:"preferredDays" binding:"dive,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
}

// ProfileRequest is the payload of the onboarding wizard.
type ProfileRequest struct {
	Goals               []string            `json:"goals"`
	FitnessLevel        domain.FitnessLevel `json:"fitnessLevel" binding:"required,oneof=beginner intermediate advanced"`
	CurrentRoutine      string              `json:"currentRoutine"`
	Availability        AvailabilityRequest `json:"availability"`
	Equipment           []string            `json:"equipment"`
	Limitations         string              `json:"limitations"`
	Preferences         []string            `json:"preferences"`
	Name                string              `json:"name"`
	CompletedOnboarding *bool               `json:"completedOnboarding"` // Defaults to true
}

func (r ProfileRequest) toDomain() domain.UserProfile {
	completed := true
	if r.CompletedOnboarding != nil {
		completed = *r.CompletedOnboarding
	}
	return domain.UserProfile{
		Goals:          nonNil(r.Goals),
		FitnessLevel:   r.FitnessLevel,
		CurrentRoutine: r.CurrentRoutine,
		Availability: domain.Availability{
			DaysPerWeek:       r.Availability.DaysPerWeek,
			MinutesPerSession: r.Availability.MinutesPerSession,
			PreferredDays:     nonNil(r.Availability.PreferredDays),
		},
		Equipment:           nonNil(r.Equipment),
		Limitations:         r.Limitations,
		Preferences:         nonNil(r.Preferences),
		Name:                r.Name,
		CompletedOnboarding: completed,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// --- Handler Methods ---

// GetProfile godoc
// @Summary Get the user profile
// @Tags Profile
// @Produce json
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} gin.H "No profile yet"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile := h.appService.Profile()
	if profile == nil {
		abortWithError(c, http.StatusNotFound, "Profile not found")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SetProfile godoc
// @Summary Complete onboarding or replace the profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body ProfileRequest true "Profile"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /profile [put]
func (h *ProfileHandler) SetProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	profile, err := h.appService.SetProfile(c.Request.Context(), req.toDomain())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Partially update the profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param update body domain.ProfileUpdate true "Fields to change"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} gin.H "Invalid input or no profile yet"
// @Router /profile [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var update domain.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	profile, err := h.appService.UpdateProfile(c.Request.Context(), update)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ClearProfile godoc
// @Summary Delete the profile
// @Tags Profile
// @Success 204
// @Router /profile [delete]
func (h *ProfileHandler) ClearProfile(c *gin.Context) {
	if err := h.appService.ClearProfile(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
