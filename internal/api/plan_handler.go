package api

import (
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/planner"
	"alcyxob/fitgpt/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves the weekly plan and its generation.
type PlanHandler struct {
	appService service.AppService
}

func NewPlanHandler(appService service.AppService) *PlanHandler {
	return &PlanHandler{appService: appService}
}

// --- Response Structs ---

type StageResponse struct {
	Stage   planner.Stage `json:"stage"`
	Message string        `json:"message"`
}

type GeneratePlanResponse struct {
	Plan   *domain.WorkoutPlan `json:"plan"`
	Stages []StageResponse     `json:"stages"`
}

type PlanStatusResponse struct {
	IsGeneratingPlan bool `json:"isGeneratingPlan"`
	HasPlan          bool `json:"hasPlan"`
}

// MapStagesToResponse pairs every reached stage with its display message.
func MapStagesToResponse(stages []planner.Stage) []StageResponse {
	out := make([]StageResponse, 0, len(stages))
	for _, s := range stages {
		out = append(out, StageResponse{Stage: s, Message: s.Message()})
	}
	return out
}

// --- Handler Methods ---

// GetPlan godoc
// @Summary Get the current workout plan
// @Tags Plan
// @Produce json
// @Success 200 {object} domain.WorkoutPlan
// @Failure 404 {object} gin.H "No plan yet"
// @Router /plan [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan := h.appService.Plan()
	if plan == nil {
		abortWithError(c, http.StatusNotFound, "Workout plan not found")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// SetPlan godoc
// @Summary Replace the workout plan
// @Description Stores an edited plan as is. Workout logs are kept.
// @Tags Plan
// @Accept json
// @Produce json
// @Param plan body domain.WorkoutPlan true "Seven-day plan"
// @Success 200 {object} domain.WorkoutPlan
// @Failure 400 {object} gin.H "Invalid plan"
// @Router /plan [put]
func (h *PlanHandler) SetPlan(c *gin.Context) {
	var plan domain.WorkoutPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	stored, err := h.appService.SetPlan(c.Request.Context(), plan)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// ClearPlan godoc
// @Summary Delete the workout plan
// @Tags Plan
// @Success 204
// @Router /plan [delete]
func (h *PlanHandler) ClearPlan(c *gin.Context) {
	if err := h.appService.ClearPlan(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GeneratePlan godoc
// @Summary Generate a new plan from the profile
// @Description Calls the completions endpoint with the stored API key. Existing logs are kept.
// @Tags Plan
// @Produce json
// @Success 200 {object} GeneratePlanResponse
// @Failure 400 {object} gin.H "No API key or no profile"
// @Failure 409 {object} gin.H "A generation is already running"
// @Failure 422 {object} gin.H "API key rejected"
// @Failure 429 {object} gin.H "Rate limited"
// @Failure 502 {object} gin.H "Upstream failure"
// @Router /plan/generate [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	plan, stages, err := h.appService.GeneratePlan(c.Request.Context())
	if err != nil {
		code := errorStatus(err)
		message := err.Error()
		if code == http.StatusInternalServerError {
			message = "Failed to generate workout plan"
		}
		c.AbortWithStatusJSON(code, gin.H{"error": message, "stages": MapStagesToResponse(stages)})
		return
	}
	c.JSON(http.StatusOK, GeneratePlanResponse{Plan: plan, Stages: MapStagesToResponse(stages)})
}

// GetStatus godoc
// @Summary Report whether a generation is running
// @Tags Plan
// @Produce json
// @Success 200 {object} PlanStatusResponse
// @Router /plan/status [get]
func (h *PlanHandler) GetStatus(c *gin.Context) {
	state := h.appService.Snapshot()
	c.JSON(http.StatusOK, PlanStatusResponse{
		IsGeneratingPlan: state.IsGenerating,
		HasPlan:          state.WorkoutPlan != nil,
	})
}
