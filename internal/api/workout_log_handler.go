package api

import (
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WorkoutLogHandler serves the log history and the per-day checklist.
type WorkoutLogHandler struct {
	appService service.AppService
}

func NewWorkoutLogHandler(appService service.AppService) *WorkoutLogHandler {
	return &WorkoutLogHandler{appService: appService}
}

// ListLogs godoc
// @Summary List all workout logs
// @Tags Logs
// @Produce json
// @Success 200 {array} domain.WorkoutLog
// @Router /logs [get]
func (h *WorkoutLogHandler) ListLogs(c *gin.Context) {
	c.JSON(http.StatusOK, h.appService.Logs())
}

// ReplaceLogs godoc
// @Summary Replace the whole log history
// @Tags Logs
// @Accept json
// @Produce json
// @Param logs body []domain.WorkoutLog true "Logs, one per date"
// @Success 200 {array} domain.WorkoutLog
// @Failure 400 {object} gin.H "Invalid or duplicate dates"
// @Router /logs [put]
func (h *WorkoutLogHandler) ReplaceLogs(c *gin.Context) {
	var logs []domain.WorkoutLog
	if err := c.ShouldBindJSON(&logs); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if logs == nil {
		logs = []domain.WorkoutLog{}
	}
	if err := h.appService.SetLogs(c.Request.Context(), logs); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.appService.Logs())
}

// ClearLogs godoc
// @Summary Delete all workout logs
// @Tags Logs
// @Success 204
// @Router /logs [delete]
func (h *WorkoutLogHandler) ClearLogs(c *gin.Context) {
	if err := h.appService.ClearLogs(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpsertLog godoc
// @Summary Create or replace the log of a date
// @Tags Logs
// @Accept json
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param log body domain.WorkoutLog true "Log"
// @Success 200 {object} domain.WorkoutLog
// @Failure 400 {object} gin.H "Invalid date or body"
// @Router /logs/{date} [put]
func (h *WorkoutLogHandler) UpsertLog(c *gin.Context) {
	date := c.Param("date")
	var entry domain.WorkoutLog
	if err := c.ShouldBindJSON(&entry); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if entry.Date != "" && entry.Date != date {
		abortWithError(c, http.StatusBadRequest, "Log date does not match the URL")
		return
	}
	entry.Date = date

	stored, err := h.appService.UpsertLog(c.Request.Context(), entry)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// UpdateLog godoc
// @Summary Partially update the log of a date
// @Tags Logs
// @Accept json
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param update body domain.LogUpdate true "Fields to change"
// @Success 200 {object} domain.WorkoutLog
// @Failure 404 {object} gin.H "No log for this date"
// @Router /logs/{date} [patch]
func (h *WorkoutLogHandler) UpdateLog(c *gin.Context) {
	var update domain.LogUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	stored, err := h.appService.UpdateLog(c.Request.Context(), c.Param("date"), update)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// ToggleExercise godoc
// @Summary Check or uncheck one exercise of a day
// @Description The day counts as completed once every exercise is checked.
// @Tags Logs
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} domain.WorkoutLog
// @Failure 400 {object} gin.H "Invalid date or rest day"
// @Failure 404 {object} gin.H "No plan or unknown exercise"
// @Router /logs/{date}/exercises/{exerciseId}/toggle [post]
func (h *WorkoutLogHandler) ToggleExercise(c *gin.Context) {
	stored, err := h.appService.ToggleExercise(c.Request.Context(), c.Param("date"), c.Param("exerciseId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// CompleteWorkout godoc
// @Summary Mark every exercise of a day as done
// @Tags Logs
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} domain.WorkoutLog
// @Failure 400 {object} gin.H "Invalid date or rest day"
// @Failure 404 {object} gin.H "No plan"
// @Router /logs/{date}/complete [post]
func (h *WorkoutLogHandler) CompleteWorkout(c *gin.Context) {
	stored, err := h.appService.CompleteWorkout(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}
