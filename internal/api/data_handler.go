package api

import (
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/service"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DataHandler serves the whole-state views: snapshot, export/import, reset
// and object storage backups.
type DataHandler struct {
	appService    service.AppService
	backupService service.BackupService
}

func NewDataHandler(appService service.AppService, backupService service.BackupService) *DataHandler {
	return &DataHandler{appService: appService, backupService: backupService}
}

// --- Request/Response Structs ---

type StateResponse struct {
	UserProfile      *domain.UserProfile `json:"userProfile"`
	WorkoutPlan      *domain.WorkoutPlan `json:"workoutPlan"`
	WorkoutLogs      []domain.WorkoutLog `json:"workoutLogs"`
	Settings         SettingsResponse    `json:"settings"`
	IsGeneratingPlan bool                `json:"isGeneratingPlan"`
	IsOnboarded      bool                `json:"isOnboarded"`
}

type ImportResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type RestoreBackupRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// MapStateToResponse converts the state snapshot, masking the API key.
func MapStateToResponse(state domain.AppState) StateResponse {
	return StateResponse{
		UserProfile:      state.UserProfile,
		WorkoutPlan:      state.WorkoutPlan,
		WorkoutLogs:      state.WorkoutLogs,
		Settings:         MapSettingsToResponse(state.Settings),
		IsGeneratingPlan: state.IsGenerating,
		IsOnboarded:      state.IsOnboarded,
	}
}

// --- Handler Methods ---

// GetState godoc
// @Summary Snapshot of the whole app state
// @Tags Data
// @Produce json
// @Success 200 {object} StateResponse
// @Router /state [get]
func (h *DataHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, MapStateToResponse(h.appService.Snapshot()))
}

// Export godoc
// @Summary Download all data as an export document
// @Tags Data
// @Produce json
// @Success 200 {object} domain.ExportDocument
// @Router /data/export [get]
func (h *DataHandler) Export(c *gin.Context) {
	data, err := h.appService.Export()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.BackupFileName(time.Now())))
	c.Data(http.StatusOK, "application/json", data)
}

// Import godoc
// @Summary Merge an export document into the state
// @Description Every key present in the document overwrites the stored one; absent keys are kept.
// @Tags Data
// @Accept json
// @Produce json
// @Param document body domain.ExportDocument true "Export document"
// @Success 200 {object} ImportResponse
// @Failure 400 {object} ImportResponse "Not an export document"
// @Router /data/import [post]
func (h *DataHandler) Import(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ImportResponse{Success: false, Error: "Could not read request body"})
		return
	}
	if !h.appService.Import(c.Request.Context(), data) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ImportResponse{Success: false, Error: "Invalid backup file"})
		return
	}
	c.JSON(http.StatusOK, ImportResponse{Success: true})
}

// ClearAll godoc
// @Summary Delete all data
// @Tags Data
// @Success 204
// @Router /data [delete]
func (h *DataHandler) ClearAll(c *gin.Context) {
	if err := h.appService.ClearAll(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateBackup godoc
// @Summary Store an export in object storage
// @Tags Data
// @Produce json
// @Success 201 {object} domain.Backup
// @Failure 503 {object} gin.H "Backups not configured"
// @Router /data/backups [post]
func (h *DataHandler) CreateBackup(c *gin.Context) {
	backup, err := h.backupService.CreateBackup(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, backup)
}

// RestoreBackup godoc
// @Summary Import a stored backup
// @Tags Data
// @Accept json
// @Produce json
// @Param request body RestoreBackupRequest true "Backup to restore"
// @Success 200 {object} ImportResponse
// @Failure 400 {object} gin.H "Invalid key or backup"
// @Failure 404 {object} gin.H "Backup not found"
// @Failure 503 {object} gin.H "Backups not configured"
// @Router /data/backups/restore [post]
func (h *DataHandler) RestoreBackup(c *gin.Context) {
	var req RestoreBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := h.backupService.RestoreBackup(c.Request.Context(), req.ObjectKey); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ImportResponse{Success: true})
}

// DeleteBackup godoc
// @Summary Delete a stored backup
// @Tags Data
// @Param key query string true "Object key"
// @Success 204
// @Failure 400 {object} gin.H "Invalid key"
// @Failure 503 {object} gin.H "Backups not configured"
// @Router /data/backups [delete]
func (h *DataHandler) DeleteBackup(c *gin.Context) {
	key := c.Query("key")
	if err := h.backupService.DeleteBackup(c.Request.Context(), key); err != nil {
		respondWithError(c, err)
		return
	}
	log.Printf("INFO: Backup %s deleted", key)
	c.Status(http.StatusNoContent)
}
