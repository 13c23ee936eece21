package domain

import (
	"time"
)

// ExportVersion is written into every export document.
const ExportVersion = "1.0"

// ExportDocument is the portable form of the whole app state.
// On import every present key overwrites its counterpart; absent keys are left alone.
type ExportDocument struct {
	UserProfile *UserProfile `json:"userProfile"`
	WorkoutPlan *WorkoutPlan `json:"workoutPlan"`
	WorkoutLogs []WorkoutLog `json:"workoutLogs"`
	Settings    *AppSettings `json:"settings"`
	ExportedAt  time.Time    `json:"exportedAt"`
	Version     string       `json:"version"`
}

// Backup describes an export document stored in object storage.
// The file itself lives in the bucket under ObjectKey.
type Backup struct {
	ObjectKey   string    `json:"objectKey"`
	FileName    string    `json:"fileName"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
	DownloadURL string    `json:"downloadUrl,omitempty"` // Presigned, not stored
}
