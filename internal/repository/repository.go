package repository

import (
	"context" // Standard for request-scoped deadlines, cancellation signals, etc.
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// StateKey names one of the independently persisted documents.
type StateKey string

const (
	KeyUserProfile StateKey = "fitgpt_user_profile"
	KeyWorkoutPlan StateKey = "fitgpt_workout_plan"
	KeyWorkoutLogs StateKey = "fitgpt_workout_logs"
	KeySettings    StateKey = "fitgpt_settings"
)

// AllKeys lists every persisted document, in the order a full clear removes them.
var AllKeys = []StateKey{KeyUserProfile, KeyWorkoutPlan, KeyWorkoutLogs, KeySettings}

// StateRepository stores whole JSON documents by key. Last write wins.
type StateRepository interface {
	// Get returns the stored document or ErrNotFound.
	Get(ctx context.Context, key StateKey) ([]byte, error)
	// Set replaces the whole document stored under key.
	Set(ctx context.Context, key StateKey, value []byte) error
	// Remove deletes the document. Removing a missing key is not an error.
	Remove(ctx context.Context, key StateKey) error
}
