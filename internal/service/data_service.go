package service

import (
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/repository"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
)

// ExportDocument collects the four persisted documents.
func (s *appService) ExportDocument() domain.ExportDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings := s.state.Settings
	return domain.ExportDocument{
		UserProfile: cloneProfile(s.state.UserProfile),
		WorkoutPlan: s.state.WorkoutPlan.Clone(),
		WorkoutLogs: domain.CloneLogs(s.state.WorkoutLogs),
		Settings:    &settings,
		ExportedAt:  s.now().UTC(),
		Version:     domain.ExportVersion,
	}
}

// Export renders the export document as indented JSON.
func (s *appService) Export() ([]byte, error) {
	return json.MarshalIndent(s.ExportDocument(), "", "  ")
}

// Import merges an export document into the state: every key present in data
// overwrites its counterpart, absent keys are left alone. It reports false for
// input that is not an export document or when a write fails; keys written
// before the failure stay written.
func (s *appService) Import(ctx context.Context, data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		log.Printf("ERROR: Error importing data: not a JSON object")
		return false
	}
	var doc domain.ExportDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		log.Printf("ERROR: Error importing data: %v", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.UserProfile != nil {
		if _, err := s.storeProfileLocked(ctx, *doc.UserProfile); err != nil {
			return false
		}
	}
	if doc.WorkoutPlan != nil {
		if _, err := s.storePlanLocked(ctx, *doc.WorkoutPlan); err != nil {
			return false
		}
	}
	if doc.WorkoutLogs != nil {
		if err := s.storeLogsLocked(ctx, domain.CloneLogs(doc.WorkoutLogs)); err != nil {
			return false
		}
	}
	if doc.Settings != nil {
		if _, err := s.storeSettingsLocked(ctx, *doc.Settings); err != nil {
			return false
		}
	}
	log.Printf("INFO: Data imported (profile: %t, plan: %t, logs: %t, settings: %t)",
		doc.UserProfile != nil, doc.WorkoutPlan != nil, doc.WorkoutLogs != nil, doc.Settings != nil)
	return true
}

// ClearAll removes every persisted document and resets the state to defaults.
// All removals are attempted even when one fails; a document that could not be
// removed keeps its in-memory value.
func (s *appService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for _, key := range repository.AllKeys {
		if err := s.remove(ctx, key); err != nil {
			errs = append(errs, err)
			continue
		}
		s.resetKey(key)
	}
	s.refreshOnboarded()
	if len(errs) > 0 {
		log.Printf("WARN: Data partially cleared (%d of %d documents failed)", len(errs), len(repository.AllKeys))
		return errors.Join(errs...)
	}
	log.Printf("INFO: All data cleared")
	return nil
}

// resetKey must be called with mu held.
func (s *appService) resetKey(key repository.StateKey) {
	switch key {
	case repository.KeyUserProfile:
		s.state.UserProfile = nil
	case repository.KeyWorkoutPlan:
		s.state.WorkoutPlan = nil
	case repository.KeyWorkoutLogs:
		s.state.WorkoutLogs = []domain.WorkoutLog{}
	case repository.KeySettings:
		s.state.Settings = domain.DefaultSettings()
	}
}
