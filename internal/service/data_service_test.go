package service

import (
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/repository"
	"alcyxob/fitgpt/internal/repository/memory"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededApp(t *testing.T, repo repository.StateRepository) *appService {
	t.Helper()
	ctx := context.Background()
	app, _ := newTestApp(t, repo)
	_, err := app.SetProfile(ctx, validProfile())
	require.NoError(t, err)
	_, err = app.SetPlan(ctx, *testPlan())
	require.NoError(t, err)
	_, err = app.UpsertLog(ctx, domain.WorkoutLog{Date: "2024-01-08", Completed: true})
	require.NoError(t, err)
	key := "sk-test"
	_, err = app.UpdateSettings(ctx, domain.SettingsUpdate{APIKey: &key})
	require.NoError(t, err)
	return app
}

func TestAppService_Export(t *testing.T) {
	app := seededApp(t, nil)

	data, err := app.Export()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \""), "export is indented with two spaces")

	var doc domain.ExportDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, domain.ExportVersion, doc.Version)
	assert.True(t, doc.ExportedAt.Equal(fixedNow))
	require.NotNil(t, doc.UserProfile)
	require.NotNil(t, doc.WorkoutPlan)
	assert.Equal(t, "plan-1", doc.WorkoutPlan.ID)
	assert.Len(t, doc.WorkoutLogs, 1)
	require.NotNil(t, doc.Settings)
	assert.Equal(t, "sk-test", doc.Settings.APIKey)
}

func TestAppService_ExportEmptyState(t *testing.T) {
	app, _ := newTestApp(t, nil)

	var raw map[string]json.RawMessage
	data, err := app.Export()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "null", string(raw["userProfile"]))
	assert.Equal(t, "null", string(raw["workoutPlan"]))
	assert.Equal(t, "[]", string(raw["workoutLogs"]))
}

func TestAppService_ImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := seededApp(t, nil)
	data, err := source.Export()
	require.NoError(t, err)

	target, _ := newTestApp(t, nil)
	require.True(t, target.Import(ctx, data))

	state := target.Snapshot()
	assert.True(t, state.IsOnboarded)
	assert.Equal(t, "plan-1", state.WorkoutPlan.ID)
	assert.Equal(t, source.Logs(), state.WorkoutLogs)
	assert.Equal(t, source.Settings(), state.Settings)
}

func TestAppService_ImportMergesPresentKeys(t *testing.T) {
	ctx := context.Background()
	app := seededApp(t, nil)

	ok := app.Import(ctx, []byte(`{"settings":{"apiKey":"","darkMode":true,"notifications":false,"weekStartsOn":1}}`))
	require.True(t, ok)

	assert.Equal(t, domain.AppSettings{DarkMode: true, WeekStartsOn: 1}, app.Settings())
	assert.NotNil(t, app.Profile(), "absent keys are left alone")
	assert.NotNil(t, app.Plan())
	assert.Len(t, app.Logs(), 1)
}

func TestAppService_ImportStampsProfile(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t, nil)

	profile := validProfile()
	profile.CreatedAt = time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC)
	profile.UpdatedAt = profile.CreatedAt
	data, err := json.Marshal(map[string]any{"userProfile": profile})
	require.NoError(t, err)

	require.True(t, app.Import(ctx, data))
	imported := app.Profile()
	require.NotNil(t, imported)
	assert.True(t, imported.CreatedAt.Equal(profile.CreatedAt))
	assert.True(t, imported.UpdatedAt.Equal(fixedNow))
}

func TestAppService_ImportRejectsInvalidInput(t *testing.T) {
	inputs := map[string]string{
		"empty":     "",
		"not json":  "fitgpt backup",
		"array":     `[{"settings":{}}]`,
		"null":      "null",
		"truncated": `{"settings":{"darkMode":tr`,
		"bad types": `{"workoutLogs":"many"}`,
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			app := seededApp(t, nil)
			before := app.Snapshot()

			assert.False(t, app.Import(context.Background(), []byte(input)))
			assert.Equal(t, before, app.Snapshot())
		})
	}
}

func TestAppService_ImportWriteFailure(t *testing.T) {
	repo := &failingRepo{StateRepository: memory.NewStateRepository(), failKey: repository.KeySettings}
	app, _ := newTestApp(t, repo)

	ok := app.Import(context.Background(), []byte(`{"workoutLogs":[{"date":"2024-01-01","completed":true}],"settings":{"darkMode":true}}`))
	assert.False(t, ok)
	assert.Len(t, app.Logs(), 1, "keys written before the failure stay written")
	assert.False(t, app.Settings().DarkMode)
}

func TestAppService_ClearAll(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStateRepository()
	app := seededApp(t, repo)

	require.NoError(t, app.ClearAll(ctx))

	state := app.Snapshot()
	assert.Nil(t, state.UserProfile)
	assert.Nil(t, state.WorkoutPlan)
	assert.Empty(t, state.WorkoutLogs)
	assert.Equal(t, domain.DefaultSettings(), state.Settings)
	assert.False(t, state.IsOnboarded)

	for _, key := range repository.AllKeys {
		_, err := repo.Get(ctx, key)
		assert.ErrorIs(t, err, repository.ErrNotFound, string(key))
	}
}

func TestAppService_ClearAllReportsFailures(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewStateRepository()
	seededApp(t, mem)
	repo := &failingRepo{StateRepository: mem, failKey: repository.KeyWorkoutPlan}
	app, _ := newTestApp(t, repo)
	require.NoError(t, app.Load(ctx))
	require.NotNil(t, app.Profile())

	err := app.ClearAll(ctx)
	require.Error(t, err)

	// The other documents were still removed.
	_, getErr := repo.Get(ctx, repository.KeySettings)
	assert.True(t, errors.Is(getErr, repository.ErrNotFound))
	assert.Nil(t, app.Profile())
	assert.Empty(t, app.Logs())
	assert.False(t, app.Snapshot().IsOnboarded)

	// The plan could not be removed, so memory still matches the store.
	require.NotNil(t, app.Plan())
	assert.Equal(t, "plan-1", app.Plan().ID)

	reloaded, _ := newTestApp(t, mem)
	require.NoError(t, reloaded.Load(ctx))
	require.NotNil(t, reloaded.Plan())
	assert.Equal(t, "plan-1", reloaded.Plan().ID)
	assert.Nil(t, reloaded.Profile())
}
