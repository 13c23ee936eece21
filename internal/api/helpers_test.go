package api_test

import (
	"alcyxob/fitgpt/internal/api"
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/planner"
	"alcyxob/fitgpt/internal/repository/memory"
	"alcyxob/fitgpt/internal/service"
	"alcyxob/fitgpt/internal/storage"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, apiKey string, profile domain.UserProfile) (*domain.WorkoutPlan, []planner.Stage, error) {
	args := m.Called(ctx, apiKey, profile)
	plan, _ := args.Get(0).(*domain.WorkoutPlan)
	stages, _ := args.Get(1).([]planner.Stage)
	return plan, stages, args.Error(2)
}

func (m *mockGenerator) ValidateAPIKey(ctx context.Context, apiKey string) bool {
	return m.Called(ctx, apiKey).Bool(0)
}

type mockFileStorage struct {
	mock.Mock
}

func (m *mockFileStorage) PutObject(ctx context.Context, key, contentType string, body []byte) error {
	return m.Called(ctx, key, contentType, body).Error(0)
}

func (m *mockFileStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, expires)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type envOptions struct {
	passcode string
	backups  bool
}

type testEnv struct {
	router *gin.Engine
	app    service.AppService
	auth   service.AuthService
	gen    *mockGenerator
	files  *mockFileStorage
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	gen := new(mockGenerator)
	files := new(mockFileStorage)
	t.Cleanup(func() {
		gen.AssertExpectations(t)
		files.AssertExpectations(t)
	})

	app := service.NewAppService(memory.NewStateRepository(), gen)
	require.NoError(t, app.Load(context.Background()))

	auth, err := service.NewAuthService(opts.passcode, testJWTSecret, time.Hour)
	require.NoError(t, err)

	var fileStorage storage.FileStorage
	if opts.backups {
		fileStorage = files
	}
	backups := service.NewBackupService(app, fileStorage, time.Hour)

	router := gin.New()
	api.SetupRoutes(router, auth, app, backups)
	return &testEnv{router: router, app: app, auth: auth, gen: gen, files: files}
}

// do sends a request. A string body is sent as is, anything else as JSON.
func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, rr)["error"].(string)
}

func profileBody() map[string]any {
	return map[string]any{
		"goals":        []string{"strength"},
		"fitnessLevel": "beginner",
		"availability": map[string]any{
			"daysPerWeek":       1,
			"minutesPerSession": 45,
			"preferredDays":     []string{"Monday"},
		},
		"equipment": []string{"bodyweight"},
	}
}

// weekPlan trains on Monday (two exercises) and rests otherwise.
func weekPlan() *domain.WorkoutPlan {
	plan := &domain.WorkoutPlan{ID: "plan-1", DurationWeeks: 4}
	for dow := 0; dow < 7; dow++ {
		day := domain.DailyWorkout{
			ID:        fmt.Sprintf("day-%d", dow),
			DayOfWeek: dow,
			DayName:   domain.DaysOfWeek[dow],
			Type:      "Rest",
			IsRestDay: true,
			Exercises: []domain.Exercise{},
		}
		if dow == 1 {
			day.Type, day.Duration, day.IsRestDay = "Strength Training", 45, false
			day.Exercises = []domain.Exercise{
				{ID: "ex-1", Name: "Squat", Category: domain.CategoryMain},
				{ID: "ex-2", Name: "Push-up", Category: domain.CategoryMain},
			}
		}
		plan.WeeklySchedule = append(plan.WeeklySchedule, day)
	}
	return plan
}

// withProfileAndKey prepares the state plan generation needs.
func (e *testEnv) withProfileAndKey(t *testing.T) {
	t.Helper()
	rr := e.do(t, http.MethodPut, "/api/v1/profile", profileBody())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	key := "sk-ant-test-key-abcdef"
	_, err := e.app.UpdateSettings(context.Background(), domain.SettingsUpdate{APIKey: &key})
	require.NoError(t, err)
}

func (e *testEnv) withPlan(t *testing.T) {
	t.Helper()
	rr := e.do(t, http.MethodPut, "/api/v1/plan", weekPlan())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}
