package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"study_coach_backend/internal/config"
	"study_coach_backend/internal/model"
	"study_coach_backend/internal/util"
	"study_coach_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "app-test-secret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "0", Mode: gin.TestMode},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "app.db")},
		JWT:      config.JWTConfig{Secret: testSecret},
		Storage:  config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
	}

	db, err := database.InitDB(&cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return Build(cfg, db, nil)
}

func tokenFor(t *testing.T, userID uint) string {
	t.Helper()
	token, err := util.GenerateJWT(userID, "learner@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, a *App, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealthIsPublic(t *testing.T) {
	a := newTestApp(t)

	code, env := doRequest(t, a, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, code)

	data := decodeData[map[string]any](t, env)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "disabled", data["components"].(map[string]any)["redis"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{"/api/sessions", "/api/goals", "/api/reminders", "/api/analytics/insights"} {
		code, _ := doRequest(t, a, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}

	code, _ := doRequest(t, a, http.MethodGet, "/api/goals", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestGoalProgressAndRemindersFlow(t *testing.T) {
	a := newTestApp(t)
	token := tokenFor(t, 7)
	now := time.Now().UTC()

	code, _ := doRequest(t, a, http.MethodPost, "/api/sessions", token, map[string]any{
		"id":               "session-1",
		"timestamp":        now.Format(time.RFC3339),
		"pdfName":          "calculus.pdf",
		"fullSelectedText": "chain rule",
		"confusionType":    "procedural",
		"masteryScore":     80,
		"timeSpent":        12,
		"analysisComplete": true,
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := doRequest(t, a, http.MethodPost, "/api/goals", token, map[string]any{
		"name":      "One session a week",
		"type":      "sessionCount",
		"target":    1,
		"period":    "weekly",
		"startDate": "2020-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, code)
	weekly := decodeData[model.Goal](t, env)
	assert.NotEmpty(t, weekly.ID)

	code, env = doRequest(t, a, http.MethodPost, "/api/goals", token, map[string]any{
		"name":      "Five sessions today",
		"type":      "sessionCount",
		"target":    5,
		"period":    "daily",
		"startDate": "2020-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, code)
	daily := decodeData[model.Goal](t, env)

	code, env = doRequest(t, a, http.MethodGet, "/api/goals/"+weekly.ID+"/progress", token, nil)
	require.Equal(t, http.StatusOK, code)
	progress := decodeData[model.GoalWithProgress](t, env)
	assert.Equal(t, 1.0, progress.Progress.Current)
	assert.Equal(t, 100, progress.Progress.Percentage)
	assert.True(t, progress.Progress.IsCompleted)

	code, env = doRequest(t, a, http.MethodGet, "/api/goals", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]model.GoalWithProgress](t, env), 2)

	// 当天目标只剩最后一天且进度不足
	code, env = doRequest(t, a, http.MethodGet, "/api/reminders", token, nil)
	require.Equal(t, http.StatusOK, code)
	reminders := decodeData[[]model.Reminder](t, env)
	require.Len(t, reminders, 1)
	assert.Equal(t, daily.ID, reminders[0].GoalID)

	code, _ = doRequest(t, a, http.MethodPost, "/api/reminders/"+daily.ID+"/dismiss", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = doRequest(t, a, http.MethodGet, "/api/reminders", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decodeData[[]model.Reminder](t, env))

	code, env = doRequest(t, a, http.MethodGet, "/api/analytics/streak", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, decodeData[map[string]any](t, env)["streak"].(float64))

	code, env = doRequest(t, a, http.MethodGet, "/api/analytics/insights", token, nil)
	require.Equal(t, http.StatusOK, code)
	insights := decodeData[model.Insights](t, env)
	assert.Equal(t, 1, insights.ValidSessions)
	assert.Equal(t, "procedural", insights.MostFrequentConfusion.Category)
}

func TestInvalidGoalIsBadRequest(t *testing.T) {
	a := newTestApp(t)
	token := tokenFor(t, 3)

	code, _ := doRequest(t, a, http.MethodPost, "/api/goals", token, map[string]any{
		"type":   "sessionCount",
		"target": 0,
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doRequest(t, a, http.MethodPost, "/api/goals", token, map[string]any{
		"type": "pagesRead",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestOtherUsersResourcesAreHidden(t *testing.T) {
	a := newTestApp(t)
	owner := tokenFor(t, 1)
	other := tokenFor(t, 2)

	code, env := doRequest(t, a, http.MethodPost, "/api/goals", owner, map[string]any{"name": "Mine"})
	require.Equal(t, http.StatusCreated, code)
	goal := decodeData[model.Goal](t, env)

	code, _ = doRequest(t, a, http.MethodGet, "/api/goals/"+goal.ID+"/progress", other, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doRequest(t, a, http.MethodDelete, "/api/goals/"+goal.ID, other, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doRequest(t, a, http.MethodGet, "/api/sessions/missing", owner, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSyncAndExport(t *testing.T) {
	a := newTestApp(t)
	token := tokenFor(t, 9)

	code, env := doRequest(t, a, http.MethodPost, "/api/sessions/sync", token, map[string]any{
		"sessions": []map[string]any{
			{"id": "a", "timestamp": "2024-05-01T10:00:00Z", "timeSpent": "15"},
			{"id": "b", "timestamp": "2024-05-02T10:00:00Z"},
			{"pdfName": "no id"},
		},
	})
	require.Equal(t, http.StatusOK, code)
	result := decodeData[map[string]int](t, env)
	assert.Equal(t, 2, result["merged"])
	assert.Equal(t, 1, result["skipped"])

	code, env = doRequest(t, a, http.MethodGet, "/api/sessions", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]model.Session](t, env), 2)

	code, env = doRequest(t, a, http.MethodPost, "/api/sessions/export", token, nil)
	require.Equal(t, http.StatusCreated, code)
	url := decodeData[map[string]string](t, env)["url"]
	assert.Contains(t, url, "/api/exports/sessions/9/")

	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
