package service

import (
	"path/filepath"
	"study_coach_backend/internal/config"
	"study_coach_backend/internal/repository"
	"study_coach_backend/internal/util"
	"study_coach_backend/pkg/database"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testServices struct {
	sessions   *SessionService
	goals      *GoalService
	analytics  *AnalyticsService
	scanner    *ReminderScanner
	dismissals *repository.MemoryDismissalStore
	exportDir  string
	now        time.Time
}

func newTestServices(t *testing.T, now time.Time) *testServices {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: util.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "service.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	ts := &testServices{now: now, exportDir: t.TempDir()}
	clock := func() time.Time { return ts.now }

	sessionRepo := repository.NewSessionRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	dismissals := repository.NewMemoryDismissalStore(clock)
	storage := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: ts.exportDir}})

	sessions := NewSessionService(sessionRepo, storage)
	sessions.Now = clock
	goals := NewGoalService(goalRepo, sessionRepo, dismissals)
	goals.Now = clock
	analytics := NewAnalyticsService(sessionRepo)
	analytics.Now = clock

	ts.sessions = sessions
	ts.goals = goals
	ts.analytics = analytics
	ts.scanner = NewReminderScanner(goalRepo, goals, time.Minute)
	ts.dismissals = dismissals
	return ts
}

func ptr[T any](v T) *T { return &v }
