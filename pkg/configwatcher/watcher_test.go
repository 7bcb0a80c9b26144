package configwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"study_coach_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configContent(mode string) []byte {
	return fmt.Appendf(nil, "server:\n  port: \"8080\"\n  mode: %s\njwt:\n  secret: watcher-test-secret-0123456789abcdef\n", mode)
}

func writeConfig(t *testing.T, path, mode string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, configContent(mode), 0o644))
}

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "debug")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, func(cfg *config.Config) {
			reloaded <- cfg
		})
	}()

	// 监听器注册是异步的，重复写入直到收到回调
	var got *config.Config
	require.Eventually(t, func() bool {
		select {
		case got = <-reloaded:
			return true
		default:
			_ = os.WriteFile(path, configContent("release"), 0o644)
			return false
		}
	}, 15*time.Second, 1500*time.Millisecond)

	assert.Equal(t, "release", got.Server.Mode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchConfigIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "debug")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	called := make(chan struct{}, 1)
	go WatchConfig(ctx, path, func(*config.Config) {
		called <- struct{}{}
	})

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("a: 1\n"), 0o644))

	select {
	case <-called:
		t.Fatal("reload triggered by unrelated file")
	case <-ctx.Done():
	}
}
