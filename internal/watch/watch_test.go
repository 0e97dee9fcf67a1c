package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLog(t *testing.T) {
	assert.True(t, isLog("/data/lock-in-1426122746.log"))
	assert.True(t, isLog("power-supply-1426122742.log"))
	assert.False(t, isLog("/data/meta.csv"))
	assert.False(t, isLog("/data/lock-in-1426122746.log.bak"))
	assert.False(t, isLog("notes.log"))
}

func TestWatchReportsLogWrites(t *testing.T) {
	dir := t.TempDir()

	var (
		mu   sync.Mutex
		seen []string
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, 50*time.Millisecond, nil, func(path string) {
			mu.Lock()
			seen = append(seen, path)
			mu.Unlock()
		})
	}()

	// give the watcher a moment to register
	time.Sleep(100 * time.Millisecond)

	logPath := filepath.Join(dir, "lock-in-1426122746.log")
	require.NoError(t, os.WriteFile(logPath, []byte("1426122746.1,2.0e-05\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, logPath, seen[0])
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), 0, nil, func(string) {})
	assert.Error(t, err)
}
