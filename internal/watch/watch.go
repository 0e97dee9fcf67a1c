// Package watch re-triggers plotting while a recording is in progress: it
// watches the data directory and reports log file writes, debounced so a
// burst of appends counts once.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/stanford-physics108-2015/cryo/internal/scan"
)

// DefaultDebounce between callback invocations.
const DefaultDebounce = 2 * time.Second

// Watch invokes fn with the changed log path until ctx is cancelled. Only
// files with the two instrument prefixes count.
func Watch(ctx context.Context, dir string, debounce time.Duration, logger *zap.Logger, fn func(path string)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching", zap.String("dir", dir))

	var (
		timer   *time.Timer
		pending string
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isLog(event.Name) {
				continue
			}
			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case <-fire:
			logger.Debug("log changed", zap.String("file", pending))
			fn(pending)
			timer = nil
			fire = nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
}

func isLog(path string) bool {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, ".log") {
		return false
	}
	return strings.HasPrefix(name, scan.LockinPrefix) || strings.HasPrefix(name, scan.SupplyPrefix)
}
