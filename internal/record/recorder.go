package record

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval between samples, matching the supply monitor's
// sampling_interval.
const DefaultInterval = 125 * time.Millisecond

// Recorder samples a Source at a fixed interval and appends one
// timestamp,value line per sample to <name>-<epoch>.log in dir.
type Recorder struct {
	src      Source
	interval time.Duration
	dir      string
	log      *zap.Logger

	now func() time.Time
}

func NewRecorder(src Source, interval time.Duration, dir string, logger *zap.Logger) *Recorder {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		src:      src,
		interval: interval,
		dir:      dir,
		log:      logger,
		now:      time.Now,
	}
}

// Run records until ctx is cancelled, then flushes and returns the path of
// the written log.
func (r *Recorder) Run(ctx context.Context) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("record: %w", err)
	}

	start := r.now()
	path := filepath.Join(r.dir, fmt.Sprintf("%s-%d.log", r.src.Name(), start.Unix()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("record: %w", err)
	}

	w := bufio.NewWriter(f)
	r.log.Info("beginning data collection",
		zap.String("source", r.src.Name()),
		zap.String("file", path),
		zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	samples := 0
	for {
		select {
		case <-ctx.Done():
			r.log.Info("interrupted", zap.Int("samples", samples))
			if err := w.Flush(); err != nil {
				f.Close()
				return "", fmt.Errorf("record %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return "", fmt.Errorf("record %s: %w", path, err)
			}
			return path, nil

		case tick := <-ticker.C:
			v := r.src.Read(tick)
			ts := float64(tick.UnixNano()) / 1e9
			if _, err := fmt.Fprintf(w, r.src.Format(), ts, v); err != nil {
				f.Close()
				return "", fmt.Errorf("record %s: %w", path, err)
			}
			samples++
			r.log.Debug("sample", zap.Float64("t", ts), zap.Float64("value", v))
		}
	}
}
