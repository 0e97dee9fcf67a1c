package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stanford-physics108-2015/cryo/internal/config"
	"github.com/stanford-physics108-2015/cryo/internal/thermo"
)

// writeRun produces a plausible pair of logs: the supply holds, ramps down
// and settles; the lock-in sits at a voltage within the thermometer curve.
func writeRun(t *testing.T, dir string, epoch int64) {
	t.Helper()

	var ps, li strings.Builder
	current := 20.35
	for i := 0; i < 400; i++ {
		ts := float64(epoch) + float64(i)*0.5
		if i >= 100 && current > 0 {
			current -= 0.3 * 0.5
			if current < 0 {
				current = 0
			}
		}
		fmt.Fprintf(&ps, "%.4f,%.4f\n", ts, current)
		fmt.Fprintf(&li, "%.4f,%.4E\n", ts+4, 1.93e-5)
	}

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, fmt.Sprintf("power-supply-%d.log", epoch)),
		[]byte(ps.String()), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, fmt.Sprintf("lock-in-%d.log", epoch+4)),
		[]byte(li.String()), 0644))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	d := thermo.DefaultDivider()
	return &config.Config{
		DataDir:          t.TempDir(),
		PlotsDir:         t.TempDir(),
		Formats:          []string{"png"},
		SamplingInterval: 0.125,
		FieldConstant:    thermo.FieldConstant,
		Thermometer: config.Thermometer{
			VEms:   d.VEms,
			RLarge: d.RLarge,
			Scale:  d.Scale,
		},
	}
}

func TestRenderComparisonEndToEnd(t *testing.T) {
	cfg = testConfig(t)
	logger = zap.NewNop()
	writeRun(t, cfg.DataDir, 1426122742)

	lockPath, supplyPath, err := resolveRun()
	require.NoError(t, err)
	assert.Contains(t, lockPath, "lock-in-")
	assert.Contains(t, supplyPath, "power-supply-")

	require.NoError(t, renderComparison(lockPath, supplyPath))

	pngs, err := filepath.Glob(filepath.Join(cfg.PlotsDir, "*", "*", "run-*.png"))
	require.NoError(t, err)
	require.Len(t, pngs, 1)

	info, err := os.Stat(pngs[0])
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderComparisonWindowAndMarks(t *testing.T) {
	cfg = testConfig(t)
	logger = zap.NewNop()
	writeRun(t, cfg.DataDir, 1426122742)

	plotWindow = []float64{40, 120}
	plotMarks = []float64{50}
	plotMarkRamps = true
	t.Cleanup(func() {
		plotWindow = nil
		plotMarks = nil
		plotMarkRamps = false
	})

	lockPath, supplyPath, err := resolveRun()
	require.NoError(t, err)
	require.NoError(t, renderComparison(lockPath, supplyPath))

	pngs, err := filepath.Glob(filepath.Join(cfg.PlotsDir, "*", "*", "run-*.png"))
	require.NoError(t, err)
	assert.Len(t, pngs, 1)
}

func TestRenderComparisonInvertedWindow(t *testing.T) {
	cfg = testConfig(t)
	logger = zap.NewNop()
	writeRun(t, cfg.DataDir, 1426122742)

	plotWindow = []float64{980, 840}
	t.Cleanup(func() { plotWindow = nil })

	lockPath, supplyPath, err := resolveRun()
	require.NoError(t, err)

	err = renderComparison(lockPath, supplyPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lo < hi")
}

func TestResolveRunPrefersExplicitPaths(t *testing.T) {
	cfg = testConfig(t)
	logger = zap.NewNop()

	plotLockin = "a.log"
	plotSupply = "b.log"
	t.Cleanup(func() {
		plotLockin = ""
		plotSupply = ""
	})

	lockPath, supplyPath, err := resolveRun()
	require.NoError(t, err)
	assert.Equal(t, "a.log", lockPath)
	assert.Equal(t, "b.log", supplyPath)
}

func TestResolveRunEmptyDataDir(t *testing.T) {
	cfg = testConfig(t)
	logger = zap.NewNop()

	_, _, err := resolveRun()
	assert.Error(t, err)
}

func TestResolveRunHalfSpecified(t *testing.T) {
	cfg = testConfig(t)
	logger = zap.NewNop()

	plotLockin = "a.log"
	t.Cleanup(func() { plotLockin = "" })

	_, _, err := resolveRun()
	assert.Error(t, err)
}
