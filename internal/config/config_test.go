package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "plots", cfg.PlotsDir)
	assert.Equal(t, []string{"png"}, cfg.Formats)
	assert.Equal(t, 0.125, cfg.SamplingInterval)
	assert.Equal(t, 0.07377, cfg.FieldConstant)
	assert.Equal(t, 1e-2, cfg.Thermometer.VEms)
	assert.Equal(t, 1.5e6, cfg.Thermometer.RLarge)
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	content := "data_dir: /srv/cryo/data\nsampling_interval: 0.25\nthermometer:\n  v_ems: 2.0e-2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/cryo/data", cfg.DataDir)
	assert.Equal(t, 0.25, cfg.SamplingInterval)
	assert.Equal(t, 2.0e-2, cfg.Thermometer.VEms)
	// untouched keys keep their defaults
	assert.Equal(t, "plots", cfg.PlotsDir)
	assert.Equal(t, 1.5e6, cfg.Thermometer.RLarge)
}

func TestDividerConversion(t *testing.T) {
	th := Thermometer{VEms: 1e-2, RLarge: 1.5e6, Scale: 1.01}
	d := th.Divider()
	assert.Equal(t, 1e-2, d.VEms)
	assert.Equal(t, 1.5e6, d.RLarge)
	assert.Equal(t, 1.01, d.Scale)
}
