package timeseries

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadShape(t *testing.T) {
	path := writeLog(t, "lock-in-1426122746.log",
		"1426122746.0841,2.0E-05\n"+
			"1426122746.2101,1.9E-05\n"+
			"  1426122746.3405 , 1.9E-05 \n"+
			"\n"+
			"1426122746.4702,1.8E-05\n")

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 2, s.Width())
	assert.Equal(t, Point{T: 1426122746.0841, V: 2.0e-05}, s.Point(0))
	assert.Equal(t, 1426122746.0841, s.Start())
	assert.Equal(t, 1426122746.4702, s.End())
}

func TestLoadKeepsAllFields(t *testing.T) {
	path := writeLog(t, "power-supply-1426122742.log",
		"1426122742.1,0.3000,5.0\n1426122742.2,0.3010,5.0\n")

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 3, s.Width())
	assert.Equal(t, []float64{5.0, 5.0}, s.Column(2))
}

func TestLoadLowercasesExponents(t *testing.T) {
	// The lock-in writes exponents uppercase; the loader lowercases lines
	// before parsing, so both spellings work.
	path := writeLog(t, "lock-in-1.log", "1.0,2.5E-05\n2.0,2.5e-05\n")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5e-05, 2.5e-05}, s.Values())
}

func TestLoadMalformedLineFailsWholeLoad(t *testing.T) {
	path := writeLog(t, "lock-in-2.log", "1.0,2.0e-05\n2.0,not-a-number\n3.0,1.0e-05\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadTruncatedLineFailsWholeLoad(t *testing.T) {
	// a timestamp with no value, as a monitor killed mid-line leaves behind
	path := writeLog(t, "lock-in-3.log", "1.0,2.0e-05\n2.0\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.log"))
	assert.Error(t, err)
}

func TestAfterKeepsOrderAndIsIdempotent(t *testing.T) {
	s := New("ps", []Point{
		{T: 1426122742.0, V: 0.1},
		{T: 1426122743.0, V: 0.2},
		{T: 1426122744.0, V: 0.3},
		{T: 1426122745.0, V: 0.4},
	})

	got := s.After(1426122742.0, 1.5)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, []float64{0.3, 0.4}, got.Values())

	again := got.After(1426122742.0, 1.5)
	assert.Equal(t, got.Values(), again.Values())
	assert.Equal(t, got.Times(), again.Times())
}

func TestWindow(t *testing.T) {
	s := New("lockin", []Point{
		{T: 100, V: 1},
		{T: 110, V: 2},
		{T: 120, V: 3},
		{T: 130, V: 4},
		{T: 140, V: 5},
	})

	w := s.Window(100, 10, 35)
	require.Equal(t, 3, w.Len())
	assert.Equal(t, []float64{2, 3, 4}, w.Values())
	assert.Equal(t, []float64{0, 10, 20}, w.Elapsed(w.Start()))
}

func TestWindowInvertedSelectsNothing(t *testing.T) {
	s := New("lockin", []Point{
		{T: 100, V: 1},
		{T: 110, V: 2},
		{T: 120, V: 3},
	})

	w := s.Window(100, 15, 5)
	assert.Equal(t, 0, w.Len())
}

func TestSharedAxis(t *testing.T) {
	lockin := New("lockin", []Point{{T: 1426122746, V: 1}, {T: 1426122946, V: 2}})
	supply := New("ps", []Point{{T: 1426122742, V: 1}, {T: 1426122900, V: 2}})

	t0 := SharedStart(lockin, supply)
	assert.Equal(t, 1426122742.0, t0)
	assert.Equal(t, 204.0, SharedEnd(t0, lockin, supply))
	assert.Equal(t, []float64{4, 204}, lockin.Elapsed(t0))
}

func TestMapValues(t *testing.T) {
	s := New("ps", []Point{{T: 1, V: 2}, {T: 2, V: 3}})

	doubled := s.MapValues(func(v float64) float64 { return 2 * v })
	assert.Equal(t, []float64{4, 6}, doubled.Values())
	// source untouched
	assert.Equal(t, []float64{2, 3}, s.Values())
}
