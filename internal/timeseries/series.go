// Package timeseries loads instrument log files into numeric tables.
//
// A log file is a sequence of comma-separated numeric fields per line, the
// first field a Unix timestamp in seconds. Both the lock-in amplifier and
// the power supply write this format.
package timeseries

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Point is one timestamped sample: T a Unix timestamp in seconds, V the
// measured value (lock-in voltage or supply current).
type Point struct {
	T float64
	V float64
}

// Series is an immutable table of samples read from one log file. Each row
// keeps every field of its line; columns 0 and 1 are timestamp and value.
// Filtering and slicing return new Series.
type Series struct {
	name string
	rows [][]float64
}

// Load reads a log file line by line, trims whitespace, lowercases, splits
// on commas and parses every field as a float. A file with N well-formed
// lines yields a Series of N rows. Blank lines are skipped; a malformed
// field or a line with fewer than two fields fails the whole load.
func Load(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	s := &Series{name: path}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			return nil, fmt.Errorf("load %s: line %d: want timestamp,value, got %d field(s)", path, lineNo, len(fields))
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("load %s: line %d: %w", path, lineNo, err)
			}
			row[i] = v
		}
		s.rows = append(s.rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return s, nil
}

// New builds a Series from points. Used by tests and by conversions that
// produce derived traces.
func New(name string, pts []Point) *Series {
	s := &Series{name: name}
	for _, pt := range pts {
		s.rows = append(s.rows, []float64{pt.T, pt.V})
	}
	return s
}

func (s *Series) Name() string { return s.name }

func (s *Series) Len() int { return len(s.rows) }

// Width reports the number of fields per row, 0 for an empty series.
func (s *Series) Width() int {
	if len(s.rows) == 0 {
		return 0
	}
	return len(s.rows[0])
}

func (s *Series) Point(i int) Point {
	return Point{T: s.rows[i][0], V: s.rows[i][1]}
}

// Times returns column 0.
func (s *Series) Times() []float64 { return s.Column(0) }

// Values returns column 1.
func (s *Series) Values() []float64 { return s.Column(1) }

func (s *Series) Column(j int) []float64 {
	col := make([]float64, len(s.rows))
	for i, row := range s.rows {
		col[i] = row[j]
	}
	return col
}

// Start returns the first timestamp, 0 for an empty series.
func (s *Series) Start() float64 {
	if len(s.rows) == 0 {
		return 0
	}
	return s.rows[0][0]
}

// End returns the last timestamp, 0 for an empty series.
func (s *Series) End() float64 {
	if len(s.rows) == 0 {
		return 0
	}
	return s.rows[len(s.rows)-1][0]
}

// After retains the rows whose timestamp minus ref exceeds threshold,
// preserving relative order. Filtering twice with the same arguments is
// idempotent.
func (s *Series) After(ref, threshold float64) *Series {
	out := &Series{name: s.name}
	for _, row := range s.rows {
		if row[0]-ref > threshold {
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// Window slices the series to the rows whose elapsed time since t0 lies in
// [lo, hi). Timestamps keep their absolute values; callers rebase the time
// axis. Timestamps are assumed nondecreasing, as the instruments write
// them. An inverted window selects nothing.
func (s *Series) Window(t0, lo, hi float64) *Series {
	out := &Series{name: s.name}
	if hi < lo {
		return out
	}

	times := s.Times()
	i := sort.SearchFloat64s(times, t0+lo)
	j := sort.SearchFloat64s(times, t0+hi)

	out.rows = append(out.rows, s.rows[i:j]...)
	return out
}

// MapValues returns a new series with column 1 replaced by f(v), other
// columns untouched.
func (s *Series) MapValues(f func(float64) float64) *Series {
	out := &Series{name: s.name}
	for _, row := range s.rows {
		mapped := make([]float64, len(row))
		copy(mapped, row)
		mapped[1] = f(row[1])
		out.rows = append(out.rows, mapped)
	}
	return out
}

// Elapsed returns column 0 rebased to seconds since t0.
func (s *Series) Elapsed(t0 float64) []float64 {
	out := make([]float64, len(s.rows))
	for i, row := range s.rows {
		out[i] = row[0] - t0
	}
	return out
}

// SharedStart returns the earlier of the two start timestamps, the shared
// origin for plotting two logs of one run on the same elapsed-time axis.
func SharedStart(a, b *Series) float64 {
	t0 := a.Start()
	if b.Start() < t0 {
		t0 = b.Start()
	}
	return t0
}

// SharedEnd returns the later end of the two series relative to t0.
func SharedEnd(t0 float64, a, b *Series) float64 {
	end := a.End() - t0
	if b.End()-t0 > end {
		end = b.End() - t0
	}
	return end
}

// XY packs elapsed times against values for plotting.
func (s *Series) XY(t0 float64) [][]float64 {
	return [][]float64{s.Elapsed(t0), s.Values()}
}
