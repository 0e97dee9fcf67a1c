// Package scan finds instrument log files in a data directory and pairs the
// two logs of a run.
//
// The monitors name their output <kind>-<epoch>.log, epoch being the Unix
// start time of the recording, e.g. lock-in-1426122746.log and
// power-supply-1426122742.log.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	LockinPrefix = "lock-in"
	SupplyPrefix = "power-supply"
)

// Kind distinguishes the two log formats within a directory.
type Kind string

const (
	Lockin Kind = "lock-in"
	Supply Kind = "power-supply"
)

// File is one recognized log file.
type File struct {
	Path  string
	Name  string
	Kind  Kind
	Epoch int64 // start time from the file name; 0 when absent
}

// Scan lists dir and partitions the entries by file name prefix. Names with
// neither prefix are ignored.
func Scan(dir string) (lockins, supplies []File, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasPrefix(name, LockinPrefix):
			lockins = append(lockins, newFile(dir, name, Lockin))
		case strings.HasPrefix(name, SupplyPrefix):
			supplies = append(supplies, newFile(dir, name, Supply))
		}
	}

	sort.Slice(lockins, func(i, j int) bool { return lockins[i].Epoch < lockins[j].Epoch })
	sort.Slice(supplies, func(i, j int) bool { return supplies[i].Epoch < supplies[j].Epoch })

	return lockins, supplies, nil
}

func newFile(dir, name string, kind Kind) File {
	return File{
		Path:  filepath.Join(dir, name),
		Name:  name,
		Kind:  kind,
		Epoch: epochFromName(name, string(kind)),
	}
}

func epochFromName(name, prefix string) int64 {
	stem := strings.TrimSuffix(strings.TrimPrefix(name, prefix+"-"), ".log")
	epoch, err := strconv.ParseInt(stem, 10, 64)
	if err != nil {
		return 0
	}
	return epoch
}

// Run is the two sides of one recording: the monitors are started seconds
// apart, so the epochs match approximately, not exactly.
type Run struct {
	Lockin File
	Supply File
}

// Epoch of the run is the earlier of the two start times.
func (r Run) Epoch() int64 {
	if r.Supply.Epoch < r.Lockin.Epoch {
		return r.Supply.Epoch
	}
	return r.Lockin.Epoch
}

// Pair matches each lock-in log with the power-supply log whose start epoch
// is nearest, returning runs ordered by epoch. Lock-in logs with no supply
// counterpart are dropped.
func Pair(dir string) ([]Run, error) {
	lockins, supplies, err := Scan(dir)
	if err != nil {
		return nil, err
	}

	var runs []Run
	for _, li := range lockins {
		best, ok := nearest(supplies, li.Epoch)
		if !ok {
			continue
		}
		runs = append(runs, Run{Lockin: li, Supply: best})
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Epoch() < runs[j].Epoch() })
	return runs, nil
}

// FindRun locates the run whose epoch is closest to the given start time.
func FindRun(dir string, epoch int64) (Run, error) {
	runs, err := Pair(dir)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, fmt.Errorf("no paired logs in %s", dir)
	}

	best := runs[0]
	for _, run := range runs[1:] {
		if absDiff(run.Epoch(), epoch) < absDiff(best.Epoch(), epoch) {
			best = run
		}
	}
	return best, nil
}

func nearest(files []File, epoch int64) (File, bool) {
	if len(files) == 0 {
		return File{}, false
	}
	best := files[0]
	for _, f := range files[1:] {
		if absDiff(f.Epoch, epoch) < absDiff(best.Epoch, epoch) {
			best = f
		}
	}
	return best, true
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
