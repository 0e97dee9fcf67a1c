// Package record samples a signal source at a fixed interval and writes the
// timestamp,value log files the rest of the toolkit consumes. Sources are
// simulated stand-ins for the GPIB instruments; the log format and naming
// match what the lab monitors produce.
package record

import (
	"math"
	"math/rand"
	"time"
)

// Source produces one reading per sample tick.
type Source interface {
	// Name is the log file prefix: "lock-in" or "power-supply".
	Name() string
	// Format is the fmt verb pair for one "timestamp,value" line.
	Format() string
	Read(now time.Time) float64
}

// RampSegment limits the ramp rate while the output current is at or below
// UpTo amps.
type RampSegment struct {
	UpTo float64
	Rate float64 // amps per second
}

// DefaultRampSegments mirrors the supply's configured segment table.
func DefaultRampSegments() []RampSegment {
	return []RampSegment{
		{UpTo: 6.8, Rate: 0.3}, // rated current
		{UpTo: 13.6, Rate: 0.2},
		{UpTo: 20.4, Rate: 0.1},
		{UpTo: 60.0, Rate: 0.0001},
	}
}

// SimSupply models the power supply output current: it moves toward the
// target at the segment-limited ramp rate.
type SimSupply struct {
	segments []RampSegment
	target   float64
	level    float64
	last     time.Time
}

func NewSimSupply(target float64, segments []RampSegment) *SimSupply {
	if segments == nil {
		segments = DefaultRampSegments()
	}
	return &SimSupply{segments: segments, target: target}
}

func (s *SimSupply) Name() string   { return "power-supply" }
func (s *SimSupply) Format() string { return "%.4f,%.4f\n" }

// SetTarget changes the current the supply ramps toward.
func (s *SimSupply) SetTarget(amps float64) { s.target = amps }

func (s *SimSupply) Read(now time.Time) float64 {
	if s.last.IsZero() {
		s.last = now
		return s.level
	}

	dt := now.Sub(s.last).Seconds()
	s.last = now

	step := s.rateAt(s.level) * dt
	diff := s.target - s.level
	switch {
	case diff > step:
		s.level += step
	case diff < -step:
		s.level -= step
	default:
		s.level = s.target
	}
	return s.level
}

func (s *SimSupply) rateAt(level float64) float64 {
	for _, seg := range s.segments {
		if level <= seg.UpTo {
			return seg.Rate
		}
	}
	return s.segments[len(s.segments)-1].Rate
}

// SimLockin models the lock-in reading as a bounded random walk around a
// mean voltage.
type SimLockin struct {
	mean           float64
	stddev         float64
	stepSizeFactor float64
	value          float64
	rng            *rand.Rand
}

func NewSimLockin(mean, stddev float64) *SimLockin {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &SimLockin{
		mean:           mean,
		stddev:         math.Abs(stddev),
		stepSizeFactor: math.Abs(stddev) / 10,
		value:          mean - math.Abs(stddev)*rng.Float64(),
		rng:            rng,
	}
}

func (l *SimLockin) Name() string   { return "lock-in" }
func (l *SimLockin) Format() string { return "%.4f,%.4E\n" }

func (l *SimLockin) Read(time.Time) float64 {
	change := l.rng.Float64() * l.stepSizeFactor
	l.value += change * l.decideFactor()
	return l.value
}

// decideFactor picks the walk direction: the further the value strays from
// the mean, the likelier the walk turns back.
func (l *SimLockin) decideFactor() float64 {
	var continueDirection, changeDirection, distance float64
	if l.value > l.mean {
		distance = l.value - l.mean
		continueDirection = 1
		changeDirection = -1
	} else {
		distance = l.mean - l.value
		continueDirection = -1
		changeDirection = 1
	}

	chance := (l.stddev / 2) - (distance / 50)
	if l.stddev*l.rng.Float64() < chance {
		return continueDirection
	}
	return changeDirection
}
