// Package ramp finds power-supply ramp events in a current log and fits the
// lock-in temperature response after a ramp-down.
package ramp

import (
	"gonum.org/v1/gonum/stat"
)

// A ramp starts when the current deviates from its initial level by more
// than deviationThreshold amps, and ends once the local slope settles below
// settleSlope amps per second.
const (
	deviationThreshold = 0.01
	settleSlope        = 0.1
)

// Segment is one detected ramp.
type Segment struct {
	Start int // index of the first ramping sample
	End   int // index of the sample where the current settles
	T0    float64
	T1    float64
	Rate  float64 // amps per second, least-squares slope over the segment
}

// Span is the duration of the ramp in seconds.
func (s Segment) Span() float64 { return s.T1 - s.T0 }

// Detect finds the first ramp in a current trace. t and c are parallel
// slices of timestamps and currents. ok is false when the current never
// leaves its initial level.
func Detect(t, c []float64) (seg Segment, ok bool) {
	if len(c) < 2 || len(t) != len(c) {
		return Segment{}, false
	}

	start := -1
	c0 := c[0]
	for i := range c {
		if abs(c0-c[i]) > deviationThreshold {
			start = i
			break
		}
	}
	if start < 0 {
		return Segment{}, false
	}

	end := len(c) - 1
	for j := start; j < len(c)-1; j++ {
		if abs(c[j+1]-c[j])/(t[j+1]-t[j]) < settleSlope {
			end = j
			break
		}
	}

	return Segment{
		Start: start,
		End:   end,
		T0:    t[start],
		T1:    t[end],
		Rate:  rate(t[start:end+1], c[start:end+1]),
	}, true
}

// Rates lists every ramp in the trace, scanning each remainder with Detect.
func Rates(t, c []float64) []Segment {
	var segs []Segment

	offset := 0
	for {
		seg, ok := Detect(t[offset:], c[offset:])
		if !ok {
			break
		}
		seg.Start += offset
		seg.End += offset
		segs = append(segs, seg)
		if seg.End <= offset {
			break
		}
		offset = seg.End
	}

	return segs
}

// rate is the least-squares slope of c over t. For fewer than three samples
// the endpoint slope is used.
func rate(t, c []float64) float64 {
	if len(t) < 2 {
		return 0
	}
	if len(t) < 3 {
		return (c[len(c)-1] - c[0]) / (t[len(t)-1] - t[0])
	}
	_, beta := stat.LinearRegression(t, c, nil, false)
	return beta
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
