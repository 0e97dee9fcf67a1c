package figure

import (
	"fmt"

	"github.com/Arafatk/glot"
)

// Preview opens a persistent gnuplot window with the traces, for a quick
// interactive look before committing a figure to disk.
func Preview(title, xlabel, ylabel string, traces []Trace) error {
	dimensions := 2
	persist := true
	debug := false
	plot, err := glot.NewPlot(dimensions, persist, debug)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	plot.SetTitle(title)
	plot.SetXLabel(xlabel)
	plot.SetYLabel(ylabel)

	for _, tr := range traces {
		if err := plot.AddPointGroup(tr.Label, "lines", tr.XY); err != nil {
			return fmt.Errorf("preview %q: %w", tr.Label, err)
		}
	}
	return nil
}
