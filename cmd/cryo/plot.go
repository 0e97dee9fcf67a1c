package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stanford-physics108-2015/cryo/internal/figure"
	"github.com/stanford-physics108-2015/cryo/internal/ramp"
	"github.com/stanford-physics108-2015/cryo/internal/scan"
	"github.com/stanford-physics108-2015/cryo/internal/timeseries"
)

var (
	plotRunEpoch  int64
	plotLockin    string
	plotSupply    string
	plotWindow    []float64
	plotAfter     float64
	plotRef       float64
	plotMarks     []float64
	plotMarkRamps bool
	plotRaw       bool
	plotPreview   bool
	plotSlide     bool
	plotNote      string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the comparison figure for a run",
	Long: `Loads the lock-in and power-supply logs of a run, aligns them on a
shared elapsed-time axis, converts readings to temperature and field, and
renders a stacked comparison figure.

With no file arguments the most recent paired run in the data directory is
plotted. Use --window to zoom on a ramp-down and --marks to annotate event
times.`,
	Example: `  cryo plot
  cryo plot --run 1426122742 --window 840,980
  cryo plot --lockin data/lock-in-1426122746.log --ps data/power-supply-1426122742.log --marks 855,907`,
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().Int64Var(&plotRunEpoch, "run", 0, "run start epoch to plot")
	plotCmd.Flags().StringVar(&plotLockin, "lockin", "", "lock-in log file")
	plotCmd.Flags().StringVar(&plotSupply, "ps", "", "power-supply log file")
	plotCmd.Flags().Float64SliceVar(&plotWindow, "window", nil, "elapsed-time window lo,hi in seconds")
	plotCmd.Flags().Float64Var(&plotAfter, "after", 0, "drop samples earlier than this many seconds past the reference epoch")
	plotCmd.Flags().Float64Var(&plotRef, "ref", 0, "reference epoch for --after; defaults to the run start")
	plotCmd.Flags().Float64SliceVar(&plotMarks, "marks", nil, "elapsed times to mark with vertical lines")
	plotCmd.Flags().BoolVar(&plotMarkRamps, "mark-ramps", false, "mark detected supply ramps")
	plotCmd.Flags().BoolVar(&plotRaw, "raw", false, "plot raw volts and amps without unit conversion")
	plotCmd.Flags().BoolVar(&plotPreview, "preview", false, "open interactive gnuplot previews")
	plotCmd.Flags().BoolVar(&plotSlide, "slide", false, "format the figure for slide presentation")
	plotCmd.Flags().StringVar(&plotNote, "note", "", "note appended to the output folder name")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	lockPath, supplyPath, err := resolveRun()
	if err != nil {
		return err
	}
	return renderComparison(lockPath, supplyPath)
}

// resolveRun picks the two log files: explicit paths win, then --run, then
// the most recent paired run in the data directory.
func resolveRun() (string, string, error) {
	if plotLockin != "" && plotSupply != "" {
		return plotLockin, plotSupply, nil
	}
	if plotLockin != "" || plotSupply != "" {
		return "", "", fmt.Errorf("--lockin and --ps must be given together")
	}

	if plotRunEpoch != 0 {
		run, err := scan.FindRun(cfg.DataDir, plotRunEpoch)
		if err != nil {
			return "", "", err
		}
		return run.Lockin.Path, run.Supply.Path, nil
	}

	runs, err := scan.Pair(cfg.DataDir)
	if err != nil {
		return "", "", err
	}
	if len(runs) == 0 {
		return "", "", fmt.Errorf("no paired logs in %s", cfg.DataDir)
	}
	latest := runs[len(runs)-1]
	return latest.Lockin.Path, latest.Supply.Path, nil
}

func renderComparison(lockPath, supplyPath string) error {
	lockin, err := timeseries.Load(lockPath)
	if err != nil {
		return err
	}
	supply, err := timeseries.Load(supplyPath)
	if err != nil {
		return err
	}

	t0 := timeseries.SharedStart(lockin, supply)
	logger.Info("loaded run",
		zap.String("lockin", lockPath), zap.Int("lockin_samples", lockin.Len()),
		zap.String("ps", supplyPath), zap.Int("ps_samples", supply.Len()))

	if plotAfter > 0 {
		ref := plotRef
		if ref == 0 {
			ref = t0
		}
		lockin = lockin.After(ref, plotAfter)
		supply = supply.After(ref, plotAfter)
	}

	marks := append([]float64(nil), plotMarks...)
	if plotMarkRamps {
		for _, seg := range ramp.Rates(supply.Times(), supply.Values()) {
			marks = append(marks, seg.T0-t0)
			logger.Info("ramp detected",
				zap.Float64("start_s", seg.T0-t0),
				zap.Float64("rate_A_per_s", seg.Rate),
				zap.Float64("span_s", seg.Span()))
		}
	}

	if len(plotWindow) == 2 {
		if plotWindow[1] <= plotWindow[0] {
			return fmt.Errorf("--window wants lo < hi, got %g,%g", plotWindow[0], plotWindow[1])
		}
		lockin = lockin.Window(t0, plotWindow[0], plotWindow[1])
		supply = supply.Window(t0, plotWindow[0], plotWindow[1])
		if lockin.Len() == 0 || supply.Len() == 0 {
			return fmt.Errorf("window %v leaves no samples", plotWindow)
		}
		// rebase marks and the time axis to the window start
		shift := timeseries.SharedStart(lockin, supply) - t0
		t0 += shift
		for i := range marks {
			marks[i] -= shift
		}
	} else if len(plotWindow) != 0 {
		return fmt.Errorf("--window wants exactly lo,hi")
	}

	top, bottom := panels(lockin, supply, t0)

	if plotPreview {
		if err := figure.Preview("lock-in", "Time (s)", top.YLabel, top.Traces); err != nil {
			return err
		}
		if err := figure.Preview("power supply", "Time (s)", bottom.YLabel, bottom.Traces); err != nil {
			return err
		}
	}

	base := filepath.Join(
		figure.OutDir(cfg.PlotsDir, plotNote, time.Now()),
		fmt.Sprintf("run-%d", int64(t0)),
	)

	opts := figure.Options{
		Title: "Adiabatic Demagnetization",
		Marks: marks,
		Slide: plotSlide,
	}
	if err := figure.Comparison(top, bottom, opts, base, cfg.Formats); err != nil {
		return err
	}

	logger.Info("figure saved", zap.String("base", base), zap.Strings("formats", cfg.Formats))
	return nil
}

// panels converts the raw traces to plotting panels, in physical units
// unless --raw is set.
func panels(lockin, supply *timeseries.Series, t0 float64) (figure.Panel, figure.Panel) {
	if plotRaw {
		top := figure.Panel{YLabel: "Signal (V)", Traces: []figure.Trace{
			{Label: "lock-in", XY: lockin.XY(t0)},
		}}
		bottom := figure.Panel{YLabel: "Current (A)", Traces: []figure.Trace{
			{Label: "power supply", XY: supply.XY(t0)},
		}}
		return top, bottom
	}

	divider := cfg.Thermometer.Divider()
	temp := lockin.MapValues(divider.V2TOrPlaceholder)
	field := supply.MapValues(func(c float64) float64 { return cfg.FieldConstant * c })

	top := figure.Panel{YLabel: "Temperature (K)", Traces: []figure.Trace{
		{Label: "lock-in", XY: temp.XY(t0)},
	}}
	bottom := figure.Panel{YLabel: "Field (T)", Traces: []figure.Trace{
		{Label: "power supply", XY: field.XY(t0)},
	}}
	return top, bottom
}
