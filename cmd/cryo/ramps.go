package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stanford-physics108-2015/cryo/internal/ramp"
	"github.com/stanford-physics108-2015/cryo/internal/scan"
	"github.com/stanford-physics108-2015/cryo/internal/timeseries"
)

var (
	rampsSupply  string
	rampsLockin  string
	rampsFit     bool
	rampsFitSpan float64
)

var rampsCmd = &cobra.Command{
	Use:   "ramps",
	Short: "List power-supply ramp events",
	Long: `Scans a power-supply log for ramp events and prints each segment's
rate and time span. With --fit, the lock-in temperature trace after the
last ramp-down is fitted with an exponential relaxation.`,
	RunE: runRamps,
}

func init() {
	rampsCmd.Flags().StringVar(&rampsSupply, "ps", "", "power-supply log file; defaults to the latest run")
	rampsCmd.Flags().StringVar(&rampsLockin, "lockin", "", "lock-in log file for --fit")
	rampsCmd.Flags().BoolVar(&rampsFit, "fit", false, "fit the post-ramp-down temperature relaxation")
	rampsCmd.Flags().Float64Var(&rampsFitSpan, "fit-span", 300, "seconds of trace to fit after the ramp-down")
	rootCmd.AddCommand(rampsCmd)
}

func runRamps(cmd *cobra.Command, args []string) error {
	supplyPath := rampsSupply
	lockPath := rampsLockin
	if supplyPath == "" {
		runs, err := scan.Pair(cfg.DataDir)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return fmt.Errorf("no paired logs in %s", cfg.DataDir)
		}
		latest := runs[len(runs)-1]
		supplyPath = latest.Supply.Path
		if lockPath == "" {
			lockPath = latest.Lockin.Path
		}
	}

	supply, err := timeseries.Load(supplyPath)
	if err != nil {
		return err
	}

	t0 := supply.Start()
	segs := ramp.Rates(supply.Times(), supply.Values())
	if len(segs) == 0 {
		fmt.Println("no ramps found")
		return nil
	}

	fmt.Printf("Ramp \t Start \t\t Span \t\t Rate\n")
	for i, seg := range segs {
		fmt.Printf("%d \t %.1f s \t %.1f s \t %+.4f A/s\n", i, seg.T0-t0, seg.Span(), seg.Rate)
	}

	if !rampsFit {
		return nil
	}
	if lockPath == "" {
		return fmt.Errorf("--fit wants --lockin or a paired run")
	}
	return fitRelaxation(lockPath, segs[len(segs)-1])
}

// fitRelaxation fits T(t) = T0 + A exp(-t/tau) to the temperature trace
// following the ramp-down.
func fitRelaxation(lockPath string, down ramp.Segment) error {
	lockin, err := timeseries.Load(lockPath)
	if err != nil {
		return err
	}

	divider := cfg.Thermometer.Divider()
	temp := lockin.MapValues(divider.V2TOrPlaceholder)
	span := temp.Window(down.T1, 0, rampsFitSpan)
	if span.Len() < 4 {
		return fmt.Errorf("only %d samples after the ramp-down", span.Len())
	}

	values := span.Values()
	guess := ramp.Relaxation{
		Base: values[len(values)-1],
		Amp:  values[0] - values[len(values)-1],
		Tau:  rampsFitSpan / 4,
	}
	fit, err := ramp.FitRelaxation(span.Times(), values, guess)
	if err != nil {
		return err
	}

	fmt.Printf("\nRelaxation after ramp at %.1f s:\n", down.T1-lockin.Start())
	fmt.Printf("base \t %.4f K\n", fit.Base)
	fmt.Printf("amp \t %.4f K\n", fit.Amp)
	fmt.Printf("tau \t %.1f s\n", fit.Tau)
	return nil
}
