package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stanford-physics108-2015/cryo/internal/record"
)

var (
	recordTarget float64
	recordMean   float64
	recordStddev float64
)

var recordCmd = &cobra.Command{
	Use:   "record (lock-in|power-supply)",
	Short: "Record a simulated instrument to a log file",
	Long: `Samples a simulated instrument at the configured interval and writes
<kind>-<epoch>.log lines to the data directory until interrupted. Useful
for exercising the plotting pipeline without the GPIB rack.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"lock-in", "power-supply"},
	RunE:      runRecord,
}

func init() {
	recordCmd.Flags().Float64Var(&recordTarget, "target", 20.35, "supply target current, amps")
	recordCmd.Flags().Float64Var(&recordMean, "mean", 2e-5, "lock-in mean voltage")
	recordCmd.Flags().Float64Var(&recordStddev, "stddev", 2e-6, "lock-in voltage spread")
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	var src record.Source
	switch args[0] {
	case "lock-in":
		src = record.NewSimLockin(recordMean, recordStddev)
	case "power-supply":
		src = record.NewSimSupply(recordTarget, nil)
	default:
		return fmt.Errorf("unknown source %q", args[0])
	}

	interval := time.Duration(cfg.SamplingInterval * float64(time.Second))
	rec := record.NewRecorder(src, interval, cfg.DataDir, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, err := rec.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("log written", zap.String("file", path))
	return nil
}
