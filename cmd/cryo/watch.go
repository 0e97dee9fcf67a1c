package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stanford-physics108-2015/cryo/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-render the latest run whenever its logs change",
	Long: `Watches the data directory and re-renders the comparison figure for
the most recent paired run every time a monitor appends to a log. Handy on
a second screen while a recording is in progress.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "wait this long after the last write before re-rendering")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := cfg.DataDir
	if len(args) == 1 {
		dir = args[0]
		cfg.DataDir = dir
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watch.Watch(ctx, dir, watchDebounce, logger, func(path string) {
		lockPath, supplyPath, err := resolveRun()
		if err != nil {
			logger.Warn("no run to render", zap.Error(err))
			return
		}
		if err := renderComparison(lockPath, supplyPath); err != nil {
			logger.Warn("render failed", zap.String("changed", path), zap.Error(err))
		}
	})
}
