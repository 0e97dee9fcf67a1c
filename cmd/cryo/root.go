package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stanford-physics108-2015/cryo/internal/config"
	"github.com/stanford-physics108-2015/cryo/internal/logging"
)

var (
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cryo",
	Short: "Lab log plotting and analysis for the demagnetization cryostat",
	Long: `cryo works with the lock-in amplifier and power-supply logs of the
adiabatic demagnetization experiment: it pairs the two logs of a run,
converts raw readings to temperature and field, finds power-supply ramp
events, and renders comparison figures.

Log files are comma-separated "timestamp,value" lines named
lock-in-<epoch>.log and power-supply-<epoch>.log.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logger, err = logging.New(verbose); err != nil {
			return err
		}
		if cfg, err = config.Load(); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
