package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stanford-physics108-2015/cryo/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "List and pair the log files in a data directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.DataDir
		if len(args) == 1 {
			dir = args[0]
		}

		lockins, supplies, err := scan.Scan(dir)
		if err != nil {
			return err
		}
		fmt.Printf("%d lock-in logs, %d power-supply logs in %s\n\n", len(lockins), len(supplies), dir)

		runs, err := scan.Pair(dir)
		if err != nil {
			return err
		}
		for _, run := range runs {
			started := time.Unix(run.Epoch(), 0).Format("2006-Jan-02 15:04:05")
			fmt.Printf("%s \t %s \t %s\n", started, run.Lockin.Name, run.Supply.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
