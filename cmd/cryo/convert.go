package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stanford-physics108-2015/cryo/internal/thermo"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert raw readings to physical units",
}

var r2tCmd = &cobra.Command{
	Use:   "r2t <ohms>...",
	Short: "Resistance to temperature (Lake Shore RX-202A)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convertEach(args, func(r float64) (float64, error) {
			return thermo.R2T(r)
		})
	},
}

var v2tCmd = &cobra.Command{
	Use:   "v2t <volts>...",
	Short: "Voltage across the thermometer to temperature",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		divider := cfg.Thermometer.Divider()
		return convertEach(args, divider.V2T)
	},
}

var c2hCmd = &cobra.Command{
	Use:   "c2h <amps>...",
	Short: "Supply current to magnetic field",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convertEach(args, func(c float64) (float64, error) {
			return cfg.FieldConstant * c, nil
		})
	},
}

func convertEach(args []string, f func(float64) (float64, error)) error {
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("bad value %q: %w", arg, err)
		}
		out, err := f(v)
		if err != nil {
			return err
		}
		fmt.Printf("%.5g\n", out)
	}
	return nil
}

func init() {
	convertCmd.AddCommand(r2tCmd, v2tCmd, c2hCmd)
	rootCmd.AddCommand(convertCmd)
}
