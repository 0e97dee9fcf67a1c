// Package config loads the toolkit configuration with viper. A config.yaml
// in the working directory or ./configs overrides the defaults; a missing
// file is not an error.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/stanford-physics108-2015/cryo/internal/thermo"
)

type Config struct {
	// DataDir holds the instrument logs.
	DataDir string `mapstructure:"data_dir"`
	// PlotsDir receives rendered figures, in per-day subdirectories.
	PlotsDir string `mapstructure:"plots_dir"`
	// Formats to save figures in: png, svg, pdf.
	Formats []string `mapstructure:"formats"`
	// SamplingInterval between recorded samples, seconds.
	SamplingInterval float64 `mapstructure:"sampling_interval"`
	// FieldConstant of the magnet, tesla per amp.
	FieldConstant float64     `mapstructure:"field_constant"`
	Thermometer   Thermometer `mapstructure:"thermometer"`
}

// Thermometer holds the divider circuit constants; see thermo.Divider.
type Thermometer struct {
	VEms   float64 `mapstructure:"v_ems"`
	RLarge float64 `mapstructure:"r_large"`
	Scale  float64 `mapstructure:"scale"`
}

// Divider converts the section to the thermo type.
func (t Thermometer) Divider() thermo.Divider {
	return thermo.Divider{VEms: t.VEms, RLarge: t.RLarge, Scale: t.Scale}
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// no config file: run on defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := thermo.DefaultDivider()

	v.SetDefault("data_dir", "data")
	v.SetDefault("plots_dir", "plots")
	v.SetDefault("formats", []string{"png"})
	v.SetDefault("sampling_interval", 0.125)
	v.SetDefault("field_constant", thermo.FieldConstant)
	v.SetDefault("thermometer.v_ems", d.VEms)
	v.SetDefault("thermometer.r_large", d.RLarge)
	v.SetDefault("thermometer.scale", d.Scale)
}
