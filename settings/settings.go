// Package settings loads the demo's runtime options.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the demo's runtime options. Character tuning lives in the
// prefab yaml, not here.
type Settings struct {
	LogLevel  string  `mapstructure:"log_level"`
	LogFormat string  `mapstructure:"log_format"`
	Spec      string  `mapstructure:"spec"`
	Lamp      string  `mapstructure:"lamp_script"`
	Watch     bool    `mapstructure:"watch"`
	TPS       int     `mapstructure:"tps"`
	Scale     float64 `mapstructure:"scale"`
	MouseSens float64 `mapstructure:"mouse_sensitivity"`
	Damage    float64 `mapstructure:"test_damage"`
	Volume    float64 `mapstructure:"footstep_volume"`
}

// Load reads fpsdemo.yaml from dir when present and applies
// FPSDEMO_* environment overrides on top of the defaults.
func Load(dir string) (Settings, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("spec", "character.yaml")
	v.SetDefault("lamp_script", "scripts/lamp.tengo")
	v.SetDefault("watch", true)
	v.SetDefault("tps", 60)
	v.SetDefault("scale", 24.0)
	v.SetDefault("mouse_sensitivity", 0.1)
	v.SetDefault("test_damage", 15.0)
	v.SetDefault("footstep_volume", 0.4)

	v.SetConfigName("fpsdemo")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("FPSDEMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("settings: read: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("settings: decode: %w", err)
	}
	if s.TPS <= 0 {
		return Settings{}, fmt.Errorf("settings: tps must be positive, got %d", s.TPS)
	}
	if s.Scale <= 0 {
		return Settings{}, fmt.Errorf("settings: scale must be positive, got %g", s.Scale)
	}
	return s, nil
}
