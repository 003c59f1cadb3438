package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/viz"
)

// settings layers flag > ORRERY_* env > keys in the --config file >
// the given defaults.
func settings(cmd *cobra.Command, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	v.SetEnvPrefix("ORRERY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && configFile == "" {
		return viz.RunPicker(logger)
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	v, err := settings(cmd, map[string]interface{}{
		"fps":   cfg.FPS,
		"theme": viz.Themes[0].Name,
	})
	if err != nil {
		return err
	}

	sys, err := cfg.Build(logger)
	if err != nil {
		return err
	}

	rate := v.GetFloat64("fps")
	if !(rate > 0) {
		rate = config.DefaultFPS
	}
	m := viz.NewModel(sys, cfg.Name, rate)
	m.SetTheme(v.GetString("theme"))
	return viz.Run(m)
}
