package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// config is the on-disk demo configuration.
type config struct {
	// Backend selects the native backend by name ("wgpu", "software").
	// Empty picks the best available one.
	Backend string `toml:"backend"`

	// Screen is the X screen contexts are created for.
	Screen int `toml:"screen"`

	// Verbose enables debug-level logging.
	Verbose bool `toml:"verbose"`

	Mode modeConfig `toml:"mode"`
}

type modeConfig struct {
	ColorBits    int  `toml:"color_bits"`
	AlphaBits    int  `toml:"alpha_bits"`
	DepthBits    int  `toml:"depth_bits"`
	StencilBits  int  `toml:"stencil_bits"`
	DoubleBuffer bool `toml:"double_buffer"`
	Samples      int  `toml:"samples"`
}

func defaultConfig() config {
	return config{
		Mode: modeConfig{
			ColorBits:    24,
			AlphaBits:    8,
			DepthBits:    24,
			StencilBits:  8,
			DoubleBuffer: true,
		},
	}
}

// loadConfig reads path, falling back to defaults when the file does
// not exist.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}
