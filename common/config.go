package common

import (
	"os"

	"gopkg.in/yaml.v3"
)

type BallConfig struct {
	Pos    [2]float64 `yaml:"pos"`
	Vel    [2]float64 `yaml:"vel"`
	Radius float64    `yaml:"radius"`
	Mass   float64    `yaml:"mass"`
}

type Config struct {
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Simulation struct {
		ContainerRadius float64      `yaml:"container_radius"`
		Balls           []BallConfig `yaml:"balls"`
	} `yaml:"simulation"`

	Render struct {
		Window struct {
			Width      int  `yaml:"width"`
			Height     int  `yaml:"height"`
			Fullscreen bool `yaml:"fullscreen"`
		} `yaml:"window"`
	} `yaml:"render"`

	Telemetry struct {
		Addr string  `yaml:"addr"`
		Tick float64 `yaml:"tick"`
	} `yaml:"telemetry"`
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
