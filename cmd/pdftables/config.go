package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OCRConfig controls the OCR fallback stage.
type OCRConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
	Workers  int    `yaml:"workers"`
}

// Config holds the CLI configuration. Flags override file values.
type Config struct {
	Workers            int       `yaml:"workers"`
	DetectionThreshold float64   `yaml:"detection_threshold"`
	DBPath             string    `yaml:"db_path"`
	OCR                OCRConfig `yaml:"ocr"`
}

func defaultConfig() Config {
	return Config{
		Workers:            4,
		DetectionThreshold: 0.5,
		DBPath:             "pdftables.db",
		OCR: OCRConfig{
			Enabled:  false,
			Language: "eng",
			Workers:  4,
		},
	}
}

// loadConfig reads a YAML config file over the defaults. A missing
// path returns the defaults unchanged.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
