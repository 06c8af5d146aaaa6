// Package config merges an optional .env file with the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
)

type Config struct {
	Variant       string `mapstructure:"SRBREAK_VARIANT"`
	LogLevel      string `mapstructure:"SRBREAK_LOG_LEVEL"`
	Seed          string `mapstructure:"SRBREAK_SEED"`
	ValidateReads int    `mapstructure:"SRBREAK_VALIDATE_READS"`
	FramesDir     string `mapstructure:"SRBREAK_FRAMES_DIR"`
	FrameEvery    int    `mapstructure:"SRBREAK_FRAME_EVERY"`
}

// Keys lists every environment variable Load looks at.
var Keys = []string{
	"SRBREAK_VARIANT",
	"SRBREAK_LOG_LEVEL",
	"SRBREAK_SEED",
	"SRBREAK_VALIDATE_READS",
	"SRBREAK_FRAMES_DIR",
	"SRBREAK_FRAME_EVERY",
}

func Default() Config {
	return Config{
		Variant:       "norm",
		LogLevel:      "info",
		ValidateReads: 16,
		FrameEvery:    8,
	}
}

// Load starts from Default, applies envFile if it exists and then the
// process environment, which wins over the file.
func Load(envFile string) (Config, error) {
	values := make(map[string]string)

	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading %s: %w", envFile, err)
		}

		for _, key := range Keys {
			if value, ok := fileValues[key]; ok {
				values[key] = value
			}
		}
	}

	for _, key := range Keys {
		if value, ok := os.LookupEnv(key); ok {
			values[key] = value
		}
	}

	cfg := Default()
	if err := mapstructure.WeakDecode(values, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}

	return cfg, nil
}
