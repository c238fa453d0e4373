package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/mitchellh/mapstructure"
)

const FileName = "config.json"

// Config holds the defaults every command falls back to when a flag is not given
type Config struct {
	Address         string `mapstructure:"address"`
	LogLevel        int    `mapstructure:"logLevel"`
	Strategy        string `mapstructure:"strategy"`
	Format          string `mapstructure:"format"`
	Seed            uint64 `mapstructure:"seed"`
	MaxRequestBytes int64  `mapstructure:"maxRequestBytes"`
}

func Default() Config {
	return Config{
		Address:         ":8080",
		LogLevel:        0,
		Strategy:        "queue",
		Format:          "text",
		Seed:            1,
		MaxRequestBytes: 32 << 20,
	}
}

// Load decodes the JSON file over the defaults. An empty file name looks for config.json next to the executable and silently keeps the defaults when there is none
func Load(file string) (Config, error) {
	explicit := file != ""
	if !explicit {
		file = defaultPath()
	}

	config := Default()
	if file == "" {
		return config, nil
	}

	bytes, err := os.ReadFile(file)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}

	var configJson map[string]any
	if err := json.Unmarshal(bytes, &configJson); err != nil {
		return Config{}, fmt.Errorf("cannot parse config file %v: %w", file, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(configJson); err != nil {
		return Config{}, fmt.Errorf("cannot decode config file %v: %w", file, err)
	}

	return config, nil
}

func defaultPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	return path.Join(path.Dir(execPath), FileName)
}
