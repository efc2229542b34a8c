package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rogersnm/roster/internal/flatfile"
	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// EnvDataFile overrides data_file.
const EnvDataFile = "ROSTER_DATA_FILE"

// Config is read from <data-dir>/config.yaml. Each field can be
// overridden by its environment variable.
type Config struct {
	DataFile   string `yaml:"data_file" env:"ROSTER_DATA_FILE"`
	StrictRows bool   `yaml:"strict_rows" env:"ROSTER_STRICT_ROWS"`
	LogLevel   string `yaml:"log_level" env:"ROSTER_LOG_LEVEL"`
	LogFormat  string `yaml:"log_format" env:"ROSTER_LOG_FORMAT"`
}

func Default() *Config {
	return &Config{
		DataFile:  flatfile.DefaultPath,
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// Load reads config.yaml from dataDir, then applies environment overrides.
func Load(dataDir string) (*Config, error) {
	cfg, err := LoadFile(dataDir)
	if err != nil {
		return nil, err
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// LoadFile reads config.yaml from dataDir without looking at the
// environment. A missing file yields the defaults.
func LoadFile(dataDir string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(dataDir, fileName)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	return cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, fileName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Keys lists the names accepted by Set, in file order.
var Keys = []string{"data_file", "strict_rows", "log_level", "log_format"}

// Set assigns a single key by its YAML name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data_file":
		if value == "" {
			return fmt.Errorf("data_file cannot be empty")
		}
		c.DataFile = value
	case "strict_rows":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("strict_rows: %w", err)
		}
		c.StrictRows = b
	case "log_level":
		switch value {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", value)
		}
		c.LogLevel = value
	case "log_format":
		if value != "console" && value != "json" {
			return fmt.Errorf("invalid log_format %q: must be console or json", value)
		}
		c.LogFormat = value
	default:
		return fmt.Errorf("unknown key %q: must be one of %s", key, strings.Join(Keys, ", "))
	}
	return nil
}
