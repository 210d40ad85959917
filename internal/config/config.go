// Package config provides the run configuration of dbf2sql.
//
// Values are resolved in this order, later sources overriding earlier ones:
// defaults, a .env file, DBF2SQL_* environment variables, a YAML file and
// finally the command line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Valentin-Kaiser/go-dbf2sql/dbase"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration of a conversion run.
type Config struct {
	// Encoding of character columns, "auto" interprets the code page mark
	Encoding string `yaml:"encoding"`

	// OutputDir receives the SQL files, next to the sources if empty
	OutputDir string `yaml:"output_dir"`

	// Parallel is the number of files converted at the same time
	Parallel int `yaml:"parallel"`

	// TimeZone DateTime values are rendered in, "Local" or an IANA name
	TimeZone string `yaml:"time_zone"`

	// Debug enables the dbase debug logger
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Encoding: "UTF-8",
		Parallel: 1,
		TimeZone: "Local",
	}
}

// Load builds the configuration from defaults, the .env file in the working
// directory, the environment and, if path is not empty, a YAML file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	cfg := DefaultConfig()
	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	if path != "" {
		if err := LoadFromFile(cfg, path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadFromFile merges a YAML configuration file into cfg.
func LoadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}
	return nil
}

// LoadFromEnv overrides cfg with DBF2SQL_* environment variables.
func LoadFromEnv(cfg *Config) error {
	if v := os.Getenv("DBF2SQL_ENCODING"); v != "" {
		cfg.Encoding = v
	}
	if v := os.Getenv("DBF2SQL_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("DBF2SQL_PARALLEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DBF2SQL_PARALLEL %q: %w", v, err)
		}
		cfg.Parallel = n
	}
	if v := os.Getenv("DBF2SQL_TIME_ZONE"); v != "" {
		cfg.TimeZone = v
	}
	if v := os.Getenv("DBF2SQL_DEBUG"); v != "" {
		cfg.Debug = v == "true" || v == "1"
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", c.Parallel)
	}
	if !strings.EqualFold(strings.TrimSpace(c.Encoding), "auto") {
		if _, err := dbase.ConverterFromName(c.Encoding); err != nil {
			return fmt.Errorf("invalid encoding %q: %w", c.Encoding, err)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.OutputDir != "" {
		info, err := os.Stat(c.OutputDir)
		if err != nil {
			return fmt.Errorf("output_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("output_dir %s is not a directory", c.OutputDir)
		}
	}
	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || strings.EqualFold(c.TimeZone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time_zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
