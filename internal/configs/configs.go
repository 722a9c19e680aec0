package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"

	DefaultConfigFile = "task-tracker.toml"
	DefaultJSONPath   = "tasks.json"
	DefaultSQLitePath = "tasks.db"
)

type Config struct {
	Store StoreConfig `toml:"store"`
	Log   LogConfig   `toml:"log"`
}

type StoreConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Overrides carries values set explicitly on the command line.
type Overrides struct {
	ConfigFile string
	Driver     string
	Path       string
	LogLevel   string
}

// Load resolves configuration from, in increasing priority: defaults, the
// TOML config file, environment variables and command-line overrides.
func Load(overrides Overrides) (Config, error) {
	cfg := Config{
		Store: StoreConfig{Driver: DriverJSON},
		Log:   LogConfig{Level: "warn", Format: "text"},
	}

	if err := loadConfigFile(&cfg, configFilePath(overrides.ConfigFile)); err != nil {
		return Config{}, err
	}

	cfg.Store.Driver = getEnv("TASK_STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.Path = getEnv("TASK_STORE_PATH", cfg.Store.Path)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	if overrides.Driver != "" {
		cfg.Store.Driver = overrides.Driver
	}
	if overrides.Path != "" {
		cfg.Store.Path = overrides.Path
	}
	if overrides.LogLevel != "" {
		cfg.Log.Level = overrides.LogLevel
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultPath(cfg.Store.Driver)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Store.Driver {
	case DriverJSON, DriverSQLite:
	default:
		return fmt.Errorf("TASK_STORE_DRIVER must be %q or %q, got %q", DriverJSON, DriverSQLite, cfg.Store.Driver)
	}
	if strings.TrimSpace(cfg.Store.Path) == "" {
		return errors.New("TASK_STORE_PATH must not be empty")
	}
	return nil
}

func configFilePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return getEnv("TASK_TRACKER_CONFIG", "")
}

// loadConfigFile decodes path into cfg. With no explicit path, the default
// file in the working directory is used when present.
func loadConfigFile(cfg *Config, path string) error {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("stat config file %s: %w", DefaultConfigFile, err)
		}
		path = DefaultConfigFile
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

func defaultPath(driver string) string {
	if driver == DriverSQLite {
		return DefaultSQLitePath
	}
	return DefaultJSONPath
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
