package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "dynsite.config.yml"

	EnvDev  = "dev"
	EnvProd = "prod"
)

type Config struct {
	Env          string `yaml:"env"`
	Port         int    `yaml:"port"`
	Title        string `yaml:"title"`
	TemplateDir  string `yaml:"templateDir"`
	Minify       bool   `yaml:"minify"`
	DebugHeaders bool   `yaml:"debugHeaders"`
	DebugLogs    bool   `yaml:"debugLogs"`
	LogLevel     string `yaml:"logLevel"`
}

func DefaultConfig() Config {
	return Config{
		Env:      EnvDev,
		Port:     3000,
		Title:    "Dynamic Site",
		Minify:   true,
		LogLevel: "info",
	}
}

// LoadConfig reads path over the defaults, then applies the PORT and
// DYNSITE_ENV environment overrides. A missing file is not an error.
var LoadConfig = func(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if cfg.Title == "" {
		cfg.Title = DefaultConfig().Title
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultConfig().LogLevel
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	if raw := strings.TrimSpace(os.Getenv("PORT")); raw != "" {
		port, err := cast.ToIntE(raw)
		if err != nil {
			return fmt.Errorf("%w: PORT=%q is not a number", ErrInvalidConfig, raw)
		}
		cfg.Port = port
	}
	if env := strings.TrimSpace(os.Getenv("DYNSITE_ENV")); env != "" {
		cfg.Env = env
	}
	return nil
}

func (c Config) Validate() error {
	if c.Env != EnvDev && c.Env != EnvProd {
		return fmt.Errorf("%w: env must be %q or %q, got %q", ErrInvalidConfig, EnvDev, EnvProd, c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q: %v", ErrInvalidConfig, c.LogLevel, err)
	}
	return nil
}

func (c Config) IsDev() bool {
	return c.Env == EnvDev
}
