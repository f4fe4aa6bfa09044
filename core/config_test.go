package core

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigPath)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigFromValidFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DYNSITE_ENV", "")

	path := writeConfig(t, `
env: prod
port: 8081
title: Request Inspector
templateDir: ./templates
minify: false
debugHeaders: true
debugLogs: true
logLevel: warn
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Env != EnvProd {
		t.Errorf("expected Env 'prod', got %q", cfg.Env)
	}
	if cfg.Port != 8081 {
		t.Errorf("expected Port 8081, got %d", cfg.Port)
	}
	if cfg.Title != "Request Inspector" {
		t.Errorf("expected custom title, got %q", cfg.Title)
	}
	if cfg.TemplateDir != "./templates" {
		t.Errorf("expected TemplateDir './templates', got %q", cfg.TemplateDir)
	}
	if cfg.Minify {
		t.Error("expected Minify to be false")
	}
	if !cfg.DebugHeaders || !cfg.DebugLogs {
		t.Error("expected debug flags to be true")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected LogLevel 'warn', got %q", cfg.LogLevel)
	}
}

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DYNSITE_ENV", "")

	cfg, err := LoadConfig("nonexistent.yml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigKeepsDefaultsForOmittedKeys(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DYNSITE_ENV", "")

	path := writeConfig(t, "debugHeaders: true\ntitle: \"\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if !cfg.Minify {
		t.Error("expected Minify to keep its default of true")
	}
	if cfg.Title != "Dynamic Site" {
		t.Errorf("expected fallback title, got %q", cfg.Title)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DYNSITE_ENV", "prod")

	path := writeConfig(t, "env: dev\nport: 8081\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected PORT override 9090, got %d", cfg.Port)
	}
	if cfg.Env != EnvProd {
		t.Errorf("expected DYNSITE_ENV override 'prod', got %q", cfg.Env)
	}
}

func TestLoadConfigRejectsBadPortEnv(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("DYNSITE_ENV", "")

	_, err := LoadConfig("nonexistent.yml")
	if !IsConfigError(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DYNSITE_ENV", "")

	path := writeConfig(t, "port: [1, 2\n")

	_, err := LoadConfig(path)
	if !IsConfigError(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*Config)
		wantErr bool
	}{
		"defaults":       {func(c *Config) {}, false},
		"prod":           {func(c *Config) { c.Env = EnvProd }, false},
		"unknown env":    {func(c *Config) { c.Env = "staging" }, true},
		"zero port":      {func(c *Config) { c.Port = 0 }, true},
		"port too large": {func(c *Config) { c.Port = 70000 }, true},
		"bad log level":  {func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && !IsConfigError(err) {
				t.Errorf("expected config error, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
