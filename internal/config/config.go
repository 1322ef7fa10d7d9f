// Package config provides YAML-based configuration loading for Projects Buddy.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration, loaded from projects-buddy.yaml.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Generator GeneratorConfig `yaml:"generator"`
	Executor  ExecutorConfig  `yaml:"executor"`
	Slack     SlackConfig     `yaml:"slack"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Canvas    CanvasConfig    `yaml:"canvas"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig selects and configures the storage backend.
// Driver is "sqlite" (default) or "mysql".
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"` // sqlite file path
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// GeneratorConfig controls the AI task generator subprocess.
type GeneratorConfig struct {
	Binary         string `yaml:"binary"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	FallbackTime   string `yaml:"fallback_time"` // default estimatedTime for stubs missing one
}

// ExecutorConfig controls editor automation for task execution.
type ExecutorConfig struct {
	EditorBinary string `yaml:"editor_binary"`
	CompanionURL string `yaml:"companion_url"`
}

// SlackConfig enables optional task-event notifications.
type SlackConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// ArchiveConfig controls the scheduled sweep that archives completed projects.
type ArchiveConfig struct {
	Schedule string `yaml:"schedule"` // 5-field cron expression
	MaxAge   string `yaml:"max_age"`  // Go duration, e.g. "720h"
}

// CanvasConfig holds minimum mind-map canvas dimensions.
type CanvasConfig struct {
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a Config with all defaults applied and no file read.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "projects-buddy.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Database == "" {
		c.Database.Database = "projects_buddy"
	}
	if c.Database.User == "" {
		c.Database.User = "root"
	}
	if c.Generator.Binary == "" {
		c.Generator.Binary = "claude"
	}
	if c.Generator.TimeoutSeconds == 0 {
		c.Generator.TimeoutSeconds = 120
	}
	if c.Generator.FallbackTime == "" {
		c.Generator.FallbackTime = "1 hour"
	}
	if c.Executor.EditorBinary == "" {
		c.Executor.EditorBinary = "cursor"
	}
	if c.Archive.Schedule == "" {
		c.Archive.Schedule = "0 3 * * *"
	}
	if c.Archive.MaxAge == "" {
		c.Archive.MaxAge = "720h"
	}
	if c.Canvas.MinWidth == 0 {
		c.Canvas.MinWidth = 1200
	}
	if c.Canvas.MinHeight == 0 {
		c.Canvas.MinHeight = 800
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (sqlite, mysql)", c.Database.Driver))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Slack.BotToken != "" && c.Slack.ChannelID == "" {
		errs = append(errs, "slack.channel_id is required when slack.bot_token is set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
