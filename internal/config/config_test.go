package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
server:
  port: 9090

database:
  driver: mysql
  host: 10.0.0.5
  port: 3307
  database: buddy
  user: buddy
  password: hunter2

generator:
  binary: claude
  timeout_seconds: 60
  fallback_time: "2 hours"

executor:
  editor_binary: code
  companion_url: http://localhost:3001

slack:
  bot_token: xoxb-test
  channel_id: C123

archive:
  schedule: "30 2 * * *"
  max_age: 168h

canvas:
  min_width: 1600
  min_height: 1000
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "mysql")
	}
	if cfg.Database.Host != "10.0.0.5" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "10.0.0.5")
	}
	if cfg.Database.Port != 3307 {
		t.Errorf("Database.Port = %d, want 3307", cfg.Database.Port)
	}
	if cfg.Generator.TimeoutSeconds != 60 {
		t.Errorf("Generator.TimeoutSeconds = %d, want 60", cfg.Generator.TimeoutSeconds)
	}
	if cfg.Generator.FallbackTime != "2 hours" {
		t.Errorf("Generator.FallbackTime = %q, want %q", cfg.Generator.FallbackTime, "2 hours")
	}
	if cfg.Executor.EditorBinary != "code" {
		t.Errorf("Executor.EditorBinary = %q, want %q", cfg.Executor.EditorBinary, "code")
	}
	if cfg.Executor.CompanionURL != "http://localhost:3001" {
		t.Errorf("Executor.CompanionURL = %q, want %q", cfg.Executor.CompanionURL, "http://localhost:3001")
	}
	if cfg.Slack.ChannelID != "C123" {
		t.Errorf("Slack.ChannelID = %q, want %q", cfg.Slack.ChannelID, "C123")
	}
	if cfg.Archive.Schedule != "30 2 * * *" {
		t.Errorf("Archive.Schedule = %q, want %q", cfg.Archive.Schedule, "30 2 * * *")
	}
	if cfg.Canvas.MinWidth != 1600 {
		t.Errorf("Canvas.MinWidth = %d, want 1600", cfg.Canvas.MinWidth)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.Database.Path != "projects-buddy.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "projects-buddy.db")
	}
	if cfg.Generator.Binary != "claude" {
		t.Errorf("Generator.Binary = %q, want %q", cfg.Generator.Binary, "claude")
	}
	if cfg.Generator.FallbackTime != "1 hour" {
		t.Errorf("Generator.FallbackTime = %q, want %q", cfg.Generator.FallbackTime, "1 hour")
	}
	if cfg.Executor.EditorBinary != "cursor" {
		t.Errorf("Executor.EditorBinary = %q, want %q", cfg.Executor.EditorBinary, "cursor")
	}
	if cfg.Archive.MaxAge != "720h" {
		t.Errorf("Archive.MaxAge = %q, want %q", cfg.Archive.MaxAge, "720h")
	}
	if cfg.Canvas.MinWidth != 1200 || cfg.Canvas.MinHeight != 800 {
		t.Errorf("Canvas = %dx%d, want 1200x800", cfg.Canvas.MinWidth, cfg.Canvas.MinHeight)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "sqlite")
	}
}

func TestParse_InvalidDriver(t *testing.T) {
	_, err := Parse([]byte("database:\n  driver: postgres\n"))
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "database.driver") {
		t.Errorf("error = %q, want mention of database.driver", err)
	}
}

func TestParse_SlackChannelRequired(t *testing.T) {
	_, err := Parse([]byte("slack:\n  bot_token: xoxb-abc\n"))
	if err == nil {
		t.Fatal("expected error for slack token without channel")
	}
	if !strings.Contains(err.Error(), "slack.channel_id") {
		t.Errorf("error = %q, want mention of slack.channel_id", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("server: [not a map"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects-buddy.yaml")
	if err := os.WriteFile(path, []byte(fullYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Database != "buddy" {
		t.Errorf("Database.Database = %q, want %q", cfg.Database.Database, "buddy")
	}
}
