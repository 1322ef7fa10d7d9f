package db

import (
	"path/filepath"
	"testing"

	"github.com/adrianrdguez/projects-buddy/internal/config"
	"github.com/adrianrdguez/projects-buddy/internal/models"
)

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		User: "root", Host: "127.0.0.1", Port: 3306, Database: "buddy",
	})
	want := "root@tcp(127.0.0.1:3306)/buddy?parseTime=true"
	if got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestDSN_WithPassword(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		User: "buddy", Password: "hunter2", Host: "db.local", Port: 3307, Database: "pb",
	})
	want := "buddy:hunter2@tcp(db.local:3307)/pb?parseTime=true"
	if got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "postgres"})
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestConnect_SqliteAndMigrate(t *testing.T) {
	gormDB, err := Connect(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if err := AutoMigrate(gormDB); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	for _, m := range AllModels() {
		if !gormDB.Migrator().HasTable(m) {
			t.Errorf("table for %T not created", m)
		}
	}

	// Smoke test a round trip.
	p := models.Project{ID: "p1", Name: "Demo", Status: "active"}
	if err := gormDB.Create(&p).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	var loaded models.Project
	if err := gormDB.First(&loaded, "id = ?", "p1").Error; err != nil {
		t.Fatalf("load project: %v", err)
	}
	if loaded.Name != "Demo" {
		t.Errorf("Name = %q, want %q", loaded.Name, "Demo")
	}
}
