package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("database.driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Render.Workers != 4 {
		t.Errorf("render.workers = %d, want 4", cfg.Render.Workers)
	}
	if cfg.Render.OutputFile != "out/final_1080p.mp4" {
		t.Errorf("render.output_file = %q", cfg.Render.OutputFile)
	}

	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log defaults = %q/%q, want info/json", cfg.Log.Level, cfg.Log.Format)
	}
	if cfg.Log.File == "" {
		t.Error("log.file default is empty, file rotation unreachable")
	}
	if cfg.Log.MaxSizeMB != 100 || cfg.Log.MaxBackups != 7 || cfg.Log.MaxAgeDays != 30 {
		t.Errorf("rotation defaults = %d/%d/%d, want 100/7/30",
			cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays)
	}
	if !cfg.Log.Compress {
		t.Error("log.compress default = false, want true")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", logFile)
	t.Setenv("LOG_FILE_ONLY", "true")
	t.Setenv("LOG_MAX_BACKUPS", "3")
	t.Setenv("DATABASE_PASSWORD", "s3cret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.File != logFile {
		t.Errorf("log.file = %q, want %q", cfg.Log.File, logFile)
	}
	if !cfg.Log.FileOnly {
		t.Error("log.file_only = false, want true")
	}
	if cfg.Log.MaxBackups != 3 {
		t.Errorf("log.max_backups = %d, want 3", cfg.Log.MaxBackups)
	}
	if cfg.Database.Password != "s3cret" {
		t.Error("database.password did not pick up DATABASE_PASSWORD")
	}
}

func TestDatabaseDSN(t *testing.T) {
	sqlite := DatabaseConfig{Driver: "sqlite", Path: "./data/store.db"}
	if got := sqlite.DSN(); got != "./data/store.db" {
		t.Errorf("sqlite dsn = %q", got)
	}

	pg := DatabaseConfig{
		Driver: "postgres", Host: "db", Port: 5432,
		User: "slidecast", Password: "pw", Name: "slidecast", SSLMode: "disable",
	}
	want := "host=db port=5432 user=slidecast password=pw dbname=slidecast sslmode=disable"
	if got := pg.DSN(); got != want {
		t.Errorf("postgres dsn = %q, want %q", got, want)
	}
}
