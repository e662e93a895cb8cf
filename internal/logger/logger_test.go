package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "app.log")
	log := New(&Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "slidecast-test",
		LogFile:     logFile,
		LogFileOnly: true,
		MaxSizeMB:   10,
		MaxBackups:  1,
		MaxAgeDays:  1,
	})

	log.WithField(FieldJobID, "job-1").Info("render queued")
	if err := Sync(); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}

	var entry map[string]interface{}
	line := strings.TrimSpace(string(data))
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line %q is not JSON: %v", line, err)
	}
	if entry["message"] != "render queued" {
		t.Errorf("message = %v, want %q", entry["message"], "render queued")
	}
	if entry["service"] != "slidecast-test" {
		t.Errorf("service = %v, want slidecast-test", entry["service"])
	}
	if entry[FieldJobID] != "job-1" {
		t.Errorf("job_id = %v, want job-1", entry[FieldJobID])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")
	log := New(&Config{
		Level:       "warn",
		Format:      "json",
		LogFile:     logFile,
		LogFileOnly: true,
	})

	log.Info("below threshold")
	log.Warn("at threshold")
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if strings.Contains(string(data), "below threshold") {
		t.Error("info line written at warn level")
	}
	if !strings.Contains(string(data), "at threshold") {
		t.Error("warn line missing")
	}
}
