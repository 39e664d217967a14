package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir: "/home/user/.local/share/da",
		LogDir:  "/home/user/.local/share/da/log",
		Backend: BackendConfig{
			BaseURL:    "https://api.example.com/api",
			TimeoutSec: 45,
		},
		Identity: IdentityConfig{
			TokenURL: "https://app.example.com/api/auth/token",
			UserID:   "user-abc",
		},
		Analysis: AnalysisConfig{
			DefaultModel: "gemini-2.5-pro",
			Models:       []string{"gemini-2.5-flash", "gemini-2.5-pro"},
		},
		Upload: UploadConfig{Description: "test upload"},
		Retry:  RetryConfig{MaxAttempts: 3, BackoffMs: 250},
		Archive: ArchiveConfig{
			Type:    "sqlite",
			DataDir: "/home/user/.local/share/da/archive",
		},
		Credentials: CredentialsConfig{
			Type:           "age",
			CachePath:      "/home/user/.local/share/da/credentials/session.age",
			PublicKeyPath:  "/home/user/.local/share/da/keys/da.pub",
			PrivateKeyPath: "/home/user/.local/share/da/keys/da.key",
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Backend.BaseURL != original.Backend.BaseURL {
		t.Errorf("Backend.BaseURL = %q, want %q", got.Backend.BaseURL, original.Backend.BaseURL)
	}
	if got.Backend.TimeoutSec != 45 {
		t.Errorf("Backend.TimeoutSec = %d, want 45", got.Backend.TimeoutSec)
	}
	if got.Identity.TokenURL != original.Identity.TokenURL {
		t.Errorf("Identity.TokenURL = %q, want %q", got.Identity.TokenURL, original.Identity.TokenURL)
	}
	if got.Identity.UserID != "user-abc" {
		t.Errorf("Identity.UserID = %q, want %q", got.Identity.UserID, "user-abc")
	}
	if got.Analysis.DefaultModel != "gemini-2.5-pro" {
		t.Errorf("Analysis.DefaultModel = %q, want %q", got.Analysis.DefaultModel, "gemini-2.5-pro")
	}
	if len(got.Analysis.Models) != 2 {
		t.Fatalf("len(Analysis.Models) = %d, want 2", len(got.Analysis.Models))
	}
	if got.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", got.Retry.MaxAttempts)
	}
	if got.Archive.Type != "sqlite" {
		t.Errorf("Archive.Type = %q, want %q", got.Archive.Type, "sqlite")
	}
	if got.Credentials.CachePath != original.Credentials.CachePath {
		t.Errorf("Credentials.CachePath = %q, want %q", got.Credentials.CachePath, original.Credentials.CachePath)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/da")

	if cfg.BaseDir != "/data/da" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/da")
	}
	if cfg.LogDir != "/data/da/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/da/log")
	}
	if cfg.Backend.TimeoutSec != 30 {
		t.Errorf("Backend.TimeoutSec = %d, want 30", cfg.Backend.TimeoutSec)
	}
	if cfg.Analysis.DefaultModel != "gemini-2.5-flash" {
		t.Errorf("Analysis.DefaultModel = %q, want %q", cfg.Analysis.DefaultModel, "gemini-2.5-flash")
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("Retry.MaxAttempts = %d, want 1", cfg.Retry.MaxAttempts)
	}
	if cfg.Credentials.PublicKeyPath != "/data/da/keys/da.pub" {
		t.Errorf("Credentials.PublicKeyPath = %q, want %q", cfg.Credentials.PublicKeyPath, "/data/da/keys/da.pub")
	}
	if cfg.Credentials.PrivateKeyPath != "/data/da/keys/da.key" {
		t.Errorf("Credentials.PrivateKeyPath = %q, want %q", cfg.Credentials.PrivateKeyPath, "/data/da/keys/da.key")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "da.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "da.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "da.toml")
		cfg := NewConfig(dir)
		cfg.Backend.BaseURL = "https://api.example.com/api"

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Backend.BaseURL != "https://api.example.com/api" {
			t.Errorf("Backend.BaseURL = %q, want %q", got.Backend.BaseURL, "https://api.example.com/api")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/da.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}
