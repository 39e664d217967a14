package credentials

import (
	"path/filepath"
	"testing"
)

func TestCache_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(filepath.Join(dir, "credentials", "session"), NewPlainEncryptor())

	if c.Exists() {
		t.Error("Exists() = true before Save")
	}

	if err := c.Save("session-credential"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !c.Exists() {
		t.Error("Exists() = false after Save")
	}

	got, err := c.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "session-credential" {
		t.Errorf("Load() = %q, want %q", got, "session-credential")
	}
}

func TestCache_SaveEmptyCredential(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "session"), NewPlainEncryptor())
	if err := c.Save(""); err == nil {
		t.Error("Save(\"\") should return error")
	}
}

func TestCache_LoadMissingFile(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "session"), NewPlainEncryptor())
	if _, err := c.Load(""); err == nil {
		t.Error("Load() should fail for missing cache file")
	}
}

func TestCache_Clear(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(filepath.Join(dir, "session"), NewPlainEncryptor())

	if err := c.Save("cred"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if c.Exists() {
		t.Error("Exists() = true after Clear")
	}

	// Clearing an absent cache is not an error.
	if err := c.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestCache_WithAgeEncryptor(t *testing.T) {
	dir := t.TempDir()
	enc := NewAgeEncryptor(
		filepath.Join(dir, "keys", "da.pub"),
		filepath.Join(dir, "keys", "da.key"),
	)
	if err := enc.Setup("pass"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	c := NewCache(filepath.Join(dir, "credentials", "session.age"), enc)
	if err := c.Save("secret-session"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := c.Load("wrong-pass"); err == nil {
		t.Error("Load() with wrong passphrase should return error")
	}

	got, err := c.Load("pass")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "secret-session" {
		t.Errorf("Load() = %q", got)
	}
}
