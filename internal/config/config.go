package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the main configuration for da.
type Config struct {
	BaseDir string `toml:"base_dir"`
	LogDir  string `toml:"log_dir"`

	Backend     BackendConfig     `toml:"backend"`
	Identity    IdentityConfig    `toml:"identity"`
	Analysis    AnalysisConfig    `toml:"analysis"`
	Upload      UploadConfig      `toml:"upload"`
	Retry       RetryConfig       `toml:"retry"`
	Archive     ArchiveConfig     `toml:"archive"`
	Credentials CredentialsConfig `toml:"credentials"`
}

// BackendConfig locates the document-analysis API.
type BackendConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// IdentityConfig locates the token-issuing endpoint of the identity layer
// and carries the user id stamped into upload payloads.
type IdentityConfig struct {
	TokenURL string `toml:"token_url"`
	UserID   string `toml:"user_id"`
}

// AnalysisConfig seeds the model selection.
type AnalysisConfig struct {
	DefaultModel string   `toml:"default_model"`
	Models       []string `toml:"models"`
}

// UploadConfig carries upload defaults.
type UploadConfig struct {
	Description string `toml:"description"`
}

// RetryConfig is the explicit retry stance for backend calls. The default
// of one attempt means no retry; raising max_attempts opts in.
type RetryConfig struct {
	MaxAttempts int `toml:"max_attempts"`
	BackoffMs   int `toml:"backoff_ms"`
}

// ArchiveConfig configures the local report archive.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type ArchiveConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// CredentialsConfig configures the at-rest credential store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type CredentialsConfig struct {
	Type           string `toml:"type"` // "age" (default) or "plain"
	CachePath      string `toml:"cache_path"`
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// NewConfig creates a Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Backend: BackendConfig{
			TimeoutSec: 30,
		},
		Analysis: AnalysisConfig{
			DefaultModel: "gemini-2.5-flash",
			Models:       []string{"gemini-2.5-flash", "gemini-2.5-pro"},
		},
		Upload: UploadConfig{
			Description: "Uploaded via da",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			BackoffMs:   500,
		},
		Archive: ArchiveConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "archive"),
		},
		Credentials: CredentialsConfig{
			Type:           "age",
			CachePath:      filepath.Join(baseDir, "credentials", "session.age"),
			PublicKeyPath:  filepath.Join(baseDir, "keys", "da.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "da.key"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
