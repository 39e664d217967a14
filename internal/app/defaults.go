package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - DA_CONFIG_PATH: config file location (default: ~/.config/da.toml)
//   - DA_HOME: base directory for da data (default: ~/.local/share/da)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking DA_CONFIG_PATH env var first,
// then falling back to the default ~/.config/da.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("DA_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "da.toml"), nil
}

// getBaseDir returns the base directory for da data, checking DA_HOME env var first,
// then falling back to the XDG default ~/.local/share/da.
func getBaseDir() (string, error) {
	if path := os.Getenv("DA_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "da"), nil
}
