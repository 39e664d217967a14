package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"da-go/internal/config"
	"da-go/internal/da"
)

// NewArchiveFromConfig creates an Archive based on the archive config type.
func NewArchiveFromConfig(cfg config.ArchiveConfig, clock da.Clock, idgen da.IDGenerator) (Archive, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite archive")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
		return NewSQLiteArchive(filepath.Join(cfg.DataDir, "archive.db"), clock, idgen)
	case "memory":
		return NewSQLiteArchive(":memory:", clock, idgen)
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Type)
	}
}
