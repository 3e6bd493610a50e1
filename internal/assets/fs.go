package assets

import (
	"fmt"
	"os"
)

// FS is the file-system surface the generator writes through.
type FS interface {
	// MkdirAll creates path and any missing parents. Existing directories
	// are not an error.
	MkdirAll(path string) error

	// WriteFile writes data to path, replacing any existing file.
	WriteFile(path string, data []byte) error
}

// OSFS writes to the local file system.
type OSFS struct{}

func (OSFS) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

func (OSFS) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
