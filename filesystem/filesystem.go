// Package filesystem routes every file operation through a swappable afero backend.
package filesystem

import (
	"path/filepath"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory backend. Tests call it from init.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// WriteFile creates the parent directories of path and then writes data,
// truncating any existing file.
func WriteFile(path string, data []byte) error {
	if err := backend.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return backend.WriteFile(path, data, 0o644)
}
