// Package filesystem routes every file access of seaplay through a swappable afero backend.
//
// Production code runs against the OS; tests switch to an in-memory backend so config,
// logs and watch history never touch the real disk.
package filesystem

import (
	"sync"

	"github.com/spf13/afero"
)

var (
	mu      sync.RWMutex
	backend = afero.Afero{Fs: afero.NewOsFs()}
)

// API returns the active backend.
func API() afero.Afero {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Use replaces the active backend with fs.
func Use(fs afero.Fs) {
	mu.Lock()
	defer mu.Unlock()
	backend = afero.Afero{Fs: fs}
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs installs a volatile in-memory backend for tests.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}
