package monitor

import (
	"sync"

	"github.com/aleister1102/jsonmonitor/internal/models"
)

// FingerprintStore remembers the last fingerprint observed per target name.
// It lives only as long as the owning Service.
type FingerprintStore struct {
	mu      sync.RWMutex
	entries map[string]models.Fingerprint
}

// NewFingerprintStore creates an empty store
func NewFingerprintStore() *FingerprintStore {
	return &FingerprintStore{entries: make(map[string]models.Fingerprint)}
}

// Get returns the stored fingerprint for name and whether one exists
func (fs *FingerprintStore) Get(name string) (models.Fingerprint, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	fp, ok := fs.entries[name]
	return fp, ok
}

// Set records fp as the latest fingerprint for name
func (fs *FingerprintStore) Set(name string, fp models.Fingerprint) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.entries[name] = fp
}

// Len returns the number of targets with a baseline
func (fs *FingerprintStore) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.entries)
}
