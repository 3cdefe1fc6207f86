package models

import "path/filepath"

// WatchTarget is a named file path under periodic observation.
type WatchTarget struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// DisplayName returns the file name used in notifications.
func (t WatchTarget) DisplayName() string {
	return filepath.Base(t.Path)
}
