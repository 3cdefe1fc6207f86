package config

import (
	"time"
)

// MonitorConfig defines configuration for the poll-diff-notify loop
type MonitorConfig struct {
	WatchListFile        string `json:"watch_list_file,omitempty" yaml:"watch_list_file,omitempty"`
	CheckIntervalSeconds int    `json:"check_interval_seconds,omitempty" yaml:"check_interval_seconds,omitempty" validate:"omitempty,min=1"`
	MaxConcurrentChecks  int    `json:"max_concurrent_checks,omitempty" yaml:"max_concurrent_checks,omitempty" validate:"omitempty,min=1,max=64"`

	// MaxCycles stops the loop after N ticks (including the initial pass); 0 runs until stopped.
	MaxCycles           int    `json:"max_cycles,omitempty" yaml:"max_cycles,omitempty" validate:"omitempty,min=0"`
	MaxFileSizeMiB      int    `json:"max_file_size_mib,omitempty" yaml:"max_file_size_mib,omitempty" validate:"omitempty,min=1"`
	ShutdownTimeoutSecs int    `json:"shutdown_timeout_seconds,omitempty" yaml:"shutdown_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	TimestampLayout     string `json:"timestamp_layout,omitempty" yaml:"timestamp_layout,omitempty"`
	HotReload           bool   `json:"hot_reload" yaml:"hot_reload"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		WatchListFile:        DefaultWatchListFile,
		CheckIntervalSeconds: DefaultCheckIntervalSeconds,
		MaxConcurrentChecks:  DefaultMaxConcurrentChecks,
		MaxCycles:            DefaultMaxCycles,
		MaxFileSizeMiB:       DefaultMaxWatchedFileSizeMiB,
		ShutdownTimeoutSecs:  DefaultShutdownTimeoutSecs,
		TimestampLayout:      DefaultTimestampLayout,
		HotReload:            false,
	}
}

// CheckInterval returns the polling period, falling back to the default when unset.
func (c MonitorConfig) CheckInterval() time.Duration {
	if c.CheckIntervalSeconds <= 0 {
		return DefaultCheckIntervalSeconds * time.Second
	}
	return time.Duration(c.CheckIntervalSeconds) * time.Second
}

// ShutdownTimeout bounds how long Stop waits for in-flight notifications.
func (c MonitorConfig) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSecs <= 0 {
		return DefaultShutdownTimeoutSecs * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSecs) * time.Second
}

// MaxFileSize returns the per-file read limit in bytes.
func (c MonitorConfig) MaxFileSize() int64 {
	if c.MaxFileSizeMiB <= 0 {
		return DefaultMaxWatchedFileSizeMiB << 20
	}
	return int64(c.MaxFileSizeMiB) << 20
}
