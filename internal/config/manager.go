package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ConfigManager holds the current configuration and optionally reloads it
// when the config file changes on disk.
type ConfigManager struct {
	mu           sync.RWMutex
	config       *GlobalConfig
	configPath   string
	logger       zerolog.Logger
	watcher      *fsnotify.Watcher
	stopChan     chan struct{}
	loopDone     chan struct{}
	closeOnce    sync.Once
	lastModified time.Time
	listeners    []func(*GlobalConfig)

	hotReloadEnabled bool
	reloadDelay      time.Duration
}

// ConfigManagerOptions holds options for creating a ConfigManager
type ConfigManagerOptions struct {
	Logger           zerolog.Logger
	HotReloadEnabled bool
	ReloadDelay      time.Duration
}

// DefaultConfigManagerOptions returns default options for ConfigManager
func DefaultConfigManagerOptions() ConfigManagerOptions {
	return ConfigManagerOptions{
		Logger:           zerolog.Nop(),
		HotReloadEnabled: false,
		ReloadDelay:      DefaultHotReloadDelayMillis * time.Millisecond, // avoid rapid successive reloads
	}
}

// NewConfigManager loads and validates the configuration at configPath.
// An empty configPath searches the default locations.
func NewConfigManager(configPath string, opts ConfigManagerOptions) (*ConfigManager, error) {
	cm := &ConfigManager{
		configPath:  configPath,
		logger:      opts.Logger.With().Str("component", "ConfigManager").Logger(),
		stopChan:    make(chan struct{}),
		reloadDelay: opts.ReloadDelay,
	}
	if cm.reloadDelay <= 0 {
		cm.reloadDelay = DefaultHotReloadDelayMillis * time.Millisecond
	}

	if err := cm.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load initial configuration: %w", err)
	}

	if opts.HotReloadEnabled {
		cm.EnableHotReload()
	}

	return cm, nil
}

// EnableHotReload starts watching the config file. It reports whether
// hot-reload is active; failures are logged and leave it disabled.
func (cm *ConfigManager) EnableHotReload() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.watcher != nil {
		return true
	}
	if cm.configPath == "" {
		cm.logger.Info().Msg("No config file found, hot-reload disabled")
		cm.hotReloadEnabled = false
		return false
	}
	if err := cm.setupFileWatcher(); err != nil {
		cm.logger.Warn().Err(err).Msg("Failed to setup file watcher, hot-reload disabled")
		cm.hotReloadEnabled = false
		return false
	}
	cm.hotReloadEnabled = true
	return true
}

// GetConfig returns a copy of the current configuration (thread-safe)
func (cm *ConfigManager) GetConfig() *GlobalConfig {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.config == nil {
		return NewDefaultGlobalConfig()
	}
	return cm.copyConfig(cm.config)
}

// GetConfigPath returns the resolved configuration file path, "" if none
func (cm *ConfigManager) GetConfigPath() string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.configPath
}

// IsHotReloadEnabled returns whether hot-reload is enabled
func (cm *ConfigManager) IsHotReloadEnabled() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.hotReloadEnabled
}

// OnReload registers fn to be called with the new configuration after every
// successful reload.
func (cm *ConfigManager) OnReload(fn func(*GlobalConfig)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.listeners = append(cm.listeners, fn)
}

// ReloadConfig manually reloads the configuration from file and notifies listeners.
// On failure the previous configuration stays active.
func (cm *ConfigManager) ReloadConfig() error {
	cm.mu.Lock()
	if err := cm.loadConfig(); err != nil {
		cm.mu.Unlock()
		return err
	}
	snapshot := cm.copyConfig(cm.config)
	listeners := append([]func(*GlobalConfig){}, cm.listeners...)
	cm.mu.Unlock()

	for _, fn := range listeners {
		fn(cm.copyConfig(snapshot))
	}
	return nil
}

// StartHotReload starts the hot-reload goroutine (non-blocking)
func (cm *ConfigManager) StartHotReload(ctx context.Context) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if !cm.hotReloadEnabled || cm.loopDone != nil {
		return
	}

	cm.loopDone = make(chan struct{})
	go cm.hotReloadLoop(ctx, cm.loopDone)
}

// Close stops the configuration manager and cleans up resources
func (cm *ConfigManager) Close() error {
	var err error
	cm.closeOnce.Do(func() {
		close(cm.stopChan)
		cm.mu.RLock()
		watcher, loopDone := cm.watcher, cm.loopDone
		cm.mu.RUnlock()

		if watcher != nil {
			err = watcher.Close()
		}
		if loopDone != nil {
			<-loopDone
		}
	})
	return err
}

// loadConfig loads configuration from file (internal method, assumes lock is held)
func (cm *ConfigManager) loadConfig() error {
	if cm.configPath == "" {
		cm.configPath = GetConfigPath("")
	}

	config, resets, err := loadGlobalConfig(cm.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := ValidateConfig(config); err != nil {
		return err
	}
	for _, reset := range resets {
		cm.logger.Warn().
			Str("field", reset.Field).
			Interface("value", reset.Value).
			Interface("default", reset.Default).
			Msg("Invalid configuration value replaced with default")
	}

	if cm.configPath != "" {
		if abs, err := filepath.Abs(cm.configPath); err == nil {
			cm.configPath = abs
		}
		if stat, err := os.Stat(cm.configPath); err == nil {
			cm.lastModified = stat.ModTime()
		}
	}

	cm.config = config
	cm.logger.Info().Str("path", cm.configPath).Msg("Configuration loaded successfully")

	return nil
}

// setupFileWatcher watches the directory containing the config file so that
// editors which replace the file on save are still observed.
func (cm *ConfigManager) setupFileWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	configDir := filepath.Dir(cm.configPath)
	if err := watcher.Add(configDir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config directory '%s': %w", configDir, err)
	}

	cm.watcher = watcher
	cm.logger.Info().Str("directory", configDir).Msg("File watcher setup for hot-reload")

	return nil
}

// hotReloadLoop runs the hot-reload monitoring loop
func (cm *ConfigManager) hotReloadLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	reloadTimer := time.NewTimer(cm.reloadDelay)
	reloadTimer.Stop()
	defer reloadTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			cm.logger.Info().Msg("Hot-reload loop stopped due to context cancellation")
			return

		case <-cm.stopChan:
			cm.logger.Info().Msg("Hot-reload loop stopped")
			return

		case event, ok := <-cm.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != cm.configPath {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				cm.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Config file change detected")
				reloadTimer.Reset(cm.reloadDelay)
			}

		case err, ok := <-cm.watcher.Errors:
			if !ok {
				return
			}
			cm.logger.Error().Err(err).Msg("File watcher error")

		case <-reloadTimer.C:
			stat, err := os.Stat(cm.configPath)
			if err != nil {
				cm.logger.Warn().Err(err).Msg("Config file disappeared, keeping current configuration")
				continue
			}
			cm.mu.RLock()
			changed := stat.ModTime().After(cm.lastModified)
			cm.mu.RUnlock()
			if !changed {
				continue
			}
			cm.logger.Info().Msg("Reloading configuration due to file change")
			if err := cm.ReloadConfig(); err != nil {
				cm.logger.Error().Err(err).Msg("Failed to reload configuration, keeping previous one")
			} else {
				cm.logger.Info().Msg("Configuration reloaded successfully")
			}
		}
	}
}

// copyConfig creates a copy of the configuration; all sections are plain values
func (cm *ConfigManager) copyConfig(src *GlobalConfig) *GlobalConfig {
	if src == nil {
		return NewDefaultGlobalConfig()
	}
	dst := *src
	return &dst
}
