package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aleister1102/jsonmonitor/internal/common/errorwrapper"
	"gopkg.in/yaml.v3"
)

const maxConfigFileSize = 1 << 20

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	MonitorConfig      MonitorConfig      `json:"monitor_config,omitempty" yaml:"monitor_config,omitempty"`
	NotificationConfig NotificationConfig `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:          NewDefaultLogConfig(),
		MonitorConfig:      NewDefaultMonitorConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath, supports both JSON and YAML formats.
// YAML is preferred if the file extension is .yaml or .yml. Invalid fields are
// reset to their defaults, first from the file and then after environment
// overrides are applied.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg, _, err := loadGlobalConfig(providedPath)
	return cfg, err
}

// loadGlobalConfig is LoadGlobalConfig that also reports the repaired fields.
func loadGlobalConfig(providedPath string) (*GlobalConfig, []FieldReset, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" && providedPath != "" {
		return nil, nil, errorwrapper.NewConfigError(providedPath, "config file does not exist", os.ErrNotExist)
	}

	if filePath != "" {
		data, err := loadConfigFileContent(filePath)
		if err != nil {
			return nil, nil, err
		}
		if err := parseConfigContent(data, filePath, cfg); err != nil {
			return nil, nil, err
		}
	}

	resets := RepairConfig(cfg)
	ApplyEnvOverrides(cfg)
	resets = append(resets, RepairConfig(cfg)...)
	return cfg, resets, nil
}

// loadConfigFileContent reads the config file, refusing directories and oversized files
func loadConfigFileContent(filePath string) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, errorwrapper.NewConfigError(filePath, "cannot stat config file", err)
	}
	if info.IsDir() {
		return nil, errorwrapper.NewConfigError(filePath, "config path is a directory", nil)
	}
	if info.Size() > maxConfigFileSize {
		return nil, errorwrapper.NewConfigError(filePath, "config file too large", nil)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errorwrapper.NewConfigError(filePath, "cannot read config file", err)
	}
	return data, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewConfigError(filePath, "failed to unmarshal YAML", err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewConfigError(filePath, "failed to unmarshal JSON", err)
	}
	return nil
}
