package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath determines the configuration file path based on command-line flags,
// environment variables, and default locations.
// Priority:
// 1. --config command-line flag
// 2. JSONMONITOR_CONFIG_PATH environment variable
// 3. config.yaml, config.yml or config.json in the current working directory
// Returns "" when nothing is found.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		if fileExists(configFilePathFlag) {
			return configFilePathFlag
		}
		return ""
	}

	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		if fileExists(envPath) {
			return envPath
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
		path := filepath.Join(cwd, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// Helper function to check if a file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
