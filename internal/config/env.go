package config

import "os"

// ApplyEnvOverrides copies credential and operational settings from the
// environment onto cfg. Non-empty environment values win over the file.
func ApplyEnvOverrides(cfg *GlobalConfig) {
	if cfg == nil {
		return
	}
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvBotToken, &cfg.NotificationConfig.BotToken},
		{EnvChatID, &cfg.NotificationConfig.ChatID},
		{EnvTelegramAPI, &cfg.NotificationConfig.APIBaseURL},
		{EnvLogLevel, &cfg.LogConfig.Level},
		{EnvWatchListFile, &cfg.MonitorConfig.WatchListFile},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.target = v
		}
	}
}
