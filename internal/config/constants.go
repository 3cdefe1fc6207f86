package config

// Version is reported by the CLI and in the notifier User-Agent.
const Version = "1.1.0"

const (
	// Monitor Defaults
	DefaultWatchListFile         = "./monitor-files.txt"
	DefaultCheckIntervalSeconds  = 5
	DefaultMaxConcurrentChecks   = 1
	DefaultMaxCycles             = 0 // run until stopped
	DefaultShutdownTimeoutSecs   = 10
	DefaultTimestampLayout       = "1/2/2006, 3:04:05 PM"
	DefaultNotificationPreview   = 50
	DefaultHotReloadDelayMillis  = 2000
	DefaultMaxWatchedFileSizeMiB = 64

	// Notification Defaults
	DefaultTelegramAPIBaseURL      = "https://api.telegram.org"
	DefaultParseMode               = "Markdown"
	DefaultNotificationTimeoutSecs = 10
	ChatIDPlaceholder              = "YOUR_CHAT_ID_HERE"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Environment variables
	EnvConfigPath    = "JSONMONITOR_CONFIG_PATH"
	EnvBotToken      = "TELEGRAM_BOT_TOKEN"
	EnvChatID        = "TELEGRAM_CHAT_ID"
	EnvTelegramAPI   = "TELEGRAM_API_BASE_URL"
	EnvLogLevel      = "JSONMONITOR_LOG_LEVEL"
	EnvWatchListFile = "JSONMONITOR_WATCH_LIST"
)
