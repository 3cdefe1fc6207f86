package main

import (
	"github.com/aleister1102/jsonmonitor/internal/config"
	"github.com/aleister1102/jsonmonitor/internal/logger"
	"github.com/aleister1102/jsonmonitor/internal/notifier"
	"github.com/rs/zerolog"
)

// application bundles what every command needs after bootstrap.
type application struct {
	cfg        *config.GlobalConfig
	cfgManager *config.ConfigManager
	logger     zerolog.Logger
}

// bootstrap loads configuration and builds the logger. Invalid fields fall
// back to their defaults one by one; a config file that cannot be read or
// parsed is replaced by defaults plus environment overrides.
func bootstrap() *application {
	bootLogger, _ := logger.New(config.NewDefaultLogConfig())

	app := &application{logger: bootLogger}

	opts := config.DefaultConfigManagerOptions()
	opts.Logger = bootLogger
	cm, err := config.NewConfigManager(configFile, opts)
	if err != nil {
		bootLogger.Warn().Err(err).Msg("Configuration unusable, continuing with defaults")
		app.cfg = config.NewDefaultGlobalConfig()
		config.ApplyEnvOverrides(app.cfg)
		for _, reset := range config.RepairConfig(app.cfg) {
			bootLogger.Warn().Str("field", reset.Field).Interface("value", reset.Value).Msg("Invalid environment value replaced with default")
		}
	} else {
		app.cfgManager = cm
		app.cfg = cm.GetConfig()
	}

	if watchListFile != "" {
		app.cfg.MonitorConfig.WatchListFile = watchListFile
	}
	if checkInterval > 0 {
		app.cfg.MonitorConfig.CheckIntervalSeconds = checkInterval
	}

	appLogger, err := logger.New(app.cfg.LogConfig)
	if err != nil {
		bootLogger.Warn().Err(err).Msg("Failed to build configured logger, using console logger")
	} else {
		app.logger = appLogger
	}

	return app
}

func (a *application) newNotifier() (*notifier.TelegramNotifier, error) {
	return notifier.NewTelegramNotifier(a.cfg.NotificationConfig, nil, a.logger)
}

func (a *application) formatter() *notifier.MessageFormatter {
	return notifier.NewMessageFormatter(a.cfg.MonitorConfig.TimestampLayout, a.cfg.NotificationConfig.ParseMode)
}

func (a *application) close() {
	if a.cfgManager != nil {
		_ = a.cfgManager.Close()
	}
}
