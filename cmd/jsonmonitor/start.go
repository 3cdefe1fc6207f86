package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/jsonmonitor/internal/config"
	"github.com/aleister1102/jsonmonitor/internal/monitor"
	"github.com/aleister1102/jsonmonitor/internal/watchset"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start monitoring the watch list",
	Long: `Load the watch list, record a baseline for every file and then check all
files on every tick. A Telegram message is sent for each file whose content
changed since the previous check. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	app := bootstrap()
	defer app.close()
	log := app.logger

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tn, err := app.newNotifier()
	if err != nil {
		return err
	}

	if app.cfgManager != nil && app.cfg.MonitorConfig.HotReload {
		app.cfgManager.OnReload(func(cfg *config.GlobalConfig) {
			tn.UpdateCredentials(cfg.NotificationConfig.BotToken, cfg.NotificationConfig.ChatID)
			log.Info().Bool("has_credentials", cfg.NotificationConfig.HasCredentials()).Msg("Notifier credentials reloaded")
		})
		if app.cfgManager.EnableHotReload() {
			app.cfgManager.StartHotReload(ctx)
		}
	}

	loader := watchset.NewLoader(log)
	targets := loader.Load(app.cfg.MonitorConfig.WatchListFile)
	loader.Describe(targets)

	svc := monitor.NewService(app.cfg.MonitorConfig, targets, tn, log,
		monitor.WithMessageFormatter(app.formatter().FileChanged))
	if err := svc.Start(ctx); err != nil {
		return err
	}

	log.Info().
		Int("files", len(targets)).
		Dur("interval", app.cfg.MonitorConfig.CheckInterval()).
		Msg("JSON monitor running, press Ctrl+C to stop")

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutdown requested")
	case <-svc.Done():
		log.Info().Msg("Monitoring finished")
	}

	// one deadline covers both the monitor's handles and the notifier's sends
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.MonitorConfig.ShutdownTimeout())
	defer cancel()
	_ = svc.Shutdown(shutdownCtx)
	if err := tn.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Some notifications were still in flight at exit")
	}
	return nil
}
