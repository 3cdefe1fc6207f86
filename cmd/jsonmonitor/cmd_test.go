package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aleister1102/jsonmonitor/internal/config"
	"github.com/aleister1102/jsonmonitor/internal/notifier"
	"github.com/aleister1102/jsonmonitor/internal/notifier/telegram"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{config.EnvConfigPath, config.EnvBotToken, config.EnvChatID, config.EnvTelegramAPI, config.EnvLogLevel, config.EnvWatchListFile} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	configFile, watchListFile, checkInterval = "", "", 0
	return dir
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["start"])
	assert.True(t, names["test"])
}

func TestRootCommand_PrintsUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no command"},
		{name: "unknown command", args: []string{"getchatid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)

			out, err := executeCommand(rootCmd, tt.args...)

			require.NoError(t, err)
			assert.Contains(t, out, "Usage:")
			assert.Contains(t, out, "start")
			assert.Contains(t, out, "test")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "usage must not touch the filesystem")
		})
	}
}

func TestTestCommand_FailsWithoutCredentials(t *testing.T) {
	isolate(t)

	_, err := executeCommand(rootCmd, "test")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestTestCommand_SendsTestMessage(t *testing.T) {
	dir := isolate(t)

	received := make(chan telegram.SendMessageRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req telegram.SendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		received <- req
		_ = json.NewEncoder(w).Encode(telegram.APIResponse{OK: true, Result: &telegram.Message{MessageID: 12}})
	}))
	defer server.Close()

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("notification_config:\n  bot_token: \"1:x\"\n  chat_id: \"99\"\n  api_base_url: "+server.URL+"\n"), 0644))

	out, err := executeCommand(rootCmd, "test", "--config", cfgPath)

	require.NoError(t, err)
	assert.Contains(t, out, "message id 12")
	req := <-received
	assert.Equal(t, "99", req.ChatID)
	assert.Equal(t, notifier.TestMessage, req.Text)
}

func TestBootstrap_FlagOverridesAndConfigFallback(t *testing.T) {
	isolate(t)
	configFile = "does-not-exist.yaml"
	watchListFile = "custom.txt"
	checkInterval = 9

	app := bootstrap()
	defer app.close()

	assert.Nil(t, app.cfgManager)
	assert.Equal(t, "custom.txt", app.cfg.MonitorConfig.WatchListFile)
	assert.Equal(t, 9, app.cfg.MonitorConfig.CheckIntervalSeconds)
	assert.Equal(t, config.DefaultTelegramAPIBaseURL, app.cfg.NotificationConfig.APIBaseURL)
}

func TestBootstrap_InvalidFieldsKeepFileCredentials(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
notification_config:
  bot_token: "1:x"
  chat_id: "99"
  parse_mode: markdown
`), 0644))
	t.Setenv(config.EnvLogLevel, "verbose")
	configFile = cfgPath

	app := bootstrap()
	defer app.close()

	require.NotNil(t, app.cfgManager)
	assert.Equal(t, "99", app.cfg.NotificationConfig.ChatID)
	assert.Equal(t, "1:x", app.cfg.NotificationConfig.BotToken)
	assert.Equal(t, "Markdown", app.cfg.NotificationConfig.ParseMode)
	assert.Equal(t, config.DefaultLogLevel, app.cfg.LogConfig.Level)
}

func TestStartCommand_NotifiesOnceForAChangedFile(t *testing.T) {
	dir := isolate(t)

	var hits atomic.Int32
	received := make(chan telegram.SendMessageRequest, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/sendMessage"))
		var req telegram.SendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		received <- req
		_ = json.NewEncoder(w).Encode(telegram.APIResponse{OK: true, Result: &telegram.Message{MessageID: 5}})
	}))
	defer server.Close()

	watched := filepath.Join(dir, "alert_feed.json")
	require.NoError(t, os.WriteFile(watched, []byte(`{"v":1}`), 0644))
	watchList := filepath.Join(dir, "watch.txt")
	require.NoError(t, os.WriteFile(watchList, []byte("# feeds\n"+watched+"\n"), 0644))

	logFile := filepath.Join(dir, "run.log")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
log_config:
  level: debug
  format: json
  file: `+logFile+`
monitor_config:
  watch_list_file: `+watchList+`
  check_interval_seconds: 1
  max_cycles: 2
notification_config:
  bot_token: "1:x"
  chat_id: "99"
  api_base_url: `+server.URL+`
  parse_mode: Markdown
`), 0644))

	done := make(chan error, 1)
	go func() {
		_, err := executeCommand(rootCmd, "start", "--config", cfgPath)
		done <- err
	}()

	// the seeding pass is logged before the first tick
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logFile)
		return err == nil && strings.Contains(string(data), `"cycle_id":"cycle-1"`) &&
			strings.Contains(string(data), "Monitor cycle completed")
	}, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(watched, []byte(`{"v":2}`), 0644))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("start did not finish after max_cycles")
	}

	assert.Equal(t, int32(1), hits.Load())
	req := <-received
	assert.Equal(t, "99", req.ChatID)
	assert.Equal(t, "Markdown", req.ParseMode)
	assert.Contains(t, req.Text, `alert\_feed.json`)
	assert.Contains(t, req.Text, "*JSON FILE UPDATED*")
}
