package main

import (
	"github.com/aleister1102/jsonmonitor/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile    string
	watchListFile string
	checkInterval int
)

var rootCmd = &cobra.Command{
	Use:   "jsonmonitor",
	Short: "Watch JSON files and announce changes on Telegram",
	Long: `jsonmonitor polls a list of files on a fixed interval, fingerprints their
content and posts a Telegram message whenever a file changes.

The watch list is a text file with one path per line. Blank lines and lines
starting with '#' are ignored. Credentials come from the config file or the
TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID environment variables.

Examples:
  # Start monitoring with the default watch list (./monitor-files.txt)
  jsonmonitor start

  # Use a specific config and poll every 10 seconds
  jsonmonitor start -c config.yaml -i 10

  # Check that the bot can reach the chat
  jsonmonitor test`,
	Version:      config.Version,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: $JSONMONITOR_CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&watchListFile, "watch-list", "w", "", "file listing the paths to monitor (default ./monitor-files.txt)")
	rootCmd.PersistentFlags().IntVarP(&checkInterval, "interval", "i", 0, "seconds between checks (default 5)")
}
