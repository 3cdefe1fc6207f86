package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test message to the configured chat",
	Long: `Send one fixed message through the Telegram notifier and wait for the
answer. Exits non-zero when the message could not be delivered.`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	app := bootstrap()
	defer app.close()

	tn, err := app.newNotifier()
	if err != nil {
		return err
	}

	result := <-tn.Notify(cmd.Context(), app.formatter().Test())
	if !result.Success {
		return fmt.Errorf("test message failed: %w", result.Err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Test message sent (message id %d)\n", result.MessageID)
	return nil
}
