package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Long: `Show server status: version, connected services and library count.

Examples:
  relayarr status
  relayarr status --json`,
	Args: cobra.NoArgs,
	RunE: runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)

	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	jellyfin := "not configured"
	if status.JellyfinConfigured {
		jellyfin = "configured"
	}
	pushover := "not configured"
	if status.PushoverConfigured {
		pushover = "configured"
	}

	fmt.Printf("relayarr v%s | Server: %s\n\n", status.Version, serverURL)
	fmt.Printf("  Jellyfin:  %s\n", jellyfin)
	fmt.Printf("  Pushover:  %s\n", pushover)
	fmt.Printf("  Libraries: %d\n", status.Libraries)
	return nil
}
