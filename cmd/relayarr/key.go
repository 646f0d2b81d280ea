package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Show or regenerate the webhook key",
	Long: `Show or regenerate the webhook key.

Sonarr and Radarr deliver webhooks to /webhook/<key>. Regenerating
invalidates the old key immediately; update the webhook URLs in both
apps afterwards.

Examples:
  relayarr key
  relayarr key regenerate`,
	Args: cobra.NoArgs,
	RunE: runShowKey,
}

var keyRegenerateCmd = &cobra.Command{
	Use:   "regenerate",
	Short: "Replace the webhook key",
	Args:  cobra.NoArgs,
	RunE:  runRegenerateKey,
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyRegenerateCmd)
}

func runShowKey(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)

	resp, err := client.Key()
	if err != nil {
		return fmt.Errorf("get key failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	fmt.Printf("Webhook URL: %s/webhook/%s\n", serverURL, resp.WebhookKey)
	return nil
}

func runRegenerateKey(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)

	resp, err := client.RegenerateKey()
	if err != nil {
		return fmt.Errorf("regenerate key failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	fmt.Printf("New webhook URL: %s/webhook/%s\n", serverURL, resp.WebhookKey)
	fmt.Println("Update the webhook URL in Sonarr and Radarr.")
	return nil
}
