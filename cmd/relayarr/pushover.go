package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pushoverCmd = &cobra.Command{
	Use:   "pushover",
	Short: "Show or set Pushover credentials",
	Long: `Show or set the stored Pushover credentials.

The stored values are shown masked; only the last four characters
are visible.

Examples:
  relayarr pushover
  relayarr pushover set --token <app-token> --user <user-key>`,
	Args: cobra.NoArgs,
	RunE: runShowPushover,
}

var pushoverSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store Pushover credentials",
	Args:  cobra.NoArgs,
	RunE:  runSetPushover,
}

func init() {
	rootCmd.AddCommand(pushoverCmd)
	pushoverCmd.AddCommand(pushoverSetCmd)

	pushoverSetCmd.Flags().String("token", "", "Pushover application token")
	pushoverSetCmd.Flags().String("user", "", "Pushover user key")
	_ = pushoverSetCmd.MarkFlagRequired("token")
	_ = pushoverSetCmd.MarkFlagRequired("user")
}

func runShowPushover(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)

	resp, err := client.Pushover()
	if err != nil {
		return fmt.Errorf("get pushover failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	printPushover(resp)
	return nil
}

func runSetPushover(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)

	token, _ := cmd.Flags().GetString("token")
	user, _ := cmd.Flags().GetString("user")

	resp, err := client.SetPushover(token, user)
	if err != nil {
		return fmt.Errorf("set pushover failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	printPushover(resp)
	fmt.Println("\nRun 'relayarr test movie' to send a test notification.")
	return nil
}

func printPushover(resp *PushoverResponse) {
	if !resp.Configured {
		fmt.Println("Pushover is not configured.")
		return
	}
	fmt.Printf("  Token:    %s\n", resp.Token)
	fmt.Printf("  User key: %s\n", resp.UserKey)
}
