package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <kind>",
	Short: "Preview the stored template against sample data",
	Long: `Render the stored template for a media kind against fixed sample
data, without sending anything.

Examples:
  relayarr preview episode
  relayarr preview movie`,
	Args: cobra.ExactArgs(1),
	RunE: runPreviewCmd,
}

var testCmd = &cobra.Command{
	Use:   "test <kind>",
	Short: "Send a test notification",
	Long: `Render the stored template for a media kind against fixed sample
data and send it through Pushover.

Examples:
  relayarr test episode
  relayarr test movie`,
	Args: cobra.ExactArgs(1),
	RunE: runTestCmd,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(testCmd)
}

func runPreviewCmd(cmd *cobra.Command, args []string) error {
	if err := validateKind(args[0]); err != nil {
		return err
	}
	client := NewClient(serverURL, apiKey)

	tmpl, err := client.Template(args[0])
	if err != nil {
		return fmt.Errorf("get template failed: %w", err)
	}
	msg, err := client.Preview(args[0], tmpl)
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	if jsonOutput {
		printJSON(msg)
		return nil
	}

	printMessage(msg)
	return nil
}

func runTestCmd(cmd *cobra.Command, args []string) error {
	if err := validateKind(args[0]); err != nil {
		return err
	}
	client := NewClient(serverURL, apiKey)

	msg, err := client.Test(args[0])
	if err != nil {
		return fmt.Errorf("test notification failed: %w", err)
	}

	if jsonOutput {
		printJSON(msg)
		return nil
	}

	fmt.Println("Sent.")
	fmt.Println()
	printMessage(msg)
	return nil
}

func printMessage(msg *MessageResponse) {
	fmt.Println(msg.Title)
	if msg.Body != "" {
		fmt.Println()
		fmt.Println(msg.Body)
	}
}
