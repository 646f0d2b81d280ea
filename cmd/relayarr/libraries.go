package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "Manage library routing",
	Long: `Manage per-library scan and notify routing.

Each library folder (e.g. "tv", "movies") has two toggles:
scan triggers a Jellyfin library scan on import, notify sends a
push notification. Notify requires scan.

Examples:
  relayarr libraries                  # List libraries and toggles
  relayarr libraries set tv --notify=false
  relayarr libraries sync             # Pull libraries from Jellyfin`,
	Args: cobra.NoArgs,
	RunE: runListLibraries,
}

var librariesSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Update a library's toggles",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetLibrary,
}

var librariesSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync libraries from the media server",
	Args:  cobra.NoArgs,
	RunE:  runSyncLibraries,
}

func init() {
	rootCmd.AddCommand(librariesCmd)
	librariesCmd.AddCommand(librariesSetCmd)
	librariesCmd.AddCommand(librariesSyncCmd)

	librariesSetCmd.Flags().Bool("scan", true, "Trigger media server scans for this library")
	librariesSetCmd.Flags().Bool("notify", true, "Send push notifications for this library")
	librariesSetCmd.Flags().String("display-name", "", "Display name override")
}

func runListLibraries(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)

	libs, err := client.Libraries()
	if err != nil {
		return fmt.Errorf("list libraries failed: %w", err)
	}

	if jsonOutput {
		printJSON(libs)
		return nil
	}

	if len(libs) == 0 {
		fmt.Println("No libraries configured. Run 'relayarr libraries sync' to pull them from Jellyfin.")
		return nil
	}

	fmt.Printf("%-20s %-24s %-6s %-6s\n", "NAME", "DISPLAY", "SCAN", "NOTIFY")
	for _, lib := range libs {
		fmt.Printf("%-20s %-24s %-6s %-6s\n",
			lib.Name, lib.DisplayName, onOff(lib.ScanEnabled), onOff(lib.NotifyEnabled))
	}
	return nil
}

func runSetLibrary(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)

	scan, _ := cmd.Flags().GetBool("scan")
	notify, _ := cmd.Flags().GetBool("notify")

	var displayName *string
	if cmd.Flags().Changed("display-name") {
		name, _ := cmd.Flags().GetString("display-name")
		displayName = &name
	}

	lib, err := client.SetLibrary(args[0], displayName, scan, notify)
	if err != nil {
		return fmt.Errorf("update library failed: %w", err)
	}

	if jsonOutput {
		printJSON(lib)
		return nil
	}

	fmt.Printf("%s: scan %s, notify %s\n", lib.Name, onOff(lib.ScanEnabled), onOff(lib.NotifyEnabled))
	return nil
}

func runSyncLibraries(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)

	resp, err := client.SyncLibraries()
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	fmt.Printf("Synced %d libraries from Jellyfin.\n", resp.Synced)
	return nil
}
