package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	apiKey     string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "relayarr",
	Short: "CLI client for the relayarr notification relay",
	Long: `relayarr - CLI client for the relayarr notification relay

Manage notification templates, library routing, push credentials
and the webhook key of a running relayarr daemon.

Run 'relayarrd' to start the server daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8488", "Server URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Settings API key (X-Api-Key)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("relayarr {{.Version}}\n")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func validateKind(kind string) error {
	if kind != "episode" && kind != "movie" {
		return fmt.Errorf("kind must be 'episode' or 'movie', got %q", kind)
	}
	return nil
}
