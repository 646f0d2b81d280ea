package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates <kind>",
	Short: "Show or edit notification templates",
	Long: `Show or edit the notification template for a media kind.

Kinds are 'episode' and 'movie'. Templates use {placeholder} tokens:
  common:   {prefix} {overview} {path}
  episode:  {series_name} {season_num} {episode_num} {episode_name}
  movie:    {movie_name} {movie_year}

Examples:
  relayarr templates episode
  relayarr templates set movie --title "{prefix} {movie_name} ({movie_year})"
  relayarr templates set episode --include-size --no-emoji`,
	Args: cobra.ExactArgs(1),
	RunE: runShowTemplate,
}

var templatesSetCmd = &cobra.Command{
	Use:   "set <kind>",
	Short: "Update a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetTemplate,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesSetCmd)

	templatesSetCmd.Flags().String("title", "", "Title template")
	templatesSetCmd.Flags().String("body", "", "Body template")
	templatesSetCmd.Flags().Bool("include-overview", false, "Include the overview")
	templatesSetCmd.Flags().Bool("include-codec", false, "Include the video codec")
	templatesSetCmd.Flags().Bool("include-size", false, "Include the file size")
	templatesSetCmd.Flags().Bool("include-path", false, "Include the file path")
	templatesSetCmd.Flags().Bool("no-emoji", false, "Disable emoji glyphs")
}

func runShowTemplate(cmd *cobra.Command, args []string) error {
	if err := validateKind(args[0]); err != nil {
		return err
	}
	client := NewClient(serverURL, apiKey)

	tmpl, err := client.Template(args[0])
	if err != nil {
		return fmt.Errorf("get template failed: %w", err)
	}

	if jsonOutput {
		printJSON(tmpl)
		return nil
	}

	printTemplate(args[0], tmpl)
	return nil
}

func runSetTemplate(cmd *cobra.Command, args []string) error {
	if err := validateKind(args[0]); err != nil {
		return err
	}
	client := NewClient(serverURL, apiKey)

	// Start from the stored template so unset flags keep their values.
	tmpl, err := client.Template(args[0])
	if err != nil {
		return fmt.Errorf("get template failed: %w", err)
	}

	if cmd.Flags().Changed("title") {
		tmpl.TitleTemplate, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("body") {
		tmpl.BodyTemplate, _ = cmd.Flags().GetString("body")
	}
	if cmd.Flags().Changed("include-overview") {
		tmpl.IncludeOverview, _ = cmd.Flags().GetBool("include-overview")
	}
	if cmd.Flags().Changed("include-codec") {
		tmpl.IncludeCodec, _ = cmd.Flags().GetBool("include-codec")
	}
	if cmd.Flags().Changed("include-size") {
		tmpl.IncludeSize, _ = cmd.Flags().GetBool("include-size")
	}
	if cmd.Flags().Changed("include-path") {
		tmpl.IncludePath, _ = cmd.Flags().GetBool("include-path")
	}
	if cmd.Flags().Changed("no-emoji") {
		noEmoji, _ := cmd.Flags().GetBool("no-emoji")
		tmpl.EmojiEnabled = !noEmoji
	}

	updated, err := client.SetTemplate(args[0], tmpl)
	if err != nil {
		return fmt.Errorf("update template failed: %w", err)
	}

	if jsonOutput {
		printJSON(updated)
		return nil
	}

	printTemplate(args[0], updated)
	return nil
}

func printTemplate(kind string, tmpl *TemplateResponse) {
	fmt.Printf("Template: %s\n\n", kind)
	fmt.Printf("  Title:    %s\n", tmpl.TitleTemplate)
	fmt.Printf("  Body:     %s\n", tmpl.BodyTemplate)
	fmt.Printf("  Overview: %s\n", onOff(tmpl.IncludeOverview))
	fmt.Printf("  Codec:    %s\n", onOff(tmpl.IncludeCodec))
	fmt.Printf("  Size:     %s\n", onOff(tmpl.IncludeSize))
	fmt.Printf("  Path:     %s\n", onOff(tmpl.IncludePath))
	fmt.Printf("  Emoji:    %s\n", onOff(tmpl.EmojiEnabled))
}
