package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"council/internal/config"
	"council/internal/discover"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Maintenance utilities",
}

var reindexCmd = &cobra.Command{
	Use:   "reindex [subject-id]",
	Short: "Rebuild the RAG index for a subject from its stored materials",
	Args:  cobra.ExactArgs(1),
	RunE:  runReindex,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend connectivity",
	RunE:  runStatus,
}

var configInitCmd = &cobra.Command{
	Use:   "config-init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

func runReindex(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "subject id")
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	msg, err := client.ReindexSubject(ctx, id)
	if err != nil {
		return err
	}
	fmt.Println(msg.Message)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	baseURL, source := discover.Resolve(serverFlag, cfg.Discovery.MetadataPath, cfg.Server)
	fmt.Printf("Server: %s (via %s)\n", baseURL, source)

	health, err := client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	fmt.Printf("Health: %s\n", health.Status)

	if info, err := client.GetServerInfo(ctx); err == nil {
		fmt.Printf("Backend: %s (v%s)\n", info.Message, info.Version)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func init() {
	toolsCmd.AddCommand(reindexCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configInitCmd)
}
