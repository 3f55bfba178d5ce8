/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the data directory with S3",
}

func loadSyncConfig() (*model.Config, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !config.Sync.Enable || config.Sync.Bucket == "" {
		return nil, fmt.Errorf("sync is disabled: set sync.enable and sync.bucket in config.yaml")
	}
	return config, nil
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload local changes to S3",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadSyncConfig()
		if err != nil {
			return err
		}

		if err := SyncWithS3(cmd.Context(), *config, "push"); err != nil {
			log.Printf("❌ Sync failed: %v", err)
			return fmt.Errorf("sync failed: %w", err)
		}

		log.Println("✅ `todo sync push` completed successfully.")
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download latest changes from S3",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadSyncConfig()
		if err != nil {
			return err
		}

		if err := SyncWithS3(cmd.Context(), *config, "pull"); err != nil {
			log.Printf("❌ Sync failed: %v", err)
			return fmt.Errorf("sync failed: %w", err)
		}

		log.Println("✅ `todo sync pull` completed successfully.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show differences between local and S3 files",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadSyncConfig()
		if err != nil {
			return err
		}

		return ShowSyncStatus(cmd.Context(), *config)
	},
}

func init() {
	syncCmd.AddCommand(syncPushCmd, syncPullCmd, syncStatusCmd)
	rootCmd.AddCommand(syncCmd)
}
