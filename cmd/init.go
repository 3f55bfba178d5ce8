/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/nakachan-ing/todo-cli/internal/store"
	"github.com/spf13/cobra"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize config.yaml and the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := store.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		if _, err := os.Stat(configPath); err == nil && !initForce {
			log.Printf("⚠️ %s already exists (use --force to overwrite)", configPath)
		} else {
			if err := store.SaveConfigTo(configPath, model.DefaultConfig()); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
		}

		config, err := store.LoadConfigFrom(configPath)
		if err != nil {
			return err
		}
		if err := store.EnsureDataDir(*config); err != nil {
			return err
		}

		fmt.Println("✅ todo initialized successfully!")
		fmt.Println("📄 Config file:", configPath)
		fmt.Println("📁 Data directory:", config.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config.yaml")
}
