/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/nakachan-ing/todo-cli/internal/store"
	"github.com/spf13/cobra"
)

var configFile string
var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "A multi-account task tracker backed by JSON files",
	Long: `todo keeps a to-do list per account in plain JSON files.

Sign up once, log in, then create, list, edit, complete and delete tasks.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configFile != "" {
			os.Setenv("TODO_CONFIG", configFile)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/todo-cli/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log storage activity")
}

// coreLogger is where the stores report; silent unless --verbose.
func coreLogger() *log.Logger {
	if verbose {
		return log.Default()
	}
	return log.New(io.Discard, "", 0)
}

func loadConfig() (*model.Config, error) {
	config, err := store.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if err := store.EnsureDataDir(*config); err != nil {
		return nil, err
	}
	return config, nil
}

// requireLogin returns the username of the current session.
func requireLogin(config model.Config) (string, error) {
	session, ok, err := store.LoadSession(config)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("not logged in: run `todo login` first")
	}
	return session.Username, nil
}
