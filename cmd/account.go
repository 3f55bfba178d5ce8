/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/nakachan-ing/todo-cli/internal/auth"
	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/nakachan-ing/todo-cli/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var stdinReader = bufio.NewReader(os.Stdin)

// readPassword hides input on a terminal and reads a plain line otherwise.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(pw), nil
	}

	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newAuthService(config model.Config) *auth.Service {
	return auth.NewService(store.NewDirectory(config, coreLogger()), bcrypt.DefaultCost)
}

var signupCmd = &cobra.Command{
	Use:   "signup [username]",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		config, err := loadConfig()
		if err != nil {
			return err
		}

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		if term.IsTerminal(int(os.Stdin.Fd())) {
			confirm, err := readPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if confirm != password {
				return errors.New("passwords do not match")
			}
		}

		if _, err := newAuthService(*config).Signup(username, password); err != nil {
			log.Printf("❌ Signup failed: %v", err)
			return err
		}

		fmt.Printf("✅ Account %s created. Run `todo login %s` to start.\n", username, username)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and start a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		config, err := loadConfig()
		if err != nil {
			return err
		}

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		account, err := newAuthService(*config).Login(username, password)
		if err != nil {
			log.Printf("❌ Login failed: %v", err)
			return err
		}

		if err := store.SaveSession(*config, model.NewSession(account.Username, os.Getpid(), time.Now())); err != nil {
			return err
		}

		fmt.Printf("✅ Logged in as %s\n", account.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		if err := store.ClearSession(*config); err != nil {
			return err
		}
		fmt.Println("👋 Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		session, ok, err := store.LoadSession(*config)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Printf("%s (since %s)\n", session.Username, session.LoggedInAt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, whoamiCmd)
}
