package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nakachan-ing/todo-cli/internal/model"
	"gopkg.in/yaml.v3"
)

func SaveSession(config model.Config, session model.Session) error {
	info, err := yaml.Marshal(&session)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	path := config.SessionPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(path, info, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// LoadSession reports false when nobody is logged in.
func LoadSession(config model.Config) (model.Session, bool, error) {
	data, err := os.ReadFile(config.SessionPath())
	if os.IsNotExist(err) {
		return model.Session{}, false, nil
	} else if err != nil {
		return model.Session{}, false, fmt.Errorf("failed to read session file: %w", err)
	}

	var session model.Session
	if err := yaml.Unmarshal(data, &session); err != nil || session.Username == "" {
		return model.Session{}, false, nil
	}
	return session, true, nil
}

func ClearSession(config model.Config) error {
	if err := os.Remove(config.SessionPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
