package util

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/nakachan-ing/todo-cli/internal/model"
)

func OpenEditor(filePath string, config model.Config) error {
	editor := config.Editor
	if env := os.Getenv("EDITOR"); env != "" {
		editor = env
	}
	c := exec.Command(editor, filePath)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to open editor (%s): %w", filePath, err)
	}
	return nil
}

// EditText opens initial in the editor via a temp file and returns the result.
func EditText(initial string, config model.Config) (string, error) {
	f, err := os.CreateTemp("", "todo-details-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	f.Close()

	if err := OpenEditor(f.Name(), config); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(f.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return strings.TrimRight(string(edited), "\n"), nil
}
