/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/nakachan-ing/todo-cli/internal/store"
	"github.com/spf13/cobra"
)

const saveAndExit = "Save & Exit"

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

type configModel struct {
	cursor    int
	fields    []string
	config    model.Config
	textInput textinput.Model
	editMode  bool
	saved     bool
	err       error
}

func newConfigModel(config model.Config) *configModel {
	return &configModel{
		fields:    generateFieldList(),
		config:    config,
		textInput: textinput.New(),
	}
}

func generateFieldList() []string {
	return []string{
		"DataDir", "UsersFile", "TasksFile", "Editor",
		"Sync.Enable", "Sync.Bucket", "Sync.Prefix", "Sync.AWSProfile", "Sync.AWSRegion",
		saveAndExit,
	}
}

func (m *configModel) Init() tea.Cmd {
	return nil
}

func (m *configModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editMode {
		switch keyMsg.String() {
		case "enter":
			m.setFieldValue(m.fields[m.cursor], m.textInput.Value())
			m.editMode = false
			m.textInput.Blur()
		case "esc":
			m.editMode = false
			m.textInput.Blur()
		default:
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(keyMsg)
			return m, cmd
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "enter":
		if m.fields[m.cursor] == saveAndExit {
			m.err = store.SaveConfig(m.config)
			m.saved = m.err == nil
			return m, tea.Quit
		}
		m.editMode = true
		m.textInput.SetValue(m.getFieldValue(m.fields[m.cursor]))
		m.textInput.CursorEnd()
		return m, m.textInput.Focus()
	}

	return m, nil
}

func (m *configModel) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("📄 Configure todo") + "\n\n")

	for i, field := range m.fields {
		line := field
		if field != saveAndExit {
			line = fmt.Sprintf("%s: %s", field, m.getFieldValue(field))
		}
		if m.cursor == i {
			s.WriteString("👉 " + selectedStyle.Render(line) + "\n")
		} else {
			s.WriteString("   " + line + "\n")
		}
	}

	if m.editMode {
		s.WriteString("\n✏️  Editing: " + m.fields[m.cursor] + "\n")
		s.WriteString(m.textInput.View() + "\n")
		s.WriteString(hintStyle.Render("(Enter to apply, ESC to cancel)") + "\n")
	} else {
		s.WriteString("\n" + hintStyle.Render("↑/↓ to move, Enter to edit, q to quit without saving") + "\n")
	}

	return s.String()
}

func (m *configModel) getFieldValue(field string) string {
	switch field {
	case "DataDir":
		return m.config.DataDir
	case "UsersFile":
		return m.config.UsersFile
	case "TasksFile":
		return m.config.TasksFile
	case "Editor":
		return m.config.Editor
	case "Sync.Enable":
		return strconv.FormatBool(m.config.Sync.Enable)
	case "Sync.Bucket":
		return m.config.Sync.Bucket
	case "Sync.Prefix":
		return m.config.Sync.Prefix
	case "Sync.AWSProfile":
		return m.config.Sync.AWSProfile
	case "Sync.AWSRegion":
		return m.config.Sync.AWSRegion
	default:
		return ""
	}
}

func (m *configModel) setFieldValue(field, newValue string) {
	switch field {
	case "DataDir":
		m.config.DataDir = newValue
	case "UsersFile":
		m.config.UsersFile = newValue
	case "TasksFile":
		m.config.TasksFile = newValue
	case "Editor":
		m.config.Editor = newValue
	case "Sync.Enable":
		if b, err := strconv.ParseBool(newValue); err == nil {
			m.config.Sync.Enable = b
		}
	case "Sync.Bucket":
		m.config.Sync.Bucket = newValue
	case "Sync.Prefix":
		m.config.Sync.Prefix = newValue
	case "Sync.AWSProfile":
		m.config.Sync.AWSProfile = newValue
	case "Sync.AWSRegion":
		m.config.Sync.AWSRegion = newValue
	}
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure config.yaml interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := store.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		final, err := tea.NewProgram(newConfigModel(*config)).Run()
		if err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}

		m := final.(*configModel)
		if m.err != nil {
			log.Printf("⚠️ Failed to save config file: %v", m.err)
			return m.err
		}
		if m.saved {
			fmt.Println("✅ Config saved.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
