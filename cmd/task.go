/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/nakachan-ing/todo-cli/internal/store"
	"github.com/nakachan-ing/todo-cli/internal/util"
	"github.com/spf13/cobra"
)

const shortIDLen = 8

var taskDetails string
var taskPriority string
var taskNewPriority string
var taskStatus string
var taskTitle string
var taskFrom string
var taskTo string
var taskSearchQuery string
var taskSort string
var taskPageSize int
var taskMeta bool
var taskUseEditor bool

// openTasks loads the config, the session user and the task manager.
func openTasks() (*model.Config, string, *store.TaskManager, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, "", nil, err
	}
	user, err := requireLogin(*config)
	if err != nil {
		return nil, "", nil, err
	}
	return config, user, store.NewTaskManager(*config, store.WithLogger(coreLogger())), nil
}

// resolveTaskID accepts a full id or a unique prefix of one of the user's tasks.
func resolveTaskID(tasks []model.Task, arg string) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("task id must not be empty")
	}

	var matches []string
	for _, t := range tasks {
		if t.ID == arg {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task %s not found", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task id %s is ambiguous (%d matches)", arg, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func coloredPriority(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return text.FgHiRed.Sprintf("%s", p)
	case model.PriorityMid:
		return text.FgHiYellow.Sprintf("%s", p)
	case model.PriorityLow:
		return text.FgHiBlue.Sprintf("%s", p)
	default:
		return string(p)
	}
}

func coloredStatus(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return text.FgHiGreen.Sprintf("%s", s)
	case model.StatusPending:
		return text.FgHiMagenta.Sprintf("%s", s)
	default:
		return string(s)
	}
}

func renderTaskTable(tasks []model.Task) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleDouble)
	t.Style().Options.SeparateRows = false

	t.AppendHeader(table.Row{
		text.FgGreen.Sprintf("ID"), text.FgGreen.Sprintf("%s", text.Bold.Sprintf("Title")),
		text.FgGreen.Sprintf("Priority"),
		text.FgGreen.Sprintf("Status"),
		text.FgGreen.Sprintf("Created"), text.FgGreen.Sprintf("Updated"),
	})

	for _, task := range tasks {
		t.AppendRow(table.Row{
			shortID(task.ID),
			task.Title,
			coloredPriority(task.Priority),
			coloredStatus(task.Status),
			task.CreatedAt,
			task.UpdatedAt,
		})
	}

	t.Render()
}

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:     "task",
	Short:   "Manage your tasks",
	Aliases: []string{"t"},
}

var newTaskCmd = &cobra.Command{
	Use:     "new [title]",
	Short:   "Add a new task",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"n"},
	RunE: func(cmd *cobra.Command, args []string) error {
		config, user, manager, err := openTasks()
		if err != nil {
			return err
		}

		details := taskDetails
		if taskUseEditor {
			details, err = util.EditText(details, *config)
			if err != nil {
				return err
			}
		}

		task, err := manager.CreateTask(args[0], details, taskNewPriority, user)
		if err != nil {
			log.Printf("❌ Failed to create task: %v", err)
			return err
		}

		fmt.Printf("✅ Task %s has been created successfully. (priority: %s)\n", shortID(task.ID), task.Priority)
		return nil
	},
}

var listTaskCmd = &cobra.Command{
	Use:     "list",
	Short:   "List your tasks",
	Args:    cobra.NoArgs,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, user, manager, err := openTasks()
		if err != nil {
			return err
		}

		tasks := manager.GetByOwner(user)
		tasks = util.FilterTasks(tasks, util.TaskFilter{
			Status:   taskStatus,
			Priority: taskPriority,
			From:     taskFrom,
			To:       taskTo,
		})
		tasks = util.FullTextSearch(tasks, taskSearchQuery)
		tasks = util.SortTasks(tasks, taskSort)

		fmt.Println(strings.Repeat("=", 30))
		fmt.Printf("Tasks of %s: %v tasks shown\n", user, len(tasks))
		fmt.Println(strings.Repeat("=", 30))

		if len(tasks) == 0 {
			fmt.Println("No tasks to display.")
			return nil
		}

		pageSize := taskPageSize
		if pageSize <= 0 {
			pageSize = len(tasks)
		}

		for start := 0; start < len(tasks); start += pageSize {
			end := min(start+pageSize, len(tasks))
			renderTaskTable(tasks[start:end])

			if end >= len(tasks) {
				break
			}

			fmt.Print("\nPress Enter for the next page (q to quit): ")
			input, _ := stdinReader.ReadString('\n')
			if strings.TrimSpace(input) == "q" {
				break
			}
		}
		return nil
	},
}

var showTaskCmd = &cobra.Command{
	Use:     "show [id]",
	Short:   "Show a task in detail",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"s"},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, user, manager, err := openTasks()
		if err != nil {
			return err
		}

		id, err := resolveTaskID(manager.GetByOwner(user), args[0])
		if err != nil {
			return err
		}
		task, _ := manager.GetByID(id)

		titleStyle := color.New(color.FgCyan, color.Bold).SprintFunc()
		fieldStyle := color.New(color.FgHiGreen).SprintFunc()

		fmt.Printf("[%v] %v\n", titleStyle(task.ID), titleStyle(task.Title))
		fmt.Println(strings.Repeat("-", 50))
		fmt.Printf("Priority: %v\n", fieldStyle(task.Priority))
		fmt.Printf("Status: %v\n", fieldStyle(task.Status))
		fmt.Printf("Owner: %v\n", fieldStyle(task.Owner))
		fmt.Printf("Created at: %v\n", fieldStyle(task.CreatedAt))
		fmt.Printf("Updated at: %v\n", fieldStyle(task.UpdatedAt))

		if !taskMeta && task.Details != "" {
			rendered, err := glamour.Render(task.Details, "dark")
			if err != nil {
				log.Printf("⚠️ Failed to render markdown content: %v", err)
				fmt.Println(task.Details)
			} else {
				fmt.Println(rendered)
			}
		}
		return nil
	},
}

var editTaskCmd = &cobra.Command{
	Use:     "edit [id]",
	Short:   "Edit a task's title, details, priority or status",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"e"},
	RunE: func(cmd *cobra.Command, args []string) error {
		config, user, manager, err := openTasks()
		if err != nil {
			return err
		}

		id, err := resolveTaskID(manager.GetByOwner(user), args[0])
		if err != nil {
			return err
		}

		var update model.TaskUpdate
		if cmd.Flags().Changed("title") {
			update.Title = &taskTitle
		}
		if cmd.Flags().Changed("details") {
			update.Details = &taskDetails
		}
		if cmd.Flags().Changed("priority") {
			update.Priority = &taskPriority
		}
		if cmd.Flags().Changed("status") {
			update.Status = &taskStatus
		}
		if taskUseEditor {
			current, _ := manager.GetByID(id)
			initial := current.Details
			if update.Details != nil {
				initial = *update.Details
			}
			edited, err := util.EditText(initial, *config)
			if err != nil {
				return err
			}
			update.Details = &edited
		}

		if update.IsEmpty() {
			return fmt.Errorf("nothing to update: pass --title, --details, --priority, --status or --editor")
		}

		ok, err := manager.UpdateTask(id, update)
		if err != nil {
			log.Printf("❌ Failed to update task: %v", err)
			return err
		}
		if !ok {
			return fmt.Errorf("task %s not found", args[0])
		}

		fmt.Printf("✅ Task %s updated\n", shortID(id))
		return nil
	},
}

var doneTaskCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, user, manager, err := openTasks()
		if err != nil {
			return err
		}

		id, err := resolveTaskID(manager.GetByOwner(user), args[0])
		if err != nil {
			return err
		}

		ok, err := manager.CompleteTask(id)
		if err != nil {
			log.Printf("❌ Failed to update task: %v", err)
			return err
		}
		if !ok {
			return fmt.Errorf("task %s not found", args[0])
		}

		fmt.Printf("✅ Task %s completed\n", shortID(id))
		return nil
	},
}

var deleteTaskCmd = &cobra.Command{
	Use:     "delete [id]",
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"rm"},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, user, manager, err := openTasks()
		if err != nil {
			return err
		}

		id, err := resolveTaskID(manager.GetByOwner(user), args[0])
		if err != nil {
			return err
		}

		ok, err := manager.DeleteTask(id)
		if err != nil {
			log.Printf("❌ Failed to delete task: %v", err)
			return err
		}
		if !ok {
			return fmt.Errorf("task %s not found", args[0])
		}

		fmt.Printf("🗑️ Task %s deleted\n", shortID(id))
		return nil
	},
}

func init() {
	taskCmd.AddCommand(newTaskCmd)
	taskCmd.AddCommand(listTaskCmd)
	taskCmd.AddCommand(showTaskCmd)
	taskCmd.AddCommand(editTaskCmd)
	taskCmd.AddCommand(doneTaskCmd)
	taskCmd.AddCommand(deleteTaskCmd)
	rootCmd.AddCommand(taskCmd)

	newTaskCmd.Flags().StringVarP(&taskDetails, "details", "d", "", "Task details (markdown)")
	newTaskCmd.Flags().StringVarP(&taskNewPriority, "priority", "p", string(model.PriorityMid), "Priority: HIGH, MID or LOW")
	newTaskCmd.Flags().BoolVarP(&taskUseEditor, "editor", "e", false, "Write details in the configured editor")

	listTaskCmd.Flags().StringVar(&taskStatus, "status", "", "Filter by status (PENDING, COMPLETED)")
	listTaskCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "Filter by priority (HIGH, MID, LOW)")
	listTaskCmd.Flags().StringVar(&taskFrom, "from", "", "Filter by start date (YYYY-MM-DD)")
	listTaskCmd.Flags().StringVar(&taskTo, "to", "", "Filter by end date (YYYY-MM-DD)")
	listTaskCmd.Flags().StringVarP(&taskSearchQuery, "search", "q", "", "Search by title or details")
	listTaskCmd.Flags().StringVar(&taskSort, "sort", "", "Sort by priority, created or updated")
	listTaskCmd.Flags().IntVar(&taskPageSize, "limit", 20, "Set the number of tasks to display per page (-1 for all)")

	showTaskCmd.Flags().BoolVar(&taskMeta, "meta", false, "Show only metadata without details")

	editTaskCmd.Flags().StringVarP(&taskTitle, "title", "t", "", "New title")
	editTaskCmd.Flags().StringVarP(&taskDetails, "details", "d", "", "New details")
	editTaskCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "New priority: HIGH, MID or LOW")
	editTaskCmd.Flags().StringVar(&taskStatus, "status", "", "New status: PENDING or COMPLETED")
	editTaskCmd.Flags().BoolVarP(&taskUseEditor, "editor", "e", false, "Edit details in the configured editor")
}
