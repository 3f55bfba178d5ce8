package util

import (
	"sort"
	"strings"
	"time"

	"github.com/nakachan-ing/todo-cli/internal/model"
)

func FullTextSearch(tasks []model.Task, query string) []model.Task {
	if query == "" {
		return tasks
	}

	query = strings.ToLower(query)
	filtered := []model.Task{}

	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Title), query) ||
			strings.Contains(strings.ToLower(task.Details), query) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// TaskFilter fields left empty do not filter. From and To are YYYY-MM-DD
// and bound the creation date inclusively.
type TaskFilter struct {
	Status   string
	Priority string
	From     string
	To       string
}

func FilterTasks(tasks []model.Task, filter TaskFilter) []model.Task {
	filtered := []model.Task{}

	for _, task := range tasks {
		if filter.Status != "" && string(task.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && string(task.Priority) != filter.Priority {
			continue
		}
		if !IsWithinDateRange(task.CreatedAt, filter.From, filter.To) {
			continue
		}
		filtered = append(filtered, task)
	}

	return filtered
}

func IsWithinDateRange(timestamp string, fromDate, toDate string) bool {
	if fromDate == "" && toDate == "" {
		return true
	}

	parsed, err := model.ParseTimestamp(timestamp)
	if err != nil {
		return false
	}
	taskDate := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)

	if fromDate != "" {
		fromTime, err := time.Parse("2006-01-02", fromDate)
		if err == nil && taskDate.Before(fromTime) {
			return false
		}
	}

	if toDate != "" {
		toTime, err := time.Parse("2006-01-02", toDate)
		if err == nil && taskDate.After(toTime) {
			return false
		}
	}

	return true
}

const (
	SortStored   = ""
	SortPriority = "priority"
	SortCreated  = "created"
	SortUpdated  = "updated"
)

// SortTasks returns a stably sorted copy; ties keep stored order.
func SortTasks(tasks []model.Task, by string) []model.Task {
	sorted := append([]model.Task{}, tasks...)

	switch by {
	case SortPriority:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
		})
	case SortCreated:
		sort.SliceStable(sorted, func(i, j int) bool {
			return timestampBefore(sorted[i].CreatedAt, sorted[j].CreatedAt)
		})
	case SortUpdated:
		sort.SliceStable(sorted, func(i, j int) bool {
			return timestampBefore(sorted[j].UpdatedAt, sorted[i].UpdatedAt)
		})
	}
	return sorted
}

// timestampBefore compares parsed instants, falling back to the raw strings
// when either side does not parse.
func timestampBefore(a, b string) bool {
	ta, errA := model.ParseTimestamp(a)
	tb, errB := model.ParseTimestamp(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ta.Before(tb)
}
