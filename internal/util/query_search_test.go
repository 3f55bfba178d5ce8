package util

import (
	"testing"

	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/stretchr/testify/assert"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Buy milk", Details: "2 litres", Priority: model.PriorityLow, Status: model.StatusPending,
			CreatedAt: "2025-01-01T09:00:00.000000Z", UpdatedAt: "2025-01-03T09:00:00.000000Z"},
		{ID: "2", Title: "Write report", Details: "quarterly MILK numbers", Priority: model.PriorityHigh, Status: model.StatusCompleted,
			CreatedAt: "2025-01-02T09:00:00.000000Z", UpdatedAt: "2025-01-02T10:00:00.000000Z"},
		{ID: "3", Title: "Call mom", Priority: model.PriorityMid, Status: model.StatusPending,
			CreatedAt: "2025-01-05T23:59:59.000000Z", UpdatedAt: "2025-01-06T00:00:00.000000Z"},
		{ID: "4", Title: "Plan trip", Priority: model.PriorityHigh, Status: model.StatusPending,
			CreatedAt: "2025-01-04T00:00:00.000000Z", UpdatedAt: "2025-01-04T00:00:00.000000Z"},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFullTextSearch(t *testing.T) {
	tasks := sampleTasks()

	assert.Equal(t, []string{"1", "2"}, ids(FullTextSearch(tasks, "milk")))
	assert.Equal(t, []string{"3"}, ids(FullTextSearch(tasks, "MOM")))
	assert.Empty(t, FullTextSearch(tasks, "nothing"))
	assert.Len(t, FullTextSearch(tasks, ""), 4)
}

func TestFilterTasks(t *testing.T) {
	tasks := sampleTasks()

	assert.Equal(t, []string{"1", "3", "4"}, ids(FilterTasks(tasks, TaskFilter{Status: "PENDING"})))
	assert.Equal(t, []string{"2", "4"}, ids(FilterTasks(tasks, TaskFilter{Priority: "HIGH"})))
	assert.Equal(t, []string{"4"}, ids(FilterTasks(tasks, TaskFilter{Status: "PENDING", Priority: "HIGH"})))
	assert.Len(t, FilterTasks(tasks, TaskFilter{}), 4)
}

func TestFilterTasks_DateRangeIsInclusive(t *testing.T) {
	tasks := sampleTasks()

	got := FilterTasks(tasks, TaskFilter{From: "2025-01-02", To: "2025-01-05"})
	assert.Equal(t, []string{"2", "3", "4"}, ids(got))

	got = FilterTasks(tasks, TaskFilter{To: "2025-01-01"})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestIsWithinDateRange(t *testing.T) {
	ts := "2025-01-05T12:00:00.000000Z"

	assert.True(t, IsWithinDateRange(ts, "", ""))
	assert.True(t, IsWithinDateRange(ts, "2025-01-05", "2025-01-05"))
	assert.False(t, IsWithinDateRange(ts, "2025-01-06", ""))
	assert.False(t, IsWithinDateRange(ts, "", "2025-01-04"))
	assert.False(t, IsWithinDateRange("garbage", "2025-01-01", ""))
	// unparsable bounds are ignored
	assert.True(t, IsWithinDateRange(ts, "not-a-date", ""))
}

func TestSortTasks(t *testing.T) {
	tasks := sampleTasks()

	assert.Equal(t, []string{"2", "4", "3", "1"}, ids(SortTasks(tasks, SortPriority)))
	assert.Equal(t, []string{"1", "2", "4", "3"}, ids(SortTasks(tasks, SortCreated)))
	assert.Equal(t, []string{"3", "4", "1", "2"}, ids(SortTasks(tasks, SortUpdated)))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(SortTasks(tasks, SortStored)))

	// input is left untouched
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(tasks))
}

func TestSortTasks_MixedTimestampFormats(t *testing.T) {
	tasks := []model.Task{
		// 10:00 UTC
		{ID: "offset", CreatedAt: "2025-01-01T19:00:00+09:00", UpdatedAt: "2025-01-01T19:00:00+09:00"},
		{ID: "canonical", CreatedAt: "2025-01-01T12:00:00.000000Z", UpdatedAt: "2025-01-01T12:00:00.000000Z"},
		{ID: "zoneless", CreatedAt: "2025-01-01T11:00:00", UpdatedAt: "2025-01-01T11:00:00"},
	}

	assert.Equal(t, []string{"offset", "zoneless", "canonical"}, ids(SortTasks(tasks, SortCreated)))
	assert.Equal(t, []string{"canonical", "zoneless", "offset"}, ids(SortTasks(tasks, SortUpdated)))
}

func TestSortTasks_UnparsableTimestampsCompareAsText(t *testing.T) {
	tasks := []model.Task{
		{ID: "b", CreatedAt: "bbb"},
		{ID: "a", CreatedAt: "aaa"},
	}
	assert.Equal(t, []string{"a", "b"}, ids(SortTasks(tasks, SortCreated)))
}
