package store

import (
	"fmt"
	"log"
	"time"

	"github.com/nakachan-ing/todo-cli/internal/model"
)

// TaskManager owns the in-memory task list. The tasks document is read once
// at construction; every mutation rewrites the whole document.
type TaskManager struct {
	file   *FlatFile
	tasks  []model.Task
	now    func() time.Time
	newID  func() string
	logger *log.Logger
}

type TaskManagerOption func(*TaskManager)

func WithClock(now func() time.Time) TaskManagerOption {
	return func(m *TaskManager) { m.now = now }
}

func WithIDGenerator(newID func() string) TaskManagerOption {
	return func(m *TaskManager) { m.newID = newID }
}

func WithLogger(logger *log.Logger) TaskManagerOption {
	return func(m *TaskManager) { m.logger = logger }
}

func NewTaskManager(config model.Config, opts ...TaskManagerOption) *TaskManager {
	m := &TaskManager{
		now:    time.Now,
		newID:  model.NewID,
		logger: discardLogger,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.file = NewFlatFile(config.TasksPath(), m.logger)

	docs := m.file.Load()
	m.tasks = make([]model.Task, 0, len(docs))
	for _, doc := range docs {
		m.tasks = append(m.tasks, model.TaskFromDocumentWith(doc, m.now, m.newID))
	}
	return m
}

func (m *TaskManager) CreateTask(title, details, priorityTag, owner string) (model.Task, error) {
	ts := model.Timestamp(m.now())
	task := model.Task{
		ID:        m.newID(),
		Title:     title,
		Details:   details,
		Priority:  model.ParsePriority(priorityTag),
		Status:    model.StatusPending,
		Owner:     owner,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	m.tasks = append(m.tasks, task)
	if err := m.save(); err != nil {
		return task, err
	}

	m.logger.Printf("✅ Task %s created for %s", task.ID, owner)
	return task, nil
}

// GetByOwner returns the owner's tasks in stored order.
func (m *TaskManager) GetByOwner(owner string) []model.Task {
	owned := []model.Task{}
	for _, t := range m.tasks {
		if t.Owner == owner {
			owned = append(owned, t)
		}
	}
	return owned
}

func (m *TaskManager) GetByID(id string) (model.Task, bool) {
	if i := m.indexOf(id); i >= 0 {
		return m.tasks[i], true
	}
	return model.Task{}, false
}

// All returns every task regardless of owner.
func (m *TaskManager) All() []model.Task {
	return append([]model.Task{}, m.tasks...)
}

// UpdateTask applies only the supplied fields. Unknown priority/status tags
// become MID/PENDING. It reports false without writing when id is unknown.
func (m *TaskManager) UpdateTask(id string, update model.TaskUpdate) (bool, error) {
	i := m.indexOf(id)
	if i < 0 {
		return false, nil
	}

	task := &m.tasks[i]
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Details != nil {
		task.Details = *update.Details
	}
	if update.Priority != nil {
		task.Priority = model.ParsePriority(*update.Priority)
	}
	if update.Status != nil {
		task.Status = model.ParseStatus(*update.Status)
	}
	task.UpdatedAt = m.updatedAt(*task)

	if err := m.save(); err != nil {
		return true, err
	}
	m.logger.Printf("✅ Task %s updated", id)
	return true, nil
}

func (m *TaskManager) CompleteTask(id string) (bool, error) {
	completed := string(model.StatusCompleted)
	return m.UpdateTask(id, model.TaskUpdate{Status: &completed})
}

func (m *TaskManager) DeleteTask(id string) (bool, error) {
	i := m.indexOf(id)
	if i < 0 {
		return false, nil
	}

	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	if err := m.save(); err != nil {
		return true, err
	}
	m.logger.Printf("✅ Task %s deleted", id)
	return true, nil
}

func (m *TaskManager) indexOf(id string) int {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// updatedAt is now, but never earlier than the task's creation time or its
// previous update.
func (m *TaskManager) updatedAt(task model.Task) string {
	now := m.now()
	for _, ts := range []string{task.CreatedAt, task.UpdatedAt} {
		if prev, err := model.ParseTimestamp(ts); err == nil && now.Before(prev) {
			now = prev
		}
	}
	return model.Timestamp(now)
}

func (m *TaskManager) save() error {
	docs := make([]model.Document, 0, len(m.tasks))
	for _, t := range m.tasks {
		docs = append(docs, t.ToDocument())
	}
	if err := m.file.Save(docs); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}
