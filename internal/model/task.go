package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

type Priority string

const (
	PriorityHigh Priority = "HIGH"
	PriorityMid  Priority = "MID"
	PriorityLow  Priority = "LOW"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

// TimestampLayout is ISO-8601 with fixed microsecond precision, so stored
// timestamps sort lexically in the same order as chronologically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Document is one flat JSON object as stored on disk.
type Document map[string]any

type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Details   string   `json:"details"`
	Priority  Priority `json:"priority"` // HIGH, MID, LOW
	Status    Status   `json:"status"`   // PENDING, COMPLETED
	Owner     string   `json:"owner"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// TaskUpdate carries the fields an edit explicitly supplies. Nil means "leave as is".
type TaskUpdate struct {
	Title    *string
	Details  *string
	Priority *string
	Status   *string
}

func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Details == nil && u.Priority == nil && u.Status == nil
}

// ParsePriority matches tag case-sensitively and falls back to MID.
func ParsePriority(tag string) Priority {
	switch p := Priority(tag); p {
	case PriorityHigh, PriorityMid, PriorityLow:
		return p
	default:
		return PriorityMid
	}
}

// ParseStatus matches tag case-sensitively and falls back to PENDING.
func ParseStatus(tag string) Status {
	switch s := Status(tag); s {
	case StatusPending, StatusCompleted:
		return s
	default:
		return StatusPending
	}
}

// Rank orders priorities from HIGH (0) to LOW (2).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

func NewID() string {
	return uuid.NewString()
}

func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts the canonical layout as well as RFC 3339 and the
// zone-less form written by older versions of the tracker.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Parse(time.RFC3339Nano, s)
}

func (t Task) ToDocument() Document {
	return Document{
		"id":         t.ID,
		"title":      t.Title,
		"details":    t.Details,
		"priority":   string(t.Priority),
		"status":     string(t.Status),
		"owner":      t.Owner,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

type rawTask struct {
	ID        *string `mapstructure:"id"`
	Title     *string `mapstructure:"title"`
	Details   *string `mapstructure:"details"`
	Priority  *string `mapstructure:"priority"`
	Status    *string `mapstructure:"status"`
	Owner     *string `mapstructure:"owner"`
	CreatedAt *string `mapstructure:"created_at"`
	UpdatedAt *string `mapstructure:"updated_at"`
}

// TaskFromDocument completes a possibly partial document into a Task.
// Absent or mistyped fields take their defaults, unknown enum tags fall back
// to MID/PENDING and a missing id gets a fresh one.
func TaskFromDocument(doc Document) Task {
	return TaskFromDocumentWith(doc, time.Now, NewID)
}

// TaskFromDocumentWith is TaskFromDocument with an explicit clock and id source.
func TaskFromDocumentWith(doc Document, now func() time.Time, newID func() string) Task {
	var raw rawTask
	decodeLenient(doc, &raw)

	ts := ""
	stamp := func() string {
		if ts == "" {
			ts = Timestamp(now())
		}
		return ts
	}

	t := Task{
		ID:        valueOr(raw.ID, ""),
		Title:     valueOr(raw.Title, ""),
		Details:   valueOr(raw.Details, ""),
		Priority:  ParsePriority(valueOr(raw.Priority, string(PriorityMid))),
		Status:    ParseStatus(valueOr(raw.Status, string(StatusPending))),
		Owner:     valueOr(raw.Owner, ""),
		CreatedAt: valueOr(raw.CreatedAt, ""),
		UpdatedAt: valueOr(raw.UpdatedAt, ""),
	}
	if t.ID == "" {
		t.ID = newID()
	}
	if t.CreatedAt == "" {
		t.CreatedAt = stamp()
	}
	if t.UpdatedAt == "" {
		t.UpdatedAt = stamp()
	}
	return t
}

// decodeLenient decodes field by field so a single mistyped value does not
// discard the rest of the document. Keys must match their tags exactly.
func decodeLenient(doc Document, out any) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:    out,
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return
	}

	for key, value := range doc {
		if _, ok := value.(string); !ok {
			continue
		}
		_ = decoder.Decode(map[string]any{key: value})
	}
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
