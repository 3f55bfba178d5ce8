package store

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/nakachan-ing/todo-cli/internal/model"
)

var discardLogger = log.New(io.Discard, "", 0)

// FlatFile reads and writes one JSON array of documents at a fixed path.
// It holds no data between calls.
type FlatFile struct {
	path   string
	logger *log.Logger
}

func NewFlatFile(path string, logger *log.Logger) *FlatFile {
	if logger == nil {
		logger = discardLogger
	}
	return &FlatFile{path: path, logger: logger}
}

func (f *FlatFile) Path() string {
	return f.path
}

// Load never fails: a missing, unreadable or corrupt file reads as empty.
func (f *FlatFile) Load() []model.Document {
	var docs []model.Document
	if err := LoadJson(f.path, &docs); err != nil {
		f.logger.Printf("⚠️ Treating %s as empty: %v", f.path, err)
		return []model.Document{}
	}
	// a JSON null element decodes to a nil map
	out := docs[:0]
	for _, d := range docs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

func (f *FlatFile) Save(docs []model.Document) error {
	if docs == nil {
		docs = []model.Document{}
	}
	if err := SaveJson(f.path, docs); err != nil {
		return err
	}
	f.logger.Printf("✅ Successfully updated JSON file: %s", f.path)
	return nil
}

// LoadJson fills v from the JSON array at filePath. A missing or empty file
// yields an empty slice; other failures are returned with v left empty.
func LoadJson[T any](filePath string, v *[]T) error {
	*v = []T{}

	jsonBytes, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	if len(jsonBytes) == 0 {
		return nil
	}

	var decoded []T
	if err := json.Unmarshal(jsonBytes, &decoded); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	if decoded != nil {
		*v = decoded
	}
	return nil
}

// SaveJson overwrites filePath with v, creating parent directories first.
// The write goes through a temp file and a rename.
func SaveJson[T any](filePath string, v []T) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to convert to JSON: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create json data directory: %w", err)
	}

	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace JSON file: %w", err)
	}
	return nil
}
