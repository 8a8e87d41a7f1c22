package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/tudu/internal/model"
)

// TaskListKey is the fixed key the task list lives under.
const TaskListKey = "todo-app-items"

var errCorruptTaskList = errors.New("storage: corrupt task list")

// storedTask mirrors the persisted shape. Pointers distinguish a missing
// field from a zero value.
type storedTask struct {
	ID        *string `json:"id"`
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// TaskListStore reads and writes the whole task list as one JSON value.
type TaskListStore struct {
	kv     KV
	key    string
	logger *log.Logger
}

func NewTaskListStore(kv KV, logger *log.Logger) *TaskListStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TaskListStore{kv: kv, key: TaskListKey, logger: logger}
}

// Load returns the persisted list. Absent, unreadable and corrupt values all
// yield an empty list.
func (s *TaskListStore) Load(ctx context.Context) []model.Task {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("read task list failed, starting empty", "key", s.key, "err", err)
		}
		return []model.Task{}
	}
	tasks, err := decodeTaskList(raw)
	if err != nil {
		s.logger.Warn("discarding stored task list", "key", s.key, "err", err)
		return []model.Task{}
	}
	for i, t := range tasks {
		// kept as stored; flagged so a hand-edited value can be traced
		if err := t.Validate(); err != nil {
			s.logger.Warn("stored task fails validation", "key", s.key, "index", i, "id", t.ID, "err", err)
		}
	}
	s.logger.Debug("task list loaded", "key", s.key, "count", len(tasks))
	return tasks
}

// Save overwrites the stored value with the full list.
func (s *TaskListStore) Save(ctx context.Context, tasks []model.Task) error {
	payload, err := encodeTaskList(tasks)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, payload); err != nil {
		s.logger.Error("save task list failed", "key", s.key, "count", len(tasks), "err", err)
		return fmt.Errorf("save task list: %w", err)
	}
	s.logger.Debug("task list saved", "key", s.key, "count", len(tasks))
	return nil
}

// updatedAter is implemented by stores that track write times.
type updatedAter interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// SavedAt reports when the list was last written. ok is false when nothing
// has been written yet or the store does not track write times.
func (s *TaskListStore) SavedAt(ctx context.Context) (at time.Time, ok bool) {
	ua, tracks := s.kv.(updatedAter)
	if !tracks {
		return time.Time{}, false
	}
	at, err := ua.UpdatedAt(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("read task list write time failed", "key", s.key, "err", err)
		}
		return time.Time{}, false
	}
	return at, true
}

func encodeTaskList(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode task list: %w", err)
	}
	return string(payload), nil
}

func decodeTaskList(raw string) ([]model.Task, error) {
	var stored []storedTask
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptTaskList, err)
	}
	out := make([]model.Task, 0, len(stored))
	for i, item := range stored {
		if item.ID == nil || item.Text == nil || item.Completed == nil {
			return nil, fmt.Errorf("%w: record %d is missing fields", errCorruptTaskList, i)
		}
		out = append(out, model.Task{ID: *item.ID, Text: *item.Text, Completed: *item.Completed})
	}
	return out, nil
}
