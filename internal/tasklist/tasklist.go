// Package tasklist holds the authoritative task list of a session and the
// display filter applied to it.
//
// A List is created by Open, which loads the persisted list exactly once.
// Every applied mutation (Add, Toggle, Remove, ClearCompleted) is followed by
// one write of the complete list through the Persister. Operations on blank
// text or unknown ids change nothing and write nothing.
//
// A List is not safe for concurrent use; rendering layers call it from a
// single goroutine.
package tasklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sandeepkv93/tudu/internal/logging"
	"github.com/sandeepkv93/tudu/internal/model"
)

// ErrInvalidFilter is returned by SetFilter for values outside
// all/active/completed.
var ErrInvalidFilter = model.ErrInvalidFilter

// Persister is the storage side of a List.
type Persister interface {
	Load(ctx context.Context) []model.Task
	Save(ctx context.Context, tasks []model.Task) error
}

type Option func(*List)

// WithOnChange registers fn to receive the full list after every applied
// mutation. fn must not retain the slice past the call.
func WithOnChange(fn func([]model.Task)) Option {
	return func(l *List) { l.onChange = fn }
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(l *List) {
		if fn != nil {
			l.newID = fn
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

type List struct {
	tasks     []model.Task
	filter    model.Filter
	store     Persister
	newID     func() string
	onChange  func([]model.Task)
	logger    *log.Logger
	lastSave  error
	saveCount int
}

// Open initializes a List from store. The filter starts at all.
func Open(ctx context.Context, store Persister, opts ...Option) *List {
	l := &List{
		filter: model.FilterAll,
		store:  store,
		newID:  uuid.NewString,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.tasks = l.dedupe(store.Load(ctx))
	l.logger.Debug("task list opened", "count", len(l.tasks))
	return l
}

func (l *List) dedupe(loaded []model.Task) []model.Task {
	seen := make(map[string]bool, len(loaded))
	out := make([]model.Task, 0, len(loaded))
	for _, t := range loaded {
		if seen[t.ID] {
			l.logger.Warn("dropping stored task with duplicate id", "id", t.ID)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// Add appends a new active task with the trimmed text. The bool is false when
// the text is blank and nothing was added.
func (l *List) Add(ctx context.Context, rawText string) (model.Task, bool, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return model.Task{}, false, nil
	}
	task := model.Task{ID: l.uniqueID(), Text: text}
	l.tasks = append(l.tasks, task)
	l.logger.Debug("task added", "id", task.ID)
	return task, true, l.commit(ctx)
}

// Toggle flips the completion flag of the task with id, keeping its
// position. It returns the updated task.
func (l *List) Toggle(ctx context.Context, id string) (model.Task, bool, error) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Task{}, false, nil
	}
	l.tasks[i] = l.tasks[i].Toggled()
	l.logger.Debug("task toggled", "id", id, "completed", l.tasks[i].Completed)
	return l.tasks[i], true, l.commit(ctx)
}

// Remove deletes the task with id, preserving the order of the rest.
func (l *List) Remove(ctx context.Context, id string) (bool, error) {
	i := l.indexOf(id)
	if i < 0 {
		return false, nil
	}
	l.tasks = append(l.tasks[:i:i], l.tasks[i+1:]...)
	l.logger.Debug("task removed", "id", id)
	return true, l.commit(ctx)
}

// ClearCompleted removes every completed task in a single mutation.
func (l *List) ClearCompleted(ctx context.Context) (int, error) {
	kept := make([]model.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(l.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	l.tasks = kept
	l.logger.Debug("completed tasks cleared", "removed", removed)
	return removed, l.commit(ctx)
}

func (l *List) SetFilter(f model.Filter) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, f)
	}
	l.filter = f
	return nil
}

func (l *List) Filter() model.Filter { return l.filter }

// FilteredView returns the tasks matching the current filter in canonical
// order. The slice is a copy.
func (l *List) FilteredView() []model.Task {
	out := make([]model.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if l.filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// ActiveCount counts incomplete tasks across the whole list, whatever the
// filter.
func (l *List) ActiveCount() int {
	n := 0
	for _, t := range l.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Tasks returns a copy of the canonical list.
func (l *List) Tasks() []model.Task {
	return append([]model.Task(nil), l.tasks...)
}

func (l *List) Len() int { return len(l.tasks) }

func (l *List) Get(id string) (model.Task, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return l.tasks[i], true
}

// LastSaveError is the result of the most recent write, nil after a
// successful one.
func (l *List) LastSaveError() error { return l.lastSave }

// SaveCount is the number of writes issued since Open.
func (l *List) SaveCount() int { return l.saveCount }

func (l *List) indexOf(id string) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (l *List) uniqueID() string {
	for {
		id := l.newID()
		if id != "" && l.indexOf(id) < 0 {
			return id
		}
		l.logger.Warn("regenerating colliding task id", "id", id)
	}
}

func (l *List) commit(ctx context.Context) error {
	l.saveCount++
	err := l.store.Save(ctx, l.Tasks())
	l.lastSave = err
	if l.onChange != nil {
		l.onChange(l.Tasks())
	}
	if err != nil {
		return fmt.Errorf("persist task list: %w", err)
	}
	return nil
}
