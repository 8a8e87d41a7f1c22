package tasklist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tudu/internal/model"
)

var (
	ErrNoMatch      = errors.New("tasklist: no task matches reference")
	ErrAmbiguousRef = errors.New("tasklist: reference matches several tasks")
)

// Resolve finds a task by a user-facing reference: a 1-based position in the
// filtered view, a full id, or a prefix shared by exactly one id. A reference
// that parses as an integer is only ever a position.
func (l *List) Resolve(ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, fmt.Errorf("%w: empty reference", ErrNoMatch)
	}
	if n, err := strconv.Atoi(ref); err == nil {
		view := l.FilteredView()
		if n < 1 || n > len(view) {
			return model.Task{}, fmt.Errorf("%w: position %d (%d shown)", ErrNoMatch, n, len(view))
		}
		return view[n-1], nil
	}
	if t, ok := l.Get(ref); ok {
		return t, nil
	}

	var found []model.Task
	for _, t := range l.tasks {
		if strings.HasPrefix(t.ID, ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return model.Task{}, fmt.Errorf("%w: %q", ErrNoMatch, ref)
	case 1:
		return found[0], nil
	default:
		return model.Task{}, fmt.Errorf("%w: %q (%d candidates)", ErrAmbiguousRef, ref, len(found))
	}
}
