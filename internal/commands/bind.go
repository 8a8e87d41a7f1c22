package commands

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/tudu/internal/tasklist"
)

// Bind returns handlers that apply commands to l.
func Bind(ctx context.Context, l *tasklist.List) Handlers {
	return Handlers{
		Add: func(a AddArgs) (Result, error) {
			task, added, err := l.Add(ctx, a.Text)
			if !added {
				return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires text"}
			}
			return Result{Message: fmt.Sprintf("added: %s", task.Text)}, err
		},
		Toggle: func(r RefArgs) (Result, error) {
			target, err := l.Resolve(r.Ref)
			if err != nil {
				return Result{}, err
			}
			task, _, err := l.Toggle(ctx, target.ID)
			verb := "reopened"
			if task.Completed {
				verb = "completed"
			}
			return Result{Message: fmt.Sprintf("%s: %s", verb, task.Text)}, err
		},
		Remove: func(r RefArgs) (Result, error) {
			target, err := l.Resolve(r.Ref)
			if err != nil {
				return Result{}, err
			}
			_, err = l.Remove(ctx, target.ID)
			return Result{Message: fmt.Sprintf("removed: %s", target.Text)}, err
		},
		Filter: func(f FilterArgs) (Result, error) {
			if err := l.SetFilter(f.Filter); err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("filter: %s", f.Filter)}, nil
		},
		Clear: func() (Result, error) {
			n, err := l.ClearCompleted(ctx)
			return Result{Message: fmt.Sprintf("cleared %d completed", n)}, err
		},
	}
}
