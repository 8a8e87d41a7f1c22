package model

import (
	"errors"
	"testing"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{ID: "task-1", Text: "buy milk"}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiresIDAndText(t *testing.T) {
	err := Task{Text: "no id"}.Validate()
	if err == nil || err.Error() != "model: task id is required" {
		t.Fatalf("unexpected error: %v", err)
	}

	err = Task{ID: "task-1", Text: "   "}.Validate()
	if !errors.Is(err, ErrBlankText) {
		t.Fatalf("expected ErrBlankText, got: %v", err)
	}
}

func TestTaskToggledIsInvolution(t *testing.T) {
	task := Task{ID: "task-1", Text: "walk dog"}
	once := task.Toggled()
	if !once.Completed {
		t.Fatal("expected toggled task to be completed")
	}
	if task.Completed {
		t.Fatal("expected original task to be untouched")
	}
	if twice := once.Toggled(); twice != task {
		t.Fatalf("expected double toggle to restore task, got %+v", twice)
	}
}

func TestFilterMatches(t *testing.T) {
	open := Task{ID: "a", Text: "open"}
	done := Task{ID: "b", Text: "done", Completed: true}

	cases := []struct {
		filter   Filter
		wantOpen bool
		wantDone bool
	}{
		{FilterAll, true, true},
		{FilterActive, true, false},
		{FilterCompleted, false, true},
	}
	for _, tc := range cases {
		if got := tc.filter.Matches(open); got != tc.wantOpen {
			t.Fatalf("%s matches open = %v, want %v", tc.filter, got, tc.wantOpen)
		}
		if got := tc.filter.Matches(done); got != tc.wantDone {
			t.Fatalf("%s matches done = %v, want %v", tc.filter, got, tc.wantDone)
		}
	}
}

func TestParseFilter(t *testing.T) {
	got, err := ParseFilter(" Active ")
	if err != nil || got != FilterActive {
		t.Fatalf("parse active = %q, %v", got, err)
	}
	if _, err := ParseFilter("pending"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got: %v", err)
	}
}

func TestFilterNextCycles(t *testing.T) {
	f := FilterAll
	seen := []Filter{f}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	want := []Filter{FilterAll, FilterActive, FilterCompleted, FilterAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
	if Filter("bogus").Next() != FilterAll {
		t.Fatal("expected unknown filter to reset to all")
	}
}
