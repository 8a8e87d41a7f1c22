package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/tudu/internal/model"
	"gopkg.in/yaml.v3"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("TUDU_LOG_FILE", "")
	return filepath.Join(dir, "tudu.db")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("tudu %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestAddToggleListPersistsAcrossRuns(t *testing.T) {
	db := isolate(t)

	if out := mustRun(t, "--db", db, "add", "buy", "milk"); !strings.Contains(out, "added: buy milk") {
		t.Fatalf("unexpected add output %q", out)
	}
	mustRun(t, "--db", db, "add", "walk dog")
	if out := mustRun(t, "--db", db, "toggle", "1"); !strings.Contains(out, "completed: buy milk") {
		t.Fatalf("unexpected toggle output %q", out)
	}

	out := mustRun(t, "--db", db, "list", "--filter", "active")
	if !strings.Contains(out, "walk dog") || strings.Contains(out, "buy milk") {
		t.Fatalf("unexpected active list %q", out)
	}
	if !strings.Contains(out, "1 item left") {
		t.Fatalf("missing count in %q", out)
	}

	out = mustRun(t, "--db", db, "list")
	if !strings.Contains(out, " 1. [x] buy milk") || !strings.Contains(out, " 2. [ ] walk dog") {
		t.Fatalf("unexpected full list %q", out)
	}
}

func TestRemoveAndClear(t *testing.T) {
	db := isolate(t)
	mustRun(t, "--db", db, "add", "a")
	mustRun(t, "--db", db, "add", "b")
	mustRun(t, "--db", db, "add", "c")
	mustRun(t, "--db", db, "rm", "2")
	mustRun(t, "--db", db, "toggle", "1")

	if out := mustRun(t, "--db", db, "clear"); !strings.Contains(out, "cleared 1 completed") {
		t.Fatalf("unexpected clear output %q", out)
	}
	out := mustRun(t, "--db", db, "list")
	if strings.Contains(out, " a ") || strings.Contains(out, "] b") || !strings.Contains(out, "] c") {
		t.Fatalf("unexpected list %q", out)
	}
}

func TestListRejectsUnknownFilter(t *testing.T) {
	db := isolate(t)
	if _, err := run(t, "--db", db, "list", "--filter", "done"); err == nil {
		t.Fatal("expected filter error")
	}
}

func TestToggleUnknownRefFails(t *testing.T) {
	db := isolate(t)
	if _, err := run(t, "--db", db, "toggle", "9"); err == nil {
		t.Fatal("expected error for missing task")
	}
}

func TestEmptyListOutput(t *testing.T) {
	db := isolate(t)
	out := mustRun(t, "--db", db, "list")
	if !strings.Contains(out, "(no tasks)") || !strings.Contains(out, "0 items left") {
		t.Fatalf("unexpected empty output %q", out)
	}
}

func TestExportFormats(t *testing.T) {
	db := isolate(t)
	mustRun(t, "--db", db, "add", "write docs")

	var fromJSON []model.Task
	if err := json.Unmarshal([]byte(mustRun(t, "--db", db, "export")), &fromJSON); err != nil {
		t.Fatalf("decode json export: %v", err)
	}
	if len(fromJSON) != 1 || fromJSON[0].Text != "write docs" || fromJSON[0].ID == "" {
		t.Fatalf("unexpected json export %#v", fromJSON)
	}

	var fromYAML []model.Task
	if err := yaml.Unmarshal([]byte(mustRun(t, "--db", db, "export", "--format", "yaml")), &fromYAML); err != nil {
		t.Fatalf("decode yaml export: %v", err)
	}
	if len(fromYAML) != 1 || fromYAML[0] != fromJSON[0] {
		t.Fatalf("yaml export %#v differs from json %#v", fromYAML, fromJSON)
	}

	if _, err := run(t, "--db", db, "export", "--format", "xml"); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestEphemeralDoesNotPersist(t *testing.T) {
	db := isolate(t)
	mustRun(t, "--db", db, "--ephemeral", "add", "gone soon")
	out := mustRun(t, "--db", db, "list")
	if strings.Contains(out, "gone soon") {
		t.Fatalf("ephemeral task persisted: %q", out)
	}
}

func TestVersion(t *testing.T) {
	if out := mustRun(t, "version"); strings.TrimSpace(out) != "tudu test" {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestToggleCountsPositionsInFilteredView(t *testing.T) {
	db := isolate(t)
	mustRun(t, "--db", db, "add", "buy milk")
	mustRun(t, "--db", db, "add", "walk dog")
	mustRun(t, "--db", db, "toggle", "1")

	out := mustRun(t, "--db", db, "list", "--filter", "active")
	if !strings.Contains(out, " 1. [ ] walk dog") {
		t.Fatalf("unexpected active list %q", out)
	}
	if out := mustRun(t, "--db", db, "toggle", "--filter", "active", "1"); !strings.Contains(out, "completed: walk dog") {
		t.Fatalf("toggled the wrong task: %q", out)
	}
	if out := mustRun(t, "--db", db, "rm", "-f", "completed", "2"); !strings.Contains(out, "removed: walk dog") {
		t.Fatalf("removed the wrong task: %q", out)
	}
	out = mustRun(t, "--db", db, "list")
	if !strings.Contains(out, "buy milk") || strings.Contains(out, "walk dog") {
		t.Fatalf("unexpected list after rm %q", out)
	}
}

func TestRemoveOutOfRangePositionFails(t *testing.T) {
	db := isolate(t)
	mustRun(t, "--db", db, "add", "keep me")
	if _, err := run(t, "--db", db, "rm", "5"); err == nil {
		t.Fatal("expected out-of-range position to fail")
	}
	if out := mustRun(t, "--db", db, "list"); !strings.Contains(out, "keep me") {
		t.Fatalf("task was removed: %q", out)
	}
}

func TestToggleRejectsUnknownFilter(t *testing.T) {
	db := isolate(t)
	mustRun(t, "--db", db, "add", "a")
	if _, err := run(t, "--db", db, "toggle", "--filter", "bogus", "1"); err == nil {
		t.Fatal("expected filter error")
	}
}

func TestListShowsLastSaveTime(t *testing.T) {
	db := isolate(t)
	if out := mustRun(t, "--db", db, "list"); strings.Contains(out, "saved ") {
		t.Fatalf("nothing saved yet, got %q", out)
	}
	mustRun(t, "--db", db, "add", "a")
	if out := mustRun(t, "--db", db, "list"); !strings.Contains(out, "saved ") {
		t.Fatalf("expected save time in %q", out)
	}
	if out := mustRun(t, "--db", db, "--ephemeral", "list"); strings.Contains(out, "saved ") {
		t.Fatalf("ephemeral store has no save time, got %q", out)
	}
}

func TestVerboseSessionLogsSaveCount(t *testing.T) {
	db := isolate(t)
	logPath := filepath.Join(t.TempDir(), "tudu.log")
	t.Setenv("TUDU_LOG_FILE", logPath)

	mustRun(t, "--db", db, "--verbose", "add", "logged")
	raw, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "session closed") || !strings.Contains(string(raw), "saves=1") {
		t.Fatalf("expected save count in log:\n%s", raw)
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	db := isolate(t)
	if _, err := run(t, "--db", db, "--config", filepath.Join(t.TempDir(), "typo.yaml"), "list"); err == nil {
		t.Fatal("expected error for missing --config file")
	}
}
