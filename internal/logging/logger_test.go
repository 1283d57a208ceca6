package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cardmeta/internal/config"
)

func TestConsoleFormatLiftsSubjectIntoHeader(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closeFn()

	logger = NewComponentLogger(logger, "ranker").With(String(FieldRunID, "run-1"))
	WarnWithContext(logger, "invalid JSON; skipping file", "malformed_file",
		String(FieldFile, "bad.json"),
		Error(errors.New("unexpected end of input")),
	)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if !strings.Contains(lines[0], "WARN [ranker] bad.json – invalid JSON; skipping file") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	for _, want := range []string{
		`    - error: "unexpected end of input"`,
		"    - event_type: malformed_file",
		`    - error_hint: "check the file contents"`,
		`    - impact: "file skipped"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "run-1") {
		t.Fatalf("run_id should be hidden at warn level:\n%s", out)
	}
}

func TestConsoleFormatShowsRunIDAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.With(String(FieldRunID, "run-2")).Debug("neighbors computed",
		String(FieldCardID, "C-1"),
		Any("similar_ids", []string{"C-2", "C-3"}),
	)
	out := buf.String()
	if !strings.Contains(out, "DEBUG card C-1 – neighbors computed") {
		t.Fatalf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "    - run_id: run-2") || !strings.Contains(out, "    - similar_ids: [C-2, C-3]") {
		t.Fatalf("unexpected fields:\n%s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestFileReceivesJSONLines(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "cardmeta.log")
	cfg := config.Default()
	cfg.Logging.File = path

	logger, closeFn, err := NewFromConfig(&cfg, &console)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("aggregation complete", Int("elements", 3))
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !strings.Contains(console.String(), "aggregation complete") {
		t.Fatalf("console missing record:\n%s", console.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log file is not JSON: %v\n%s", err, data)
	}
	if entry["msg"] != "aggregation complete" || entry["level"] != "info" || entry["elements"] != float64(3) {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key: %v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(t.Context(), 0) {
		t.Fatal("nop logger should not be enabled")
	}
	WarnWithContext(nil, "ignored", "none")
}
