package aggregate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cardmeta/internal/aggregate"
	"cardmeta/internal/catalog"
	"cardmeta/internal/source"
	"cardmeta/internal/testsupport"
)

func TestRunFlattensArraysAndAppendsObjects(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteCards(t, dir, map[string]string{
		"a.json": `[{"a":1}]`,
		"b.json": `{"b":2}`,
	})
	output := filepath.Join(t.TempDir(), "CardMetadata.json")

	summary, err := aggregate.Run(context.Background(), aggregate.Options{Source: source.Dir(dir), OutputFile: output})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Elements != 2 || summary.Merged != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "[\n    {\n        \"a\": 1\n    },\n    {\n        \"b\": 2\n    }\n]"
	if string(data) != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", data, want)
	}
}

func TestRunSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteCards(t, dir, map[string]string{
		"bad.json":  `{"card_id":`,
		"good.json": `{"card_id":"1","name_ruby":"ピカチュウ"}`,
	})
	output := filepath.Join(t.TempDir(), "out.json")
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	summary, err := aggregate.Run(context.Background(), aggregate.Options{Source: source.Dir(dir), OutputFile: output, Logger: logger})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Skipped != 1 || summary.Elements != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !strings.Contains(logs.String(), "event_type="+catalog.EventMalformed) {
		t.Fatalf("expected malformed warning:\n%s", logs.String())
	}
	data, _ := os.ReadFile(output)
	var values []map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if !strings.Contains(string(data), "ピカチュウ") {
		t.Fatalf("non-ASCII text must be written unescaped:\n%s", data)
	}
}

func TestRunWithNoDataWritesNothing(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteCards(t, dir, map[string]string{
		"empty.json": `[]`,
		"bad.json":   `nope`,
	})
	output := filepath.Join(t.TempDir(), "out.json")

	_, err := aggregate.Run(context.Background(), aggregate.Options{Source: source.Dir(dir), OutputFile: output})
	if !errors.Is(err, aggregate.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if _, statErr := os.Stat(output); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("output must not be created, stat err = %v", statErr)
	}
}

func TestRunWithoutInputs(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.json")
	_, err := aggregate.Run(context.Background(), aggregate.Options{Source: source.Dir(filepath.Join(t.TempDir(), "missing")), OutputFile: output})
	if !errors.Is(err, catalog.ErrNoInputs) {
		t.Fatalf("expected ErrNoInputs, got %v", err)
	}
}

func TestRunReportsWriteFailure(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteCards(t, dir, map[string]string{"a.json": `{"a":1}`})
	output := filepath.Join(t.TempDir(), "missing", "out.json")

	if _, err := aggregate.Run(context.Background(), aggregate.Options{Source: source.Dir(dir), OutputFile: output}); err == nil {
		t.Fatal("expected write failure")
	}
}

func TestRunExcludesPreviousOutputInInputDir(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteCards(t, dir, map[string]string{"a.json": `{"a":1}`})
	output := filepath.Join(dir, "CardMetadata.json")
	opts := aggregate.Options{Source: source.Dir(dir), OutputFile: output}

	if _, err := aggregate.Run(context.Background(), opts); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, _ := os.ReadFile(output)
	summary, err := aggregate.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, _ := os.ReadFile(output)
	if summary.Excluded != 1 || !bytes.Equal(first, second) {
		t.Fatalf("previous output folded back in: %+v\n%s", summary, second)
	}
}
