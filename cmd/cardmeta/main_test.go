package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cardmeta/internal/aggregate"
	"cardmeta/internal/catalog"
	"cardmeta/internal/dirlock"
	"cardmeta/internal/ranker"
	"cardmeta/internal/testsupport"
)

type cliTestEnv struct {
	inputDir   string
	outputFile string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	cfg := testsupport.NewConfig(t, testsupport.WithCards(map[string]string{
		"a.json": `{"card_id":"A","name_ruby":"Alpha"}`,
		"b.json": `{"card_id":"B","name_ruby":"Alphabet"}`,
		"c.json": `{"card_id":3,"name_ruby":"Beta"}`,
	}))
	env := &cliTestEnv{
		inputDir:   cfg.Paths.InputDir,
		outputFile: cfg.Paths.OutputFile,
		configPath: filepath.Join(filepath.Dir(cfg.Paths.InputDir), "cardmeta.toml"),
	}
	content := fmt.Sprintf("[paths]\ninput_dir = %q\noutput_file = %q\n", env.inputDir, env.outputFile)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRankCommandWritesSimilarIDs(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, stderr, err := runCLI(t, []string{"rank"}, env.configPath)
	if err != nil {
		t.Fatalf("rank: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, "Similarity ranking") {
		t.Fatalf("expected summary table, got:\n%s", stdout)
	}
	if !strings.Contains(stderr, "ranking complete") {
		t.Fatalf("expected completion log, got:\n%s", stderr)
	}

	alpha := testsupport.ReadObject(t, filepath.Join(env.inputDir, "a.json"))
	if ids := alpha["similar_ids"].([]any); len(ids) != 1 || ids[0] != "B" {
		t.Fatalf("unexpected similar_ids for Alpha: %#v", alpha["similar_ids"])
	}
	beta := testsupport.ReadObject(t, filepath.Join(env.inputDir, "c.json"))
	if ids := beta["similar_ids"].([]any); len(ids) != 0 {
		t.Fatalf("expected no neighbors for Beta, got %#v", ids)
	}
}

func TestRankCommandDryRunLeavesFilesUntouched(t *testing.T) {
	env := setupCLITestEnv(t)
	before, _ := os.ReadFile(filepath.Join(env.inputDir, "a.json"))

	stdout, _, err := runCLI(t, []string{"rank", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("rank --dry-run: %v", err)
	}
	after, _ := os.ReadFile(filepath.Join(env.inputDir, "a.json"))
	if !bytes.Equal(before, after) {
		t.Fatalf("dry run modified a.json:\n%s", after)
	}
	if !strings.Contains(stdout, "dry run") {
		t.Fatalf("expected dry run title, got:\n%s", stdout)
	}
}

func TestRankCommandMissingInputDir(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(t.TempDir(), "nope")

	_, _, err := runCLI(t, []string{"rank", "--dir", missing}, env.configPath)
	if !errors.Is(err, catalog.ErrNoInputs) {
		t.Fatalf("expected ErrNoInputs, got %v", err)
	}
}

func TestRankCommandRejectsInvalidThreshold(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"rank", "--threshold", "1.5"}, env.configPath); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRankCommandFailsWhileLocked(t *testing.T) {
	env := setupCLITestEnv(t)
	lock, err := dirlock.Acquire(filepath.Join(env.inputDir, ".cardmeta.lock"))
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lock.Release()

	if _, _, err := runCLI(t, []string{"rank"}, env.configPath); !errors.Is(err, dirlock.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestMergeCommandWritesAggregate(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(t.TempDir(), "all.json")

	stdout, stderr, err := runCLI(t, []string{"merge", "--output", output}, env.configPath)
	if err != nil {
		t.Fatalf("merge: %v\nstderr: %s", err, stderr)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var cards []map[string]any
	if err := json.Unmarshal(data, &cards); err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if !strings.Contains(stdout, "Aggregation") {
		t.Fatalf("expected summary table, got:\n%s", stdout)
	}
	if _, err := os.Stat(env.outputFile); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("configured output should be unused when --output is set, stat err = %v", err)
	}
}

func TestMergeCommandNoData(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := t.TempDir()
	testsupport.WriteCards(t, empty, map[string]string{"empty.json": `[]`})

	_, _, err := runCLI(t, []string{"merge", "--dir", empty}, env.configPath)
	if !errors.Is(err, aggregate.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestSimilarCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"similar", "B", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	var out struct {
		CardID  any `json:"card_id"`
		Similar []struct {
			CardID any     `json:"card_id"`
			Name   string  `json:"name_ruby"`
			Score  float64 `json:"score"`
		} `json:"similar"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("parse output: %v\n%s", err, stdout)
	}
	if out.CardID != "B" || len(out.Similar) != 1 || out.Similar[0].Name != "Alpha" || out.Similar[0].CardID != "A" {
		t.Fatalf("unexpected neighbors: %s", stdout)
	}
	if out.Similar[0].Score < 0.4 {
		t.Fatalf("neighbor below threshold: %s", stdout)
	}
}

func TestSimilarCommandNumericIDAndTable(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"similar", "3"}, env.configPath)
	if err != nil {
		t.Fatalf("similar 3: %v", err)
	}
	if !strings.Contains(stdout, "Beta") || !strings.Contains(stdout, "No cards at or above threshold") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}

	stdout, _, err = runCLI(t, []string{"similar", "A", "--threshold", "0"}, env.configPath)
	if err != nil {
		t.Fatalf("similar A: %v", err)
	}
	if !strings.Contains(stdout, "Card ID") || !strings.Contains(stdout, "Alphabet") {
		t.Fatalf("expected neighbor table, got:\n%s", stdout)
	}
}

func TestSimilarCommandUnknownCard(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"similar", "ZZZ"}, env.configPath); !errors.Is(err, ranker.ErrUnknownCard) {
		t.Fatalf("expected ErrUnknownCard, got %v", err)
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "[OK]") || strings.Contains(stdout, "[ERROR]") {
		t.Fatalf("unexpected check output:\n%s", stdout)
	}

	stdout, _, err = runCLI(t, []string{"check", "--dir", filepath.Join(t.TempDir(), "missing")}, env.configPath)
	if err == nil {
		t.Fatalf("expected failure for missing dir:\n%s", stdout)
	}
	if !strings.Contains(stdout, "[ERROR]") {
		t.Fatalf("expected error lines, got:\n%s", stdout)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	setupCLITestEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "cardmeta.toml")

	stdout, _, err := runCLI(t, []string{"config", "init", "--path", path}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, path) {
		t.Fatalf("expected path in output, got %q", stdout)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", path}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}

	stdout, _, err = runCLI(t, []string{"config", "validate"}, path)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(stdout, "Configuration valid") {
		t.Fatalf("unexpected validate output: %q", stdout)
	}
}

func TestLogFormatOverride(t *testing.T) {
	env := setupCLITestEnv(t)

	_, stderr, err := runCLI(t, []string{"--log-format", "json", "rank"}, env.configPath)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	line := strings.SplitN(strings.TrimSpace(stderr), "\n", 2)[0]
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", line, err)
	}
	if entry["component"] != "ranker" || entry["run_id"] == nil {
		t.Fatalf("missing component or run_id: %v", entry)
	}
}
