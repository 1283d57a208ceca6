// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"cardmeta/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose input directory and output file live in
// a per-test temp directory. The input directory is created empty.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "data")
	cfgVal.Paths.OutputFile = filepath.Join(base, "CardMetadata.json")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}

	if err := os.MkdirAll(builder.cfg.Paths.InputDir, 0o755); err != nil {
		t.Fatalf("mkdir input dir: %v", err)
	}
	return builder.cfg
}

// WithCards writes the given file name -> contents pairs into the input directory.
func WithCards(files map[string]string) ConfigOption {
	return func(b *configBuilder) {
		WriteCards(b.t, b.cfg.Paths.InputDir, files)
	}
}

// WithSimilarity overrides the ranking parameters.
func WithSimilarity(threshold float64, topN int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Similarity.Threshold = threshold
		b.cfg.Similarity.TopN = topN
	}
}
