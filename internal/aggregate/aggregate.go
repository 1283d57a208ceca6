package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"cardmeta/internal/catalog"
	"cardmeta/internal/fileutil"
	"cardmeta/internal/logging"
	"cardmeta/internal/record"
	"cardmeta/internal/source"
)

// ErrNoData reports that no document contributed an element.
var ErrNoData = errors.New("no data to aggregate")

// Options configures an aggregation run.
type Options struct {
	Source     source.Source
	OutputFile string
	Logger     *slog.Logger
}

// Summary describes a finished run.
type Summary struct {
	Files    int
	Merged   int
	Skipped  int
	Excluded int
	Elements int
	Output   string
	Elapsed  time.Duration
}

// Run merges every document of opts.Source into opts.OutputFile.
func Run(ctx context.Context, opts Options) (summary Summary, err error) {
	if opts.Source == nil {
		return summary, errors.New("aggregate: source is required")
	}
	if opts.OutputFile == "" {
		return summary, errors.New("aggregate: output file is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	start := time.Now()
	defer func() { summary.Elapsed = time.Since(start) }()

	if err := catalog.CheckInputs(opts.Source); err != nil {
		return summary, err
	}
	output, err := filepath.Abs(opts.OutputFile)
	if err != nil {
		return summary, fmt.Errorf("resolve output path: %w", err)
	}
	summary.Output = output

	var all []json.RawMessage
	for doc := range opts.Source.Documents() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Files++
		if isOutput(doc.Path, output) {
			summary.Excluded++
			logger.Info("skipping previous aggregate output",
				logging.String(logging.FieldFile, doc.Name),
			)
			continue
		}
		values, err := elements(doc)
		if err != nil {
			summary.Skipped++
			catalog.LogSkip(logger, doc, err)
			continue
		}
		all = append(all, values...)
		summary.Merged++
		logger.Info("file merged",
			logging.String(logging.FieldFile, doc.Name),
			logging.Int("elements", len(values)),
		)
	}

	if len(all) == 0 {
		logging.WarnWithContext(logger, "no data to aggregate; output not written", "no_data",
			logging.String(logging.FieldErrorHint, "check that the input files contain JSON data"),
			logging.String(logging.FieldImpact, "output file left unchanged"),
		)
		return summary, ErrNoData
	}

	data, err := record.EncodeArray(all)
	if err != nil {
		return summary, fmt.Errorf("encode aggregate: %w", err)
	}
	if err := fileutil.WriteFileAtomic(output, data, 0o644); err != nil {
		return summary, fmt.Errorf("write %s: %w", output, err)
	}
	summary.Elements = len(all)
	return summary, nil
}

func elements(doc source.Document) ([]json.RawMessage, error) {
	if doc.Err != nil {
		return nil, doc.Err
	}
	return record.Elements(doc.Data)
}

func isOutput(path, output string) bool {
	if path == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == output
}
