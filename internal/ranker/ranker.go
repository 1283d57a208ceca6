package ranker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"cardmeta/internal/catalog"
	"cardmeta/internal/logging"
	"cardmeta/internal/record"
	"cardmeta/internal/similarity"
	"cardmeta/internal/source"
)

// EventWriteFailed tags per-record write failures.
const EventWriteFailed = "write_failed"

// Options configures a ranking run.
type Options struct {
	Source source.Source
	// Sink defaults to FileSink.
	Sink   Sink
	Ranker similarity.Ranker
	// DryRun computes neighbor lists without writing.
	DryRun bool
	Logger *slog.Logger
}

// Result is the outcome for one record.
type Result struct {
	ID        record.ID
	File      string
	Neighbors []similarity.Neighbor
	Err       error
}

// Summary describes a finished run.
type Summary struct {
	Load          catalog.Report
	Ranked        int
	Written       int
	WriteFailures int
	Results       []Result
	Elapsed       time.Duration
}

// Run executes the job. The returned error is non-nil for ErrNoInputs,
// context cancellation, or invalid options; per-record write failures are
// reported in the Summary instead.
func Run(ctx context.Context, opts Options) (summary Summary, err error) {
	if opts.Source == nil {
		return summary, errors.New("ranker: source is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	sink := opts.Sink
	if sink == nil {
		sink = FileSink{}
	}
	start := time.Now()
	defer func() { summary.Elapsed = time.Since(start) }()

	store, report, err := catalog.Load(opts.Source, logger)
	summary.Load = report
	if err != nil {
		return summary, err
	}
	logger.Info("records loaded; computing similarity",
		logging.Int("records", store.Len()),
		logging.Int("skipped", report.Skipped()),
		logging.Float64("threshold", opts.Ranker.Threshold),
		logging.Int("top_n", opts.Ranker.TopN),
	)

	candidates := opts.Ranker.Prepare(Candidates(store))
	for i, entry := range store.Entries() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		neighbors := opts.Ranker.Rank(candidates[i], candidates)
		summary.Ranked++
		result := Result{ID: entry.ID, File: filepath.Base(entry.Path), Neighbors: neighbors}

		entry.Record.SetSimilarIDs(similarity.IDs(neighbors))
		logger.Debug("neighbors computed",
			logging.String(logging.FieldFile, result.File),
			logging.String(logging.FieldCardID, entry.ID.String()),
			logging.Int("neighbors", len(neighbors)),
		)
		if !opts.DryRun {
			if err := write(sink, entry); err != nil {
				result.Err = err
				summary.WriteFailures++
				logging.ErrorWithContext(logger, "failed to write record", EventWriteFailed,
					logging.String(logging.FieldFile, result.File),
					logging.String(logging.FieldCardID, entry.ID.String()),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check that the file is writable"),
				)
			} else {
				summary.Written++
			}
		}
		summary.Results = append(summary.Results, result)
	}
	return summary, nil
}

func write(sink Sink, entry *catalog.Entry) error {
	data, err := record.Encode(entry.Record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := sink.Write(entry, data); err != nil {
		return fmt.Errorf("write %s: %w", entry.Path, err)
	}
	return nil
}

// Candidates converts store entries into ranking candidates, in store order.
func Candidates(store *catalog.Store) []similarity.Candidate {
	entries := store.Entries()
	out := make([]similarity.Candidate, len(entries))
	for i, entry := range entries {
		out[i] = similarity.Candidate{ID: entry.ID, Name: entry.Name}
	}
	return out
}

// ErrUnknownCard reports a lookup for an identifier the store lacks.
var ErrUnknownCard = errors.New("card not found")

// Neighbors ranks a single card against the store without writing anything.
func Neighbors(store *catalog.Store, ranker similarity.Ranker, id record.ID) (*catalog.Entry, []similarity.Neighbor, error) {
	entry, ok := store.Get(id)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	candidates := ranker.Prepare(Candidates(store))
	target := similarity.Candidate{ID: entry.ID, Name: entry.Name}
	if ranker.Normalize != nil {
		target.Name = ranker.Normalize(target.Name)
	}
	return entry, ranker.Rank(target, candidates), nil
}
