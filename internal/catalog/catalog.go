package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"cardmeta/internal/logging"
	"cardmeta/internal/record"
	"cardmeta/internal/source"
)

// ErrNoInputs reports a source without any candidate documents.
var ErrNoInputs = errors.New("no .json files found")

// Event types attached to per-file warnings.
const (
	EventMalformed    = "malformed_file"
	EventUnreadable   = "unreadable_file"
	EventNotObject    = "unexpected_shape"
	EventMissingField = "missing_field"
	EventDuplicateID  = "duplicate_card_id"
)

// Report counts what happened to each candidate document.
type Report struct {
	Files        int
	Loaded       int
	Malformed    int
	Unreadable   int
	NotObject    int
	MissingField int
	Duplicates   int
}

// Skipped returns the number of documents that did not make it into the store.
func (r Report) Skipped() int {
	return r.Malformed + r.Unreadable + r.NotObject + r.MissingField
}

// CheckInputs returns ErrNoInputs when src has no candidate documents.
func CheckInputs(src source.Source) error {
	count, err := src.Count()
	if err != nil {
		return fmt.Errorf("%w in %s: %v", ErrNoInputs, src, err)
	}
	if count == 0 {
		return fmt.Errorf("%w in %s", ErrNoInputs, src)
	}
	return nil
}

// Load reads every document of src into a Store. Records without card_id or
// name_ruby are reported and left out; later duplicates replace earlier ones.
func Load(src source.Source, logger *slog.Logger) (*Store, Report, error) {
	var report Report
	if err := CheckInputs(src); err != nil {
		return nil, report, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	store := NewStore()
	for doc := range src.Documents() {
		report.Files++
		entry, err := parseEntry(doc)
		if err != nil {
			report.count(err)
			LogSkip(logger, doc, err)
			continue
		}
		if store.Put(entry) {
			report.Duplicates++
			logging.WarnWithContext(logger, "duplicate card_id; later file replaces earlier record", EventDuplicateID,
				logging.String(logging.FieldFile, doc.Name),
				logging.String(logging.FieldCardID, entry.ID.String()),
				logging.String(logging.FieldImpact, "earlier record excluded from ranking"),
				logging.String(logging.FieldErrorHint, "give every card a unique card_id"),
			)
			continue
		}
		report.Loaded++
	}
	return store, report, nil
}

func parseEntry(doc source.Document) (*Entry, error) {
	if doc.Err != nil {
		return nil, doc.Err
	}
	rec, err := record.Parse(doc.Data)
	if err != nil {
		return nil, err
	}
	id, idErr := rec.ID()
	name, nameErr := rec.Name()
	if err := errors.Join(idErr, nameErr); err != nil {
		return nil, err
	}
	return &Entry{ID: id, Name: name, Path: doc.Path, Record: rec}, nil
}

func (r *Report) count(err error) {
	switch EventFor(err) {
	case EventMalformed:
		r.Malformed++
	case EventNotObject:
		r.NotObject++
	case EventMissingField:
		r.MissingField++
	default:
		r.Unreadable++
	}
}

// EventFor maps a per-document error to its event type.
func EventFor(err error) string {
	switch {
	case errors.Is(err, record.ErrMalformed):
		return EventMalformed
	case errors.Is(err, record.ErrNotObject):
		return EventNotObject
	case errors.Is(err, record.ErrMissingID), errors.Is(err, record.ErrMissingName):
		return EventMissingField
	default:
		return EventUnreadable
	}
}

// LogSkip emits the per-file warning for a skipped document.
func LogSkip(logger *slog.Logger, doc source.Document, err error) {
	event := EventFor(err)
	var msg, hint string
	switch event {
	case EventMalformed:
		msg, hint = "invalid JSON; skipping file", "fix the JSON syntax"
	case EventNotObject:
		msg, hint = "record is not a JSON object; skipping file", "store one object per file"
	case EventMissingField:
		msg, hint = "card_id or name_ruby missing; skipping file", "set non-empty card_id and name_ruby"
	default:
		msg, hint = "unexpected error reading file; skipping file", "check file permissions"
	}
	logging.WarnWithContext(logger, msg, event,
		logging.String(logging.FieldFile, doc.Name),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hint),
	)
}
