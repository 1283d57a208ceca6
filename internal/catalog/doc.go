// Package catalog loads record documents into the in-memory store the
// ranker works on and classifies per-file failures.
//
// Loading never aborts on a bad file: malformed JSON, unreadable files,
// non-object documents, and records missing card_id or name_ruby are logged
// and counted in the Report, then skipped. Only an empty source is fatal
// (ErrNoInputs).
package catalog
