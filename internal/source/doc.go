// Package source enumerates record documents as a lazy sequence.
//
// A Source yields one Document per candidate file. Read failures travel with
// the document instead of aborting the sequence, so callers decide per item
// whether to skip, warn, or stop. Dir walks *.json files directly inside a
// directory; Memory serves in-memory documents to tests.
package source
