// Package record models one card metadata file: an ordered JSON object whose
// fields are kept as raw JSON so everything except similar_ids round-trips
// unchanged, plus the pretty-printing rules shared by both jobs (four-space
// indentation, non-ASCII and HTML characters written literally).
package record
