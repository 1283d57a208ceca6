// Package aggregate concatenates every per-card JSON document in a source into
// one pretty-printed JSON array.
//
// Top-level arrays are flattened one level; any other value is appended as is.
// Malformed or unreadable files are skipped with a warning. The output is
// written atomically so readers see either the previous aggregate or the new
// one.
package aggregate
