// Package logging assembles the structured slog loggers used by the cardmeta
// jobs and CLI.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes helpers so job code tags every line with the same
// field keys (component, run_id, file, card_id, event_type). The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every command
// reports per-file warnings and run summaries in the same shape.
package logging
