// Package main hosts the cardmeta CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, sets up structured
// logging with a per-run identifier, takes the directory lock, and hands off
// to the rank and merge jobs in internal/ranker and internal/aggregate. The
// similar, check and config commands are read-only helpers around the same
// packages.
//
// Keep this package lean: behavior belongs in the internal packages, and
// commands here only translate flags into options and render summaries.
package main
