package preflight

import (
	"cardmeta/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Input directory", cfg.Paths.InputDir),
		CheckInputFiles("Input files", cfg.Paths.InputDir),
		CheckOutputFile("Aggregate output", cfg.Paths.OutputFile),
		CheckLock("Directory lock", cfg.LockPath()),
	}
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
