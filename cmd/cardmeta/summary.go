package main

import (
	"strconv"
	"time"

	"cardmeta/internal/aggregate"
	"cardmeta/internal/ranker"
)

func renderRankSummary(s ranker.Summary, dryRun bool) string {
	title := "Similarity ranking"
	if dryRun {
		title += " (dry run)"
	}
	pairs := [][2]string{
		{"Files", strconv.Itoa(s.Load.Files)},
		{"Ranked", strconv.Itoa(s.Ranked)},
		{"Written", strconv.Itoa(s.Written)},
		{"Write failures", strconv.Itoa(s.WriteFailures)},
		{"Malformed", strconv.Itoa(s.Load.Malformed)},
		{"Missing fields", strconv.Itoa(s.Load.MissingField)},
		{"Not an object", strconv.Itoa(s.Load.NotObject)},
		{"Unreadable", strconv.Itoa(s.Load.Unreadable)},
		{"Duplicate IDs", strconv.Itoa(s.Load.Duplicates)},
		{"Elapsed", formatElapsed(s.Elapsed)},
	}
	return renderKeyValues(title, pairs)
}

func renderMergeSummary(s aggregate.Summary) string {
	pairs := [][2]string{
		{"Files", strconv.Itoa(s.Files)},
		{"Merged", strconv.Itoa(s.Merged)},
		{"Skipped", strconv.Itoa(s.Skipped)},
	}
	if s.Excluded > 0 {
		pairs = append(pairs, [2]string{"Previous output excluded", strconv.Itoa(s.Excluded)})
	}
	pairs = append(pairs,
		[2]string{"Elements", strconv.Itoa(s.Elements)},
		[2]string{"Output", s.Output},
		[2]string{"Elapsed", formatElapsed(s.Elapsed)},
	)
	return renderKeyValues("Aggregation", pairs)
}

func formatElapsed(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}
