// Package ranker runs the similarity job: it loads every comparable record,
// ranks each one's peers by name similarity, stores the resulting
// similar_ids list, and writes each record back to the file it came from.
//
// A failed write is logged and counted; the remaining records are still
// processed. Only a source without any candidate files stops the run
// before work starts.
package ranker
