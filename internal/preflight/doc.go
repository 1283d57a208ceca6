// Package preflight provides readiness checks for the filesystem paths a
// cardmeta job touches.
//
// The CLI "cardmeta check" command runs RunAll and renders the results as a
// table; the rank and merge commands do not call it and rely on their own
// per-file error handling instead.
package preflight
