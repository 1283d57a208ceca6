package similarity

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the similarity of a and b in [0, 1]. Two empty strings score 1.
//
// The underlying matcher is order sensitive in rare tie cases, so the
// lexically smaller string is always matched as the first sequence. This
// keeps Ratio(a, b) == Ratio(b, a).
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	if b < a {
		a, b = b, a
	}
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// runes splits s into one element per code point.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
