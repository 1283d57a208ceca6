package similarity

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"cardmeta/internal/config"
)

// Normalizer rewrites a display name before it is scored.
type Normalizer func(string) string

// NewNormalizer returns the normalizer for a config mode.
func NewNormalizer(mode string) (Normalizer, error) {
	switch mode {
	case "", config.NormalizeNone:
		return func(s string) string { return s }, nil
	case config.NormalizeNFKC:
		return norm.NFKC.String, nil
	case config.NormalizeNFKCCaseFold:
		fold := cases.Fold()
		return func(s string) string {
			return fold.String(norm.NFKC.String(s))
		}, nil
	default:
		return nil, fmt.Errorf("unknown name normalization %q", mode)
	}
}
