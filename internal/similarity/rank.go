package similarity

import (
	"cmp"
	"slices"

	"cardmeta/internal/record"
)

// Candidate is a record reduced to what ranking needs.
type Candidate struct {
	ID   record.ID
	Name string
}

// Neighbor is a scored peer.
type Neighbor struct {
	ID    record.ID
	Score float64
}

// Ranker selects neighbors. The zero Normalize leaves names unchanged.
type Ranker struct {
	Threshold float64
	TopN      int
	Normalize Normalizer
}

// Prepare applies the normalizer to every candidate name.
func (r Ranker) Prepare(candidates []Candidate) []Candidate {
	if r.Normalize == nil {
		return candidates
	}
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = Candidate{ID: c.ID, Name: r.Normalize(c.Name)}
	}
	return out
}

// Rank scores target against every candidate with a different identifier and
// returns at most TopN neighbors scoring at least Threshold, best first.
// Equal scores are ordered by identifier. Names must already be prepared.
func (r Ranker) Rank(target Candidate, candidates []Candidate) []Neighbor {
	neighbors := make([]Neighbor, 0)
	for _, c := range candidates {
		if c.ID.Key() == target.ID.Key() {
			continue
		}
		score := Ratio(target.Name, c.Name)
		if score >= r.Threshold {
			neighbors = append(neighbors, Neighbor{ID: c.ID, Score: score})
		}
	}
	slices.SortStableFunc(neighbors, func(a, b Neighbor) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.Key(), b.ID.Key())
	})
	if r.TopN >= 0 && len(neighbors) > r.TopN {
		neighbors = neighbors[:r.TopN]
	}
	return neighbors
}

// IDs returns the identifiers of neighbors in order.
func IDs(neighbors []Neighbor) []record.ID {
	ids := make([]record.ID, len(neighbors))
	for i, n := range neighbors {
		ids[i] = n.ID
	}
	return ids
}
