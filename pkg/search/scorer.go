package search

import "math"

// BM25-style scoring constants, fixed per §4.E. avgDocLen is a
// hard-coded constant rather than the running corpus average — a
// deliberate simplification the spec requires preserving bit-for-bit.
const (
	bm25K1    = 1.5
	bm25B     = 0.75
	avgDocLen = 100.0
)

// candidateEntry attributes one candidate document id to the
// vocabulary term whose posting list actually produced it: the query
// token itself for an exact hit, or the matched neighbor word for a
// fuzzy hit. Scoring reads tf[d][term], not tf[d][token], so a
// document reached only through a fuzzy neighbor is scored against the
// term it actually contains.
type candidateEntry struct {
	id   string
	term string
}

// candidateSet is the per-token candidate document list produced by
// step 3 of the query pipeline: Cands(t). df is the document-frequency
// value used in the idf formula, defined as len(Cands(t)) — for an
// exact (non-fuzzy) query this is the raw posting-list length,
// including one entry per occurrence, per §9's note on posting lists
// with repetition. For a fuzzy-expanded token this is the distinct-id
// count across the token's own postings and every neighbor's. entries
// holds exactly one (id, term) pair per distinct document id.
type candidateSet struct {
	token   string
	entries []candidateEntry
	df      int
}

// score computes score(d) for every document reachable through cands,
// per the BM25-style formula in §4.E. Only documents whose accumulated
// score is non-zero are present in the returned map.
func score(s *store, cardinality int, cands []candidateSet) map[string]float64 {
	n := float64(cardinality)
	scores := make(map[string]float64)

	for _, c := range cands {
		if c.df == 0 {
			continue
		}
		df := float64(c.df)
		idf := math.Log((n - df + 0.5) / (df + 0.5))

		for _, en := range c.entries {
			tf, ok := s.termFrequency(en.id, en.term)
			if !ok {
				continue
			}
			docLen := float64(s.docLength(en.id))
			lengthNorm := (1 - bm25B) + bm25B*(docLen/avgDocLen)
			bm25TF := (tf * (bm25K1 + 1)) / (tf + bm25K1*lengthNorm)

			scores[en.id] += idf * bm25TF
		}
	}

	for id, sc := range scores {
		if sc == 0 {
			delete(scores, id)
		}
	}
	return scores
}
