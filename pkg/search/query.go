package search

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/arjunrao/lumensearch/pkg/text"
)

const (
	defaultPage          = 1
	defaultPerPage       = 10
	maxHighlights        = 3
	highlightWindow      = 50
	contentTruncateBytes = 200
)

// SearchQuery is the request object for Search. Page=0 means "use 1"
// and PerPage=0 means "use 10". Highlight is a plain bool: its zero
// value is false, so no snippets are generated unless it is set.
type SearchQuery struct {
	Query     string
	Fuzzy     bool
	Page      uint
	PerPage   uint
	Filters   map[string]string
	SortBy    string // accepted but ignored; ranking is always score desc
	Highlight bool
}

// SearchResult is a single projected, highlighted hit.
type SearchResult struct {
	ID         string
	Title      string
	Content    string
	Score      float64
	Highlights []string
	Metadata   map[string]string
}

// SearchResponse is the full paginated result of a Search call.
type SearchResponse struct {
	Results     []SearchResult
	TotalHits   int
	QueryTimeMs int64
	Page        uint
	PerPage     uint
	TotalPages  uint
}

// Search runs the full query pipeline described in §4.F: tokenize,
// candidate expansion (exact or fuzzy), score, filter, sort, paginate,
// project and highlight.
func (e *Engine) Search(q SearchQuery) (SearchResponse, error) {
	start := time.Now()

	page := q.Page
	if page == 0 {
		page = defaultPage
	}
	perPage := q.PerPage
	if perPage == 0 {
		perPage = defaultPerPage
	}

	queryTokens := text.Tokenize(q.Query)
	if len(queryTokens) == 0 {
		return SearchResponse{
			Results:     nil,
			TotalHits:   0,
			QueryTimeMs: elapsedMs(start),
			Page:        page,
			PerPage:     perPage,
			TotalPages:  0,
		}, nil
	}

	cardinality := int(e.store.cardinalityValue())

	// distinct query tokens only, preserving first-seen order, so a
	// repeated query token contributes idf(t) once rather than once per
	// repetition.
	cands := make([]candidateSet, 0, len(queryTokens))
	seenTok := make(map[string]bool, len(queryTokens))
	for _, tok := range queryTokens {
		if seenTok[tok] {
			continue
		}
		seenTok[tok] = true
		cands = append(cands, e.candidatesFor(tok, q.Fuzzy))
	}

	scored := score(e.store, cardinality, cands)

	// Filtering: every (key, value) pair in Filters must match the
	// document's metadata exactly; a missing key rejects the document.
	filtered := make(map[string]float64, len(scored))
	for id, sc := range scored {
		if !e.matchesFilters(id, q.Filters) {
			continue
		}
		filtered[id] = sc
	}

	type scoredID struct {
		id    string
		score float64
	}
	ranked := make([]scoredID, 0, len(filtered))
	for id, sc := range filtered {
		ranked = append(ranked, scoredID{id, sc})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := ranked[i].score, ranked[j].score
		if math.IsNaN(si) && math.IsNaN(sj) {
			return ranked[i].id < ranked[j].id
		}
		if si == sj {
			return ranked[i].id < ranked[j].id
		}
		return si > sj
	})

	totalHits := len(ranked)
	totalPages := uint(0)
	if totalHits > 0 {
		totalPages = uint(math.Ceil(float64(totalHits) / float64(perPage)))
	}

	startIdx := int(page-1) * int(perPage)
	endIdx := startIdx + int(perPage)
	if endIdx > totalHits {
		endIdx = totalHits
	}

	var pageSlice []scoredID
	if startIdx < totalHits && startIdx >= 0 {
		pageSlice = ranked[startIdx:endIdx]
	}

	results := make([]SearchResult, 0, len(pageSlice))
	for _, r := range pageSlice {
		doc, ok := e.store.getDocument(r.id)
		if !ok {
			continue
		}
		var highlights []string
		if q.Highlight {
			highlights = highlight(doc, queryTokens)
		}
		results = append(results, SearchResult{
			ID:         doc.ID,
			Title:      doc.Title,
			Content:    truncateContent(doc.Content),
			Score:      r.score,
			Highlights: highlights,
			Metadata:   doc.Metadata,
		})
	}

	return SearchResponse{
		Results:     results,
		TotalHits:   totalHits,
		QueryTimeMs: elapsedMs(start),
		Page:        page,
		PerPage:     perPage,
		TotalPages:  totalPages,
	}, nil
}

// candidatesFor builds Cands(t) for a single query token, per step 3 of
// §4.F. Every resulting id is tagged with the vocabulary term whose
// posting list produced it, so score() can later read tf[d][term]
// rather than tf[d][token] — the term a fuzzy-matched document
// actually contains may differ from the literal query token.
func (e *Engine) candidatesFor(token string, fuzzy bool) candidateSet {
	raw := e.store.postings(token)
	df := len(raw)

	// termFor maps a candidate id to the first term found for it. The
	// token's own postings are assigned before any neighbor's, so an
	// exact match always wins over a fuzzy one for the same id.
	termFor := make(map[string]string, len(raw))
	for _, id := range raw {
		termFor[id] = token
	}

	if fuzzy {
		var neighbors []string
		for _, w := range e.store.vocabulary() {
			if w == token {
				continue
			}
			if text.EditDistance(token, w) <= 1 {
				neighbors = append(neighbors, w)
			}
		}
		sort.Strings(neighbors) // deterministic tie-break among neighbor terms

		allIDs := append([]string{}, raw...)
		for _, w := range neighbors {
			ids := e.store.postings(w)
			allIDs = append(allIDs, ids...)
			for _, id := range ids {
				if _, ok := termFor[id]; !ok {
					termFor[id] = w
				}
			}
		}
		sort.Strings(allIDs)
		df = len(dedupeSorted(allIDs))
	}

	ids := make([]string, 0, len(termFor))
	for id := range termFor {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]candidateEntry, len(ids))
	for i, id := range ids {
		entries[i] = candidateEntry{id: id, term: termFor[id]}
	}

	return candidateSet{token: token, entries: entries, df: df}
}

func dedupeSorted(ids []string) []string {
	if len(ids) == 0 {
		return ids
	}
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

func (e *Engine) matchesFilters(id string, filters map[string]string) bool {
	if len(filters) == 0 {
		return true
	}
	doc, ok := e.store.getDocument(id)
	if !ok {
		return false
	}
	for k, v := range filters {
		if doc.Metadata == nil {
			return false
		}
		got, ok := doc.Metadata[k]
		if !ok || got != v {
			return false
		}
	}
	return true
}

func truncateContent(content string) string {
	if len(content) <= contentTruncateBytes {
		return content
	}
	return content[:contentTruncateBytes] + "..."
}

// highlight produces up to maxHighlights snippets, one per query token
// in order, per §4.F's highlighter. Offsets are byte offsets into the
// UTF-8 representation of title+" "+content, which may clip a
// multibyte codepoint mid-sequence; windows are not rounded to
// codepoint boundaries (the byte-offset behavior noted in §9).
func highlight(doc *Document, queryTokens []string) []string {
	haystack := doc.Title + " " + doc.Content
	lower := strings.ToLower(haystack)

	var snippets []string
	for _, tok := range queryTokens {
		if len(snippets) >= maxHighlights {
			break
		}
		offset := strings.Index(lower, strings.ToLower(tok))
		if offset < 0 {
			continue
		}
		left := offset - highlightWindow
		clippedLeft := left < 0
		if clippedLeft {
			left = 0
		}
		right := offset + len(tok) + highlightWindow
		clippedRight := right > len(haystack)
		if clippedRight {
			right = len(haystack)
		}

		snippet := haystack[left:right]
		if clippedLeft {
			snippet = "..." + snippet
		}
		if clippedRight {
			snippet = snippet + "..."
		}
		snippets = append(snippets, snippet)
	}
	return snippets
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
