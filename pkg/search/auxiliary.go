package search

import (
	"sort"
	"strings"

	"github.com/arjunrao/lumensearch/pkg/text"
)

// Autocomplete returns up to limit vocabulary tokens starting with
// prefix (case-insensitive), sorted ascending. When more than limit
// tokens match, all matches are sorted first and the first limit of
// them (the lexicographically smallest) are returned.
func (e *Engine) Autocomplete(prefix string, limit uint) []string {
	prefix = strings.ToLower(prefix)

	var matches []string
	for _, tok := range e.store.vocabulary() {
		if strings.HasPrefix(tok, prefix) {
			matches = append(matches, tok)
		}
	}
	sort.Strings(matches)
	if uint(len(matches)) > limit {
		matches = matches[:limit]
	}
	return matches
}

const suggestLimit = 5

// Suggest tokenizes query and, for each token, takes the first 3 ids
// from its fuzzy candidate set and collects their document titles,
// truncated to 5 titles overall.
func (e *Engine) Suggest(query string) []string {
	tokens := text.Tokenize(query)

	var titles []string
	for _, tok := range tokens {
		if len(titles) >= suggestLimit {
			break
		}
		cands := e.candidatesFor(tok, true)
		entries := cands.entries
		if len(entries) > 3 {
			entries = entries[:3]
		}
		for _, en := range entries {
			id := en.id
			if len(titles) >= suggestLimit {
				break
			}
			doc, ok := e.store.getDocument(id)
			if !ok {
				continue
			}
			titles = append(titles, doc.Title)
		}
	}

	if len(titles) > suggestLimit {
		titles = titles[:suggestLimit]
	}
	return titles
}
