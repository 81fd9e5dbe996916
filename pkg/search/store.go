package search

import (
	"sync"

	"github.com/arjunrao/lumensearch/pkg/concurrent"
)

// store holds the five logical tables described by the data model: the
// document table, the inverted index (postings with repetition), the
// per-document term-frequency table, the per-document length table, and
// the corpus cardinality. Each table is guarded by its own RWMutex so
// readers (search, autocomplete, suggest, stats) never block each
// other, and the cardinality is a lock-free counter.
//
// Lock ordering when more than one of indexMu/tfMu/lengthMu is held:
// indexMu -> tfMu -> lengthMu. docsMu is always acquired and released
// independently of the other three.
type store struct {
	docsMu sync.RWMutex
	docs   map[string]*Document

	indexMu sync.RWMutex
	index   map[string][]string // token -> posting list, one entry per occurrence

	tfMu sync.RWMutex
	tf   map[string]map[string]float64 // docID -> token -> term frequency

	lengthMu sync.RWMutex
	lengths  map[string]int // docID -> token count

	cardinality *concurrent.Counter
}

func newStore() *store {
	return &store{
		docs:        make(map[string]*Document),
		index:       make(map[string][]string),
		tf:          make(map[string]map[string]float64),
		lengths:     make(map[string]int),
		cardinality: concurrent.NewCounter(),
	}
}

// getDocument returns a clone of the stored document, safe for callers
// to read or mutate without affecting the index.
func (s *store) getDocument(id string) (*Document, bool) {
	s.docsMu.RLock()
	defer s.docsMu.RUnlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, false
	}
	return d.clone(), true
}

// upsertDocument writes doc into the document table and reports
// whether the id is new (the caller increments cardinality outside
// this lock, per the narrowed add_document critical section in §5).
func (s *store) upsertDocument(doc *Document) (isNew bool) {
	s.docsMu.Lock()
	defer s.docsMu.Unlock()
	_, existed := s.docs[doc.ID]
	s.docs[doc.ID] = doc.clone()
	return !existed
}

// deleteDocument removes id from the document table and reports
// whether it was present.
func (s *store) deleteDocument(id string) (existed bool) {
	s.docsMu.Lock()
	defer s.docsMu.Unlock()
	_, existed = s.docs[id]
	delete(s.docs, id)
	return existed
}

// purge is the index-purge subroutine from §4.D: it drops the term
// frequency row for id and scrubs every occurrence of id from every
// posting list, removing any posting list that becomes empty. It does
// not touch doc_length; callers keep that in sync themselves.
func (s *store) purge(id string) {
	s.tfMu.Lock()
	delete(s.tf, id)
	s.tfMu.Unlock()

	s.indexMu.Lock()
	for token, postings := range s.index {
		filtered := postings[:0]
		for _, pid := range postings {
			if pid != id {
				filtered = append(filtered, pid)
			}
		}
		if len(filtered) == 0 {
			delete(s.index, token)
		} else {
			s.index[token] = filtered
		}
	}
	s.indexMu.Unlock()
}

// indexTokens appends id to each token's posting list (one append per
// occurrence) and sets the term-frequency row and document length for
// id, in the lock order indexMu -> tfMu -> lengthMu.
func (s *store) indexTokens(id string, tokens []string, counts map[string]int) {
	s.indexMu.Lock()
	for _, tok := range tokens {
		s.index[tok] = append(s.index[tok], id)
	}
	s.indexMu.Unlock()

	s.tfMu.Lock()
	row := make(map[string]float64, len(counts))
	for tok, count := range counts {
		row[tok] = float64(count) / float64(len(tokens))
	}
	s.tf[id] = row
	s.tfMu.Unlock()

	s.lengthMu.Lock()
	s.lengths[id] = len(tokens)
	s.lengthMu.Unlock()
}

// deleteLength removes a document's length entry. Called by
// remove_document alongside purge, since purge itself leaves lengths
// untouched by design.
func (s *store) deleteLength(id string) {
	s.lengthMu.Lock()
	delete(s.lengths, id)
	s.lengthMu.Unlock()
}

// postings returns a copy of the raw posting list for a token,
// including repeated entries, or nil if the token is absent.
func (s *store) postings(token string) []string {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	p := s.index[token]
	if len(p) == 0 {
		return nil
	}
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// termFrequency returns tf[id][token] and whether it is defined.
func (s *store) termFrequency(id, token string) (float64, bool) {
	s.tfMu.RLock()
	defer s.tfMu.RUnlock()
	row, ok := s.tf[id]
	if !ok {
		return 0, false
	}
	v, ok := row[token]
	return v, ok
}

// docLength returns doc_length[id].
func (s *store) docLength(id string) int {
	s.lengthMu.RLock()
	defer s.lengthMu.RUnlock()
	return s.lengths[id]
}

// cardinalityValue returns the current corpus cardinality.
func (s *store) cardinalityValue() uint64 {
	return s.cardinality.Load()
}

// vocabulary returns a snapshot of every token currently indexed.
func (s *store) vocabulary() []string {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	vocab := make([]string, 0, len(s.index))
	for tok := range s.index {
		vocab = append(vocab, tok)
	}
	return vocab
}

// clear resets all five tables to empty.
func (s *store) clear() {
	s.docsMu.Lock()
	s.docs = make(map[string]*Document)
	s.docsMu.Unlock()

	s.indexMu.Lock()
	s.index = make(map[string][]string)
	s.indexMu.Unlock()

	s.tfMu.Lock()
	s.tf = make(map[string]map[string]float64)
	s.tfMu.Unlock()

	s.lengthMu.Lock()
	s.lengths = make(map[string]int)
	s.lengthMu.Unlock()

	s.cardinality.Reset()
}
