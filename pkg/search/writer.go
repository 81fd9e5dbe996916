package search

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/arjunrao/lumensearch/pkg/text"
)

// AddDocument inserts doc, or replaces it if a document with the same
// id is already indexed. An empty doc.ID is assigned a freshly
// generated UUID, written back into the returned id. The document
// table is locked, written, and released before the index tables are
// touched (the narrowed critical section allowed by §5): a concurrent
// reader can briefly observe the document present with a stale or
// absent posting list.
func (e *Engine) AddDocument(doc Document) (string, error) {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	combined := doc.Title + " " + doc.Content
	tokens := text.Tokenize(combined)

	isNew := e.store.upsertDocument(&doc)
	if isNew {
		e.store.cardinality.Inc()
	}

	// index-purge: drop any existing postings/tf row for this id. Safe
	// no-op for a brand-new id.
	e.store.purge(doc.ID)

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	if len(tokens) > 0 {
		e.store.indexTokens(doc.ID, tokens, counts)
	} else {
		// Zero tokens: there is nothing to append to posting lists, but
		// doc_length and an empty tf row must still exist for the id.
		e.store.tfMu.Lock()
		e.store.tf[doc.ID] = map[string]float64{}
		e.store.tfMu.Unlock()
		e.store.lengthMu.Lock()
		e.store.lengths[doc.ID] = 0
		e.store.lengthMu.Unlock()
	}

	return doc.ID, nil
}

// RemoveDocument deletes id from the engine if present. Returns success
// whether or not the id was present, per §4.D.
func (e *Engine) RemoveDocument(id string) error {
	existed := e.store.deleteDocument(id)
	if existed {
		e.store.cardinality.DecSaturating()
	}
	e.store.purge(id)
	e.store.deleteLength(id)
	return nil
}

// ClearIndex resets the engine to empty.
func (e *Engine) ClearIndex() error {
	e.store.clear()
	return nil
}

// BulkImport applies AddDocument to every element of docs. It never
// aborts on an individual failure: a failure is logged to the
// diagnostic sink (see engine.go's logger) and tallied as a miss, while
// the batch continues. Returns the number of documents successfully
// added.
func (e *Engine) BulkImport(docs []Document) (int, error) {
	successes := 0
	for i, doc := range docs {
		if _, err := e.AddDocument(doc); err != nil {
			e.logger.Warn("bulk_import: failed to add document",
				slog.String("id", doc.ID),
				slog.Int("index", i),
				slog.Any("error", err),
			)
			continue
		}
		successes++
	}
	return successes, nil
}
