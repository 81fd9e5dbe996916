package search

import "testing"

func TestAddDocument_AssignsIDWhenEmpty(t *testing.T) {
	e := New()
	id, err := e.AddDocument(Document{Title: "Untitled", Content: "some body text"})
	if err != nil {
		t.Fatalf("AddDocument returned error: %v", err)
	}
	if id == "" {
		t.Fatal("AddDocument did not assign an id")
	}
	if len(id) != 36 {
		t.Fatalf("assigned id %q does not look like a canonical UUID", id)
	}
}

func TestAddDocument_IncrementsCardinality(t *testing.T) {
	e := New()
	if got := e.GetStats().TotalDocuments; got != 0 {
		t.Fatalf("fresh engine TotalDocuments = %d, want 0", got)
	}
	if _, err := e.AddDocument(Document{ID: "1", Title: "a", Content: "b"}); err != nil {
		t.Fatal(err)
	}
	if got := e.GetStats().TotalDocuments; got != 1 {
		t.Fatalf("TotalDocuments after one add = %d, want 1", got)
	}
}

func TestAddDocument_UpdateByIDDoesNotDoubleCount(t *testing.T) {
	e := New()
	if _, err := e.AddDocument(Document{ID: "1", Title: "first", Content: "version one"}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddDocument(Document{ID: "1", Title: "second", Content: "version two"}); err != nil {
		t.Fatal(err)
	}
	if got := e.GetStats().TotalDocuments; got != 1 {
		t.Fatalf("TotalDocuments after update = %d, want 1", got)
	}

	doc, ok := e.store.getDocument("1")
	if !ok {
		t.Fatal("document 1 not found after update")
	}
	if doc.Title != "second" {
		t.Fatalf("Title = %q, want %q (update should replace)", doc.Title, "second")
	}
}

func TestAddDocument_IdempotentOnIdenticalInput(t *testing.T) {
	e1 := New()
	e2 := New()
	doc := Document{ID: "1", Title: "Rust Programming", Content: "Rust is a systems language"}

	e1.AddDocument(doc)

	e2.AddDocument(doc)
	e2.AddDocument(doc)

	r1, _ := e1.Search(SearchQuery{Query: "rust"})
	r2, _ := e2.Search(SearchQuery{Query: "rust"})

	if r1.TotalHits != r2.TotalHits {
		t.Fatalf("TotalHits differ after repeat add: %d vs %d", r1.TotalHits, r2.TotalHits)
	}
	if len(r1.Results) != 1 || len(r2.Results) != 1 {
		t.Fatalf("expected exactly one result in both engines")
	}
	if r1.Results[0].Score != r2.Results[0].Score {
		t.Fatalf("scores differ after repeat add: %v vs %v", r1.Results[0].Score, r2.Results[0].Score)
	}
}

func TestRemoveDocument_MissingIDSucceeds(t *testing.T) {
	e := New()
	if err := e.RemoveDocument("does-not-exist"); err != nil {
		t.Fatalf("RemoveDocument on missing id returned error: %v", err)
	}
}

func TestRemoveDocument_RestoresEmptyState(t *testing.T) {
	empty := New()

	e := New()
	e.AddDocument(Document{ID: "1", Title: "Rust Programming", Content: "systems language"})
	e.RemoveDocument("1")

	if got := e.GetStats().TotalDocuments; got != empty.GetStats().TotalDocuments {
		t.Fatalf("TotalDocuments after add+remove = %d, want %d", got, empty.GetStats().TotalDocuments)
	}
	if len(e.store.vocabulary()) != 0 {
		t.Fatalf("vocabulary not empty after add+remove: %v", e.store.vocabulary())
	}

	r, _ := e.Search(SearchQuery{Query: "rust"})
	if r.TotalHits != 0 {
		t.Fatalf("TotalHits after add+remove = %d, want 0", r.TotalHits)
	}
}

func TestRemoveDocument_NoDanglingPostings(t *testing.T) {
	e := New()
	e.AddDocument(Document{ID: "1", Title: "fox", Content: "quick brown fox jumps"})
	e.AddDocument(Document{ID: "2", Title: "fox", Content: "another fox sighting"})

	e.RemoveDocument("1")

	for _, tok := range e.store.vocabulary() {
		for _, id := range e.store.postings(tok) {
			if id == "1" {
				t.Fatalf("dangling posting for removed document 1 under token %q", tok)
			}
		}
	}
}

func TestCardinalityDoesNotUnderflow(t *testing.T) {
	e := New()
	e.RemoveDocument("never-existed")
	e.RemoveDocument("never-existed-2")
	if got := e.GetStats().TotalDocuments; got != 0 {
		t.Fatalf("TotalDocuments = %d, want 0 (saturating at zero)", got)
	}
}

func TestClearIndex(t *testing.T) {
	e := New()
	e.AddDocument(Document{ID: "1", Title: "a", Content: "one two three"})
	e.AddDocument(Document{ID: "2", Title: "b", Content: "four five six"})

	if err := e.ClearIndex(); err != nil {
		t.Fatalf("ClearIndex returned error: %v", err)
	}

	if got := e.GetStats().TotalDocuments; got != 0 {
		t.Fatalf("TotalDocuments after ClearIndex = %d, want 0", got)
	}
	if len(e.store.vocabulary()) != 0 {
		t.Fatalf("vocabulary after ClearIndex: %v, want empty", e.store.vocabulary())
	}
}

func TestBulkImport_CountsSuccesses(t *testing.T) {
	e := New()
	docs := []Document{
		{ID: "1", Title: "one", Content: "first document body"},
		{ID: "2", Title: "two", Content: "second document body"},
		{ID: "3", Title: "three", Content: "third document body"},
	}
	n, err := e.BulkImport(docs)
	if err != nil {
		t.Fatalf("BulkImport returned error: %v", err)
	}
	if n != 3 {
		t.Fatalf("BulkImport success count = %d, want 3", n)
	}
	if got := e.GetStats().TotalDocuments; got != 3 {
		t.Fatalf("TotalDocuments after bulk import = %d, want 3", got)
	}
}

func TestAddDocument_ZeroTokenDocumentIndexes(t *testing.T) {
	e := New()
	if _, err := e.AddDocument(Document{ID: "1", Title: "", Content: ""}); err != nil {
		t.Fatal(err)
	}
	if got := e.GetStats().TotalDocuments; got != 1 {
		t.Fatalf("TotalDocuments = %d, want 1 even for a zero-token document", got)
	}
}
