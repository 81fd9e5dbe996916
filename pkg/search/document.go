package search

// Document is the unit the engine indexes and returns. Metadata keys
// are unique, string-valued, and order-independent.
type Document struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp uint64            `json:"timestamp"`
}

// clone returns a deep-enough copy of the document: a fresh metadata
// map, so callers and the stored copy never alias each other's writes.
func (d *Document) clone() *Document {
	cp := *d
	if d.Metadata != nil {
		cp.Metadata = make(map[string]string, len(d.Metadata))
		for k, v := range d.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}
