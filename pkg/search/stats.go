package search

import "time"

// IndexStats is a point-in-time snapshot of corpus cardinality and
// engine identity. index_size_mb is a deliberately coarse placeholder,
// not a real measurement (see §9).
type IndexStats struct {
	TotalDocuments int
	IndexSizeMB    float64
	LastUpdated    int64
	Version        string
}

// GetStats returns the current stats snapshot.
func (e *Engine) GetStats() IndexStats {
	total := int(e.store.cardinalityValue())
	return IndexStats{
		TotalDocuments: total,
		IndexSizeMB:    float64(total) / 1024.0,
		LastUpdated:    time.Now().Unix(),
		Version:        Version,
	}
}
