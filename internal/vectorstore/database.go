package vectorstore

import (
	"sort"
	"sync"
	"time"
)

// record is one stored vector: its id, data, insertion time, and an
// optional absolute expiry. Multiple records may share an id; Add never
// deduplicates.
type record struct {
	id        string
	data      []float64
	createdAt time.Time
	expiresAt *time.Time
}

func (r record) expired(now time.Time) bool {
	return r.expiresAt != nil && now.After(*r.expiresAt)
}

// Match is one scored result from SearchSimilar: an id and its cosine
// similarity to the query (1.0 = identical direction, -1.0 = opposite).
type Match struct {
	ID    string
	Score float64
}

// Database is an ordered, append-only (until cleanup) collection of named
// float vectors with optional per-vector TTL. It is the exact-search
// counterpart to LSHIndex; both can be built over the same id space.
type Database struct {
	mu      sync.Mutex
	records []record
}

// NewDatabase constructs an empty Database.
func NewDatabase() *Database {
	return &Database{}
}

// Add appends a new vector entry under id. It does not deduplicate: two
// Adds with the same id produce two records, and Get returns the first.
func (d *Database) Add(id string, data []float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, record{id: id, data: data, createdAt: time.Now()})
}

// Get returns the first non-expired record matching id.
func (d *Database) Get(id string) ([]float64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	for _, r := range d.records {
		if r.id == id && !r.expired(now) {
			return r.data, true
		}
	}
	return nil, false
}

// Len returns the total record count, including expired entries not yet
// swept by CleanupExpired.
func (d *Database) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.records)
}

// SetTTL sets an expiry ttl from now on the first record matching id. It
// reports whether a matching record was found.
func (d *Database) SetTTL(id string, ttl time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.records {
		if d.records[i].id == id {
			expiry := time.Now().Add(ttl)
			d.records[i].expiresAt = &expiry
			return true
		}
	}
	return false
}

// CleanupExpired drops every expired record and returns the count
// removed.
func (d *Database) CleanupExpired() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	kept := d.records[:0]
	removed := 0
	for _, r := range d.records {
		if r.expired(now) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	d.records = kept
	return removed
}

// SearchSimilar computes cosine similarity of query against every stored
// (non-expired) vector, sorts descending by similarity, and returns the
// top limit matches. Ties break by insertion order: records added earlier
// sort first among equal scores.
func (d *Database) SearchSimilar(query []float64, limit int) ([]Match, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	matches := make([]Match, 0, len(d.records))
	for _, r := range d.records {
		if r.expired(now) {
			continue
		}
		score, err := cosineSimilarity(query, r.data)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{ID: r.id, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit >= 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}
