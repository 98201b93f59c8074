package vectorstore

import (
	"sort"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/dreamware/lunardb/internal/hashutil"
)

// LSHIndex is an approximate nearest-neighbor index over float vectors,
// built from T hash tables keyed by one shared SimHash, so every table
// holds the same buckets. Inserts place an id into the
// bucket for its hash in every table; Search unions the candidate ids
// whose bucket matches the query's hash across all tables, then re-ranks
// candidates with an exact distance metric.
//
// Grounded on _examples/original_source/modules/lunarvector/src/index.rs's
// LSHIndex, built on internal/hashutil.SimHash rather than a private hash
// implementation.
type LSHIndex struct {
	mu      sync.Mutex
	hasher  *hashutil.SimHash
	tables  []map[uint64][]string
	vectors map[string][]float64
	metric  Metric
}

// NewLSHIndex constructs an LSHIndex for vectors of the given dimension,
// using tableCount hash tables that all share one bits-wide SimHash, ranking
// candidates by metric (typically CosineDistance{}).
func NewLSHIndex(dimension, tableCount, bits int, metric Metric) *LSHIndex {
	tables := make([]map[uint64][]string, tableCount)
	for i := range tables {
		tables[i] = make(map[uint64][]string)
	}
	return &LSHIndex{
		hasher:  hashutil.NewSimHash(dimension, bits),
		tables:  tables,
		vectors: make(map[string][]float64),
		metric:  metric,
	}
}

// Insert adds id/vector to every hash table's bucket and to primary
// storage, keeping both consistent.
func (idx *LSHIndex) Insert(id string, vector []float64) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	hash, err := idx.hasher.Hash(vector)
	if err != nil {
		return err
	}
	if old, ok := idx.vectors[id]; ok {
		if oldHash, err := idx.hasher.Hash(old); err == nil {
			for _, table := range idx.tables {
				kept := table[oldHash][:0]
				for _, candidate := range table[oldHash] {
					if candidate != id {
						kept = append(kept, candidate)
					}
				}
				table[oldHash] = kept
			}
		}
	}
	for _, table := range idx.tables {
		table[hash] = append(table[hash], id)
	}
	idx.vectors[id] = vector
	return nil
}

// Remove recomputes the hash of the stored vector for id and purges id
// from every bucket plus primary storage. It is a no-op if id is unknown.
func (idx *LSHIndex) Remove(id string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	vector, ok := idx.vectors[id]
	if !ok {
		return nil
	}
	hash, err := idx.hasher.Hash(vector)
	if err != nil {
		return err
	}
	for _, table := range idx.tables {
		bucket := table[hash]
		for i, candidate := range bucket {
			if candidate == id {
				table[hash] = append(bucket[:i], bucket[i+1:]...)
				break
			}
		}
	}
	delete(idx.vectors, id)
	return nil
}

// Size returns the number of distinct ids currently indexed.
func (idx *LSHIndex) Size() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.vectors)
}

// Search computes the query's SimHash, unions candidate ids from every
// table's matching bucket, computes an exact distance for each candidate
// with the index's metric, and returns the k smallest distances.
func (idx *LSHIndex) Search(query []float64, k int) ([]Match, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	queryHash, err := idx.hasher.Hash(query)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	candidates := make([]string, 0)
	for _, table := range idx.tables {
		for _, id := range table[queryHash] {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				candidates = append(candidates, id)
			}
		}
	}
	slices.Sort(candidates) // deterministic before the stable distance sort below

	results := make([]Match, 0, len(candidates))
	for _, id := range candidates {
		vector := idx.vectors[id]
		distance, err := idx.metric.Distance(query, vector)
		if err != nil {
			return nil, err
		}
		results = append(results, Match{ID: id, Score: distance})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	if k >= 0 && k < len(results) {
		results = results[:k]
	}
	return results, nil
}
