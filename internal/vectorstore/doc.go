// Package vectorstore implements LunarDB's vector-similarity submodule: a
// keyed collection of float vectors supporting exact cosine search with
// per-vector TTL, and an LSH (SimHash) approximate index without TTL.
//
// # Overview
//
// This package provides two independent ways to search the same kind of
// data — named float vectors (only Database supports per-vector expiry):
//
//   - Database: an ordered, append-only collection searched by brute-force
//     exact cosine similarity. Correct by construction; cost is linear in
//     the number of stored vectors per search.
//   - LSHIndex: an approximate nearest-neighbor index built from several
//     hash tables that share one SimHash, so every table holds the same
//     buckets. Search is sublinear in practice (it only re-ranks the
//     candidates whose hash equals the query's) at the cost of being
//     approximate: a true nearest neighbor whose hash differs from the
//     query's is missed.
//
// Callers choose per use case: Database for small collections or where
// exactness matters, LSHIndex where approximate results over a larger
// collection are an acceptable trade for speed.
//
// # Architecture
//
//	┌────────────────────────────┐     ┌────────────────────────────┐
//	│          Database           │     │         LSHIndex            │
//	├────────────────────────────┤     ├────────────────────────────┤
//	│ []record (insertion order)  │     │ T × map[hash][]id  (buckets) │
//	│  {id, data, createdAt,      │     │ map[id][]float64  (primary) │
//	│   *expiresAt}                │     │ hashutil.SimHash             │
//	│                              │     │                              │
//	│ SearchSimilar: brute-force   │     │ Search: union buckets for    │
//	│  cosine over every record,   │     │  the query hash across all   │
//	│  stable sort, top-k          │     │  T tables, exact re-rank     │
//	└────────────────────────────┘     └────────────────────────────┘
//
// # Core Operations
//
// Database: Add (never deduplicates by id), Get (first match), Len,
// SetTTL, CleanupExpired, SearchSimilar (cosine similarity, descending,
// ties broken by insertion order).
//
// LSHIndex: Insert (writes to every table's bucket and to primary
// storage), Remove (recomputes the hash to purge every bucket), Search
// (union candidates, exact re-rank with a configurable Metric, return the
// k smallest distances), Size.
//
// Distance metrics (Metric interface): CosineDistance (1 - cosine
// similarity), EuclideanDistance, ManhattanDistance, DotProductSimilarity
// (negated, so smaller is always "more similar" across every metric in
// this package).
//
// # Concurrency and Thread Safety
//
// Both Database and LSHIndex guard their internal state with their own
// sync.Mutex; every exported method is safe for concurrent use. The two
// types do not share a lock with each other or with internal/keyspace —
// a vector database and the string keyspace are entirely independent
// stores that happen to be addressed through the same TCP server.
//
// # Error Handling
//
//   - ErrDimensionMismatch is returned whenever two vectors being compared
//     (or a query against a database's established dimension) have
//     different lengths.
//   - ErrInvalidOperation is returned for operations that are
//     mathematically undefined, such as cosine similarity or cosine
//     distance against a zero-norm vector.
//   - ErrIndexError is reserved for LSH index failures that are neither of
//     the above; no operation in this package currently returns it.
//
// # Performance Characteristics
//
// Database.SearchSimilar: O(n) cosine computations plus an O(n log n)
// stable sort, where n is the number of stored (including not-yet-swept
// expired) records.
//
// LSHIndex.Search: O(T) bucket lookups plus O(c log c) to rank the c
// union candidates, where c is typically much smaller than the total
// indexed vector count — the point of the index.
//
// LSHIndex.Insert/Remove: O(T), one hash computation in total plus one
// bucket mutation per table.
//
// # Limitations and Future Work
//
//   - LSHIndex has no mechanism to rebuild its tables with a different
//     bit width or table count after construction; changing either
//     requires building a new index and re-inserting.
//   - Neither type persists across restarts; vector data is entirely
//     in-memory, unlike the string keyspace's optional dump/restore.
//   - CleanupExpired and LSHIndex's bucket purge on Remove are both O(n)
//     in current size; there is no background sweep, so expired records
//     leave a Database only through an explicit CleanupExpired call.
//
// # See Also
//
// Related packages:
//   - internal/hashutil: supplies the SimHash primitive LSHIndex builds
//     its tables from.
//   - internal/protocol: wires the VCREATE/VADD/VGET/VSEARCH/VLEN/VTTL/
//     VCLEANUP command family onto a registry of named Database values.
package vectorstore
