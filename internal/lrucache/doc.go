// Package lrucache implements a generic, capacity-bounded, recency-ordered
// map: the single building block the rest of LunarDB composes on top of.
// The keyspace engine stores every key's entry here; the vector store does
// not use it (see See Also below).
//
// # Overview
//
// A Cache is a bounded associative container with least-recently-used
// eviction: once it holds capacity keys, inserting a novel key evicts the
// key that has gone the longest without being read or written. Every
// lookup that hits promotes its key to most-recently-used, so the
// eviction order reflects actual access patterns rather than insertion
// order alone.
//
// # Architecture
//
// Two data structures back every Cache, kept in lockstep:
//
//	┌─────────────────────────────────────────────┐
//	│                   Cache[K, V]                │
//	├───────────────────────┬───────────────────────┤
//	│   items map[K]*Element │   order *list.List    │
//	│   (O(1) key lookup)    │   (recency ordering)   │
//	└───────────────────────┴───────────────────────┘
//	                              │
//	          front (MRU) ◄───────┼───────► back (LRU)
//	          [ k3 ]  [ k1 ]  [ k2 ]  ...  [ k7 ]
//	                                          │
//	                                   evicted first
//
//  1. A hash map (map[K]*list.Element) for O(1) lookup from key to the
//     linked-list node holding its value.
//  2. A doubly linked list (container/list.List) that orders keys by
//     recency: most-recently-used at the front, least-recently-used at
//     the back. Eviction always removes from the back.
//
// # Core Operations
//
// Put: insert or overwrite a key, promoting it to most-recently-used.
//   - New key at capacity: evicts the back of the list first.
//   - Existing key: value replaced in place, moved to the front.
//
// Get: look up a key.
//   - Hit: promotes to most-recently-used, updates its last-access
//     timestamp, increments the hit counter.
//   - Miss: increments the miss counter, no structural change.
//
// Remove / Contains: point operations that never touch recency order or
// the hit/miss counters, for callers (lazy expiry, explicit deletes) that
// need to drop or probe a key without it looking like a cache hit.
//
// # Concurrency and Thread Safety
//
//   - A single sync.Mutex guards both the map and the list. This matches
//     the coarse-locking design the embedding keyspace engine wants: one
//     lock, one critical section per command, rather than fine-grained
//     per-bucket locking.
//   - All exported methods are safe for concurrent use from multiple
//     goroutines.
//   - All holds the lock for the duration of the caller's iteration; the
//     callback must not call back into the same Cache or it will deadlock.
//
// # Performance Characteristics
//
// Put: O(1) amortized — one map lookup/insert, one list splice.
// Get: O(1) — one map lookup, one list move-to-front.
// Remove / Contains: O(1) — one map lookup (plus, for Remove, one list
// unlink).
// All: O(n) — a full traversal of the recency list.
//
// Memory overhead is one *list.Element (key, value, last-access time) per
// entry plus one map slot; there is no secondary index to keep in sync
// beyond the map-to-element pointer.
//
// # Error Handling
//
// Cache has no error return anywhere in its surface: a miss is reported
// via the ok bool on Get/Remove/Contains/LastAccess, never as an error
// value, since an absent key is an entirely ordinary outcome for a cache,
// not a failure.
//
// # Limitations and Future Work
//
//   - Eviction always removes exactly one key per overflowing Put; there
//     is no batch eviction or watermark-based pre-eviction.
//   - There is no segmented or sharded variant; under heavy concurrent
//     write load from many goroutines the single mutex is the serialization
//     point. Splitting into multiple independently-locked shards keyed by a
//     hash of K is a reasonable extension if that becomes a bottleneck, but
//     is out of scope here.
//   - Stats is a plain snapshot, not a running rate; callers wanting a
//     windowed hit rate would need to sample Stats() periodically
//     themselves.
//
// # See Also
//
// Related packages:
//   - internal/keyspace: composes one Cache[string, Entry] as its sole
//     storage, adding TTL semantics and the string/list command surface.
//   - internal/vectorstore: uses the same recency-bounded-map shape
//     conceptually for its TTL bookkeeping, though it is implemented
//     directly over a slice rather than reusing Cache, since vector
//     records need ordered insertion for search tie-breaking rather than
//     LRU eviction.
package lrucache
