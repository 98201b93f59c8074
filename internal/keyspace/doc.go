// Package keyspace implements LunarDB's core data model: a bounded,
// concurrent map from string keys to tagged values (scalar strings or
// ordered lists of strings) with per-key absolute expiry and
// LRU-governed eviction.
//
// # Overview
//
// Store is the single shared mutable store at the center of LunarDB: both
// the TCP command protocol (internal/protocol) and the scripting sandbox
// (internal/script) hold a reference to the same Store and issue commands
// against it concurrently. There is exactly one Store per running
// process; it is not sharded, replicated, or persisted automatically —
// persistence is an explicit operation layered on top by
// internal/persist.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────┐
//	│                      Store                        │
//	├──────────────────────────────────────────────────┤
//	│  one internal/lrucache.Cache[string, Entry]       │
//	│                                                    │
//	│   key ──► Entry{ Value, *int64 expiry }           │
//	│                     │                              │
//	│            ┌────────┴────────┐                    │
//	│            ▼                 ▼                    │
//	│       Scalar(text)     Sequence([]text)            │
//	└──────────────────────────────────────────────────┘
//	        ▲                              ▲
//	        │                              │
//	internal/protocol               internal/script
//	  (TCP commands)               (Lua db:* calls)
//
// # Core Operations
//
// String-space: Set, SetEX, Get, Del, MSet, MGet, Keys, Clear, Size,
// Cleanup.
//
// List-space: LPush, RPush, LPop, RPop, LRange, LLen — list commands
// issued against a key currently holding a scalar replace it with a
// fresh list rather than erroring (see list.go).
//
// Persistence hooks: Serialize/Deserialize round-trip the entire keyspace
// to/from a JSON document; internal/persist wraps that payload with an
// integrity header and a content-addressed filename.
//
// # Lazy and Active Expiry
//
// Every entry carries an optional absolute expiry (Unix seconds). Two
// mechanisms keep expired entries from being observed:
//
//   - Lazy expiry: every read path (Get, GetValue, LRange, LPop, ...)
//     funnels through getLive, which evicts an entry the instant it is
//     found to be past its expiry and reports a miss. A key nobody reads
//     again simply stays in the cache, stale, until capacity pressure or
//     an explicit sweep removes it.
//   - Active expiry: Cleanup walks every entry and evicts whichever are
//     past their expiry, returning the count removed. KEYS filters
//     expired entries out of its result as it scans; SIZE and CLEAR
//     operate on whatever the cache currently holds, including
//     not-yet-swept stale entries, so SIZE's count can include keys that
//     would report a miss if read.
//
// # Concurrency and Thread Safety
//
//   - All exported Store methods are safe to call from multiple
//     goroutines concurrently; the underlying lrucache.Cache supplies the
//     single mutex.
//   - Operations on the same key are serialized by that lock; ordering
//     across different keys is indeterminate.
//   - MSet is not atomic across keys: it issues one Set per pair, so a
//     concurrent reader may observe a partial write. This is a deliberate
//     trade for simplicity, not an oversight.
//
// # Error Handling
//
// There are no error returns anywhere in this package's read/write
// surface: absence (missing key, expired key, wrong-shape value) is
// reported via an ok bool, matching lrucache's convention, since a miss
// is an ordinary outcome for a keyspace lookup rather than a failure.
// Serialize/Deserialize return an error only for JSON encoding/decoding
// failures.
//
// # Performance Characteristics
//
// Every string- and list-space operation is O(1) amortized for the
// lrucache.Cache lookup/promotion itself; list operations additionally
// pay O(n) in the length of the list being pushed/popped/sliced, since
// lists are plain Go slices rather than a persistent deque. KEYS is O(n)
// in keyspace size (a full scan plus a regex match per key) and is not
// intended as a hot-path operation against a large keyspace.
//
// # Limitations and Future Work
//
//   - No cross-key transactions or atomic multi-key writes: MSET and
//     scripted multi-call sequences are each a sequence of independent
//     locked operations, not one critical section.
//   - KEYS pattern matching is a simple `*`/`?` → `.` substitution
//     compiled as an unanchored regular expression, not a full glob
//     engine; it has no character-class or escaping support.
//
// # See Also
//
// Related packages:
//   - internal/lrucache: the bounded map this package composes.
//   - internal/persist: wraps Serialize/Deserialize with an integrity
//     header and content-addressed filename for on-disk dumps.
//   - internal/protocol: the TCP command front end that is this
//     package's primary caller.
//   - internal/script: the scripting sandbox's db handle forwards every
//     method call directly to a Store.
package keyspace
