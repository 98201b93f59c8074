package keyspace

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/dreamware/lunardb/internal/lrucache"
)

// DefaultCapacity is the key count at which Store begins evicting by LRU
// when a novel key would otherwise grow it further.
const DefaultCapacity = 10000

// Store is a bounded, concurrent keyspace: string keys mapped to tagged
// Values with optional expiry, backed by one lrucache.Cache. The zero
// value is not usable; construct one with New.
//
// Invariants:
//   - Every point read path (Get, GetValue, and the list reads) funnels
//     through getLive, so an expired entry is never returned as live once
//     its expiry passes. Keys and Cleanup scan every entry directly and
//     check expiry themselves; Size counts entries without checking it.
//   - Capacity is enforced by the underlying lrucache.Cache: inserting a
//     novel key past DefaultCapacity (or a caller-chosen capacity) evicts
//     the least-recently-used key first.
//   - MSet is not atomic across keys; concurrent readers may observe a
//     partial write while it is in progress.
//
// Thread-safety: every exported method is safe for concurrent use; all of
// them forward to the underlying lrucache.Cache, which holds its own
// mutex for the duration of each call.
type Store struct {
	cache *lrucache.Cache[string, Entry]
}

// New constructs a Store bounded to capacity keys. A non-positive capacity
// is treated as unbounded, matching lrucache.Cache.
func New(capacity int) *Store {
	return &Store{cache: lrucache.New[string, Entry](capacity)}
}

func nowUnix() int64 { return time.Now().Unix() }

// getLive looks up key and, if it is present but expired, evicts it and
// reports absence. This is the single lazy-expiry checkpoint every read
// path in this package funnels through.
func (s *Store) getLive(key string) (Entry, bool) {
	entry, ok := s.cache.Get(key)
	if !ok {
		return Entry{}, false
	}
	if entry.expired(nowUnix()) {
		s.cache.Remove(key)
		return Entry{}, false
	}
	return entry, true
}

// Set stores value as a scalar at key with no expiry.
//
// Behavior: overwrites whatever was previously at key (scalar, sequence,
// or nothing) and clears any expiry the key may have carried.
//
// Thread-safety: safe for concurrent use.
//
// Performance: O(1), amortized for any capacity-driven eviction.
//
// Parameters:
//   - key: the key to write.
//   - value: the scalar value to store.
//
// Returns: nothing.
func (s *Store) Set(key, value string) {
	s.cache.Put(key, Entry{Value: NewScalar(value)})
}

// SetEX stores value as a scalar at key, expiring seconds from now.
//
// Behavior: identical to Set, except the entry also carries an absolute
// expiry of time.Now().Unix()+seconds. A seconds value of zero or less
// produces an entry that is already expired, so the very next read
// observes it as absent.
//
// Thread-safety: safe for concurrent use.
//
// Performance: O(1), amortized for any capacity-driven eviction.
//
// Parameters:
//   - key: the key to write.
//   - value: the scalar value to store.
//   - seconds: seconds from now at which the entry expires.
//
// Returns: nothing.
func (s *Store) SetEX(key, value string, seconds int64) {
	expiry := nowUnix() + seconds
	s.cache.Put(key, Entry{Value: NewScalar(value), Expiry: &expiry})
}

// Get returns the scalar stored at key.
//
// Behavior: returns ("", false) if key is absent, expired, or holds a
// sequence rather than a scalar — Get never partially decodes a
// sequence's elements.
//
// Thread-safety: safe for concurrent use.
//
// Performance: O(1).
//
// Parameters:
//   - key: the key to read.
//
// Returns:
//   - string: the stored scalar, or "" if not found.
//   - bool: true only if key held a live scalar.
func (s *Store) Get(key string) (string, bool) {
	entry, ok := s.getLive(key)
	if !ok || entry.Value.Kind != KindScalar {
		return "", false
	}
	return entry.Value.Scalar, true
}

// GetValue returns the raw Value stored at key regardless of its Kind. It
// returns (Value{}, false) if key is absent or expired. Unlike Get, it does
// not reject sequences; it exists for callers such as the scripting
// sandbox that must forward either shape to a caller of their own.
func (s *Store) GetValue(key string) (Value, bool) {
	entry, ok := s.getLive(key)
	if !ok {
		return Value{}, false
	}
	return entry.Value, true
}

// SetList stores items as a sequence at key with no expiry, replacing
// whatever was there before (scalar, sequence, or nothing).
func (s *Store) SetList(key string, items []string) {
	s.cache.Put(key, Entry{Value: NewSequence(items)})
}

// Del removes each of keys if present.
//
// Behavior: a key already expired but not yet lazily swept still counts
// as present and is removed; Del does not consult expiry before deleting.
//
// Thread-safety: safe for concurrent use.
//
// Performance: O(len(keys)).
//
// Parameters:
//   - keys: zero or more keys to remove.
//
// Returns: the number of keys that were actually present and removed.
func (s *Store) Del(keys ...string) int {
	count := 0
	for _, key := range keys {
		if _, ok := s.cache.Remove(key); ok {
			count++
		}
	}
	return count
}

// MSet stores every key/value pair as a scalar with no expiry. It is not
// atomic across keys: concurrent readers may observe a partial write.
func (s *Store) MSet(kv map[string]string) {
	for key, value := range kv {
		s.Set(key, value)
	}
}

// MGetResult is one slot of an MGet response: Found is false when the
// corresponding key was absent, expired, or not a scalar.
type MGetResult struct {
	Value string
	Found bool
}

// MGet looks up each of keys and returns one MGetResult per key, in the
// same order as keys.
func (s *Store) MGet(keys []string) []MGetResult {
	results := make([]MGetResult, len(keys))
	for i, key := range keys {
		value, ok := s.Get(key)
		results[i] = MGetResult{Value: value, Found: ok}
	}
	return results
}

// Keys returns every non-expired key, optionally filtered by pattern. A
// pattern is a glob where '*' and '?' are each a one-character match-any:
// they are replaced with the regex metacharacter '.' before compiling. An
// empty pattern matches every key; an invalid pattern yields an empty
// slice rather than an error, matching the reference implementation.
// Results are sorted for a deterministic wire response.
func (s *Store) Keys(pattern string) []string {
	var re *regexp.Regexp
	if pattern != "" {
		translated := strings.NewReplacer("*", ".", "?", ".").Replace(pattern)
		compiled, err := regexp.Compile(translated)
		if err != nil {
			return []string{}
		}
		re = compiled
	}

	now := nowUnix()
	result := make([]string, 0)
	for key, entry := range s.cache.All() {
		if entry.expired(now) {
			continue
		}
		if re == nil || re.MatchString(key) {
			result = append(result, key)
		}
	}
	slices.Sort(result)
	return result
}

// Clear removes every key and returns the number of keys that were
// present beforehand.
func (s *Store) Clear() int {
	n := s.cache.Len()
	s.cache.Clear()
	return n
}

// Size returns the current number of keys, including any not yet lazily
// expired.
func (s *Store) Size() int {
	return s.cache.Len()
}

// Cleanup actively sweeps every entry, removing those whose expiry has
// elapsed, and returns the count removed.
func (s *Store) Cleanup() int {
	now := nowUnix()
	stale := make([]string, 0)
	for key, entry := range s.cache.All() {
		if entry.expired(now) {
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		s.cache.Remove(key)
	}
	return len(stale)
}
