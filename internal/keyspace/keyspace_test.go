package keyspace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	s := New(10)
	s.Set("greeting", "hello")

	v, ok := s.Get("greeting")
	require.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestGetMissingKey(t *testing.T) {
	s := New(10)
	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestDelCountsOnlyPresentKeys(t *testing.T) {
	s := New(10)
	assert.Equal(t, 0, s.Del("none"))

	s.Set("x", "1")
	assert.Equal(t, 1, s.Del("x", "none"))
}

func TestSetEXLazyExpiry(t *testing.T) {
	s := New(10)
	s.SetEX("x", "v", 0) // expires immediately: expiry == now

	time.Sleep(5 * time.Millisecond)
	_, ok := s.Get("x")
	assert.False(t, ok, "expired key must not be returned")

	assert.NotContains(t, s.Keys(""), "x")
	assert.Equal(t, 0, s.Size())
}

func TestMSetMGet(t *testing.T) {
	s := New(10)
	s.MSet(map[string]string{"a": "1", "b": "2"})

	results := s.MGet([]string{"a", "b", "c"})
	require.Len(t, results, 3)
	assert.Equal(t, MGetResult{Value: "1", Found: true}, results[0])
	assert.Equal(t, MGetResult{Value: "2", Found: true}, results[1])
	assert.Equal(t, MGetResult{Value: "", Found: false}, results[2])
}

func TestKeysPattern(t *testing.T) {
	s := New(10)
	s.Set("foo", "1")
	s.Set("bar", "2")
	s.Set("baz", "3")

	assert.ElementsMatch(t, []string{"bar", "baz"}, s.Keys("ba?"))
}

func TestKeysInvalidPatternYieldsEmpty(t *testing.T) {
	s := New(10)
	s.Set("foo", "1")
	assert.Empty(t, s.Keys("[unterminated"))
}

func TestClearAndSize(t *testing.T) {
	s := New(10)
	s.Set("a", "1")
	s.Set("b", "2")
	assert.Equal(t, 2, s.Size())

	assert.Equal(t, 2, s.Clear())
	assert.Equal(t, 0, s.Size())
}

func TestCleanupRemovesExpiredOnly(t *testing.T) {
	s := New(10)
	s.Set("fresh", "1")
	s.SetEX("stale", "2", 0)
	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 1, s.Cleanup())
	assert.Equal(t, 1, s.Size())
}

func TestCapacityBound(t *testing.T) {
	s := New(3)
	for i := 0; i < 10; i++ {
		s.Set(string(rune('a'+i)), "v")
	}
	assert.LessOrEqual(t, s.Size(), 3)
}

func TestLPushOrdering(t *testing.T) {
	s := New(10)
	n := s.LPush("list", []string{"a", "b", "c"})
	assert.Equal(t, 3, n)

	got, ok := s.LRange("list", 0, -1)
	require.True(t, ok)
	assert.Equal(t, []string{"c", "b", "a"}, got)
}

func TestRPushOrdering(t *testing.T) {
	s := New(10)
	n := s.RPush("list", []string{"a", "b", "c"})
	assert.Equal(t, 3, n)

	got, ok := s.LRange("list", 0, -1)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestLPopRPop(t *testing.T) {
	s := New(10)
	s.RPush("list", []string{"a", "b", "c"})

	head, ok := s.LPop("list")
	require.True(t, ok)
	assert.Equal(t, "a", head)

	tail, ok := s.RPop("list")
	require.True(t, ok)
	assert.Equal(t, "c", tail)

	assert.Equal(t, 1, s.LLen("list"))
}

func TestPopOnEmptyOrMissingReturnsAbsent(t *testing.T) {
	s := New(10)
	_, ok := s.LPop("missing")
	assert.False(t, ok)

	s.RPush("list", []string{"only"})
	s.LPop("list")
	_, ok = s.LPop("list")
	assert.False(t, ok)
}

func TestLRangeSlicing(t *testing.T) {
	s := New(10)
	s.RPush("list", []string{"a", "b", "c", "d", "e"})

	got, ok := s.LRange("list", 1, 3)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c", "d"}, got)

	got, ok = s.LRange("list", -2, -1)
	require.True(t, ok)
	assert.Equal(t, []string{"d", "e"}, got)

	got, ok = s.LRange("list", 3, 1)
	require.True(t, ok)
	assert.Empty(t, got)

	got, ok = s.LRange("list", 10, 20)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestLLenOnNonListOrMissing(t *testing.T) {
	s := New(10)
	assert.Equal(t, 0, s.LLen("missing"))

	s.Set("scalar", "v")
	assert.Equal(t, 0, s.LLen("scalar"))
}

func TestListOnScalarKeyReplacesWithFreshList(t *testing.T) {
	s := New(10)
	s.Set("k", "scalar-value")

	n := s.LPush("k", []string{"x"})
	assert.Equal(t, 1, n)

	got, ok := s.LRange("k", 0, -1)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, got)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	s := New(10)
	s.Set("a", "1")
	s.RPush("list", []string{"x", "y"})
	s.SetEX("temp", "v", 3600)

	data, err := s.Serialize()
	require.NoError(t, err)

	s2 := New(10)
	require.NoError(t, s2.Deserialize(data))

	v, ok := s2.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	list, ok := s2.LRange("list", 0, -1)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, list)

	_, ok = s2.Get("temp")
	assert.True(t, ok)
}

func TestDeserializeDropsExpiredEntriesOnSubsequentRead(t *testing.T) {
	s := New(10)
	s.SetEX("stale", "v", 0)
	data, err := s.Serialize()
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	s2 := New(10)
	require.NoError(t, s2.Deserialize(data))
	_, ok := s2.Get("stale")
	assert.False(t, ok)
}
