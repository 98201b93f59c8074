package script

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dreamware/lunardb/internal/hashutil"
	"github.com/dreamware/lunardb/internal/keyspace"
)

// Default resource ceilings, matching the original sandbox's defaults of a
// five-second wall clock and ten megabytes of working memory.
const (
	DefaultWallTime = 5 * time.Second
	DefaultMaxBytes = 10 * 1024 * 1024
)

// ErrScriptNotFound is returned by EvalSHA when sha is not in the cache.
var ErrScriptNotFound = errors.New("script: not found in cache")

// ErrTimeExceeded is returned (unwrapped) when a script's wall clock budget
// elapses before it returns.
var ErrTimeExceeded = errors.New("script: execution time exceeded")

// Sandbox evaluates Lua scripts against a bound keyspace.Store. Each Eval
// builds a fresh interpreter scoped to one call: globals are never shared
// across scripts, so one script cannot leave state for the next.
//
// Invariants:
//   - Every Eval call gets its own *lua.LState; no interpreter is ever
//     reused or shared across calls.
//   - A script's only path to the keyspace is the bound db table; it has
//     no access to dofile, loadfile, load, os, io, package, or require.
//   - Script-level atomicity is explicitly not provided: each db.* call
//     acquires and releases the keyspace lock independently, so two
//     concurrent Eval calls can interleave at the granularity of
//     individual db calls.
//
// Thread-safety: every exported method is safe for concurrent use; the
// script cache is guarded by its own mutex, independent of the keyspace
// lock.
type Sandbox struct {
	store    *keyspace.Store
	wallTime time.Duration
	maxBytes int

	mu    sync.Mutex
	cache map[string]string
}

// NewSandbox constructs a Sandbox over store using the default resource
// ceilings.
func NewSandbox(store *keyspace.Store) *Sandbox {
	return &Sandbox{
		store:    store,
		wallTime: DefaultWallTime,
		maxBytes: DefaultMaxBytes,
		cache:    make(map[string]string),
	}
}

// WithLimits sets the wall-clock and memory ceilings applied to every
// subsequent Eval/EvalSHA call.
func (sb *Sandbox) WithLimits(wallTime time.Duration, maxBytes int) *Sandbox {
	sb.wallTime = wallTime
	sb.maxBytes = maxBytes
	return sb
}

// newRestrictedState builds an interpreter with only the table, string, and
// math standard libraries open, then neutralizes the escape hatches a
// sandboxed script must not reach: dofile, loadfile, load, require, os, io,
// and package.
//
// gopher-lua has no allocator-level memory hook the way mlua's
// set_memory_limit does, so maxBytes is applied as a registry-size cap
// instead (see DESIGN.md): it bounds how many Lua values the VM's value
// stack can hold, the nearest control gopher-lua actually exposes.
func (sb *Sandbox) newRestrictedState() *lua.LState {
	registryMax := sb.maxBytes / 64
	if registryMax < 256 {
		registryMax = 256
	}
	L := lua.NewState(lua.Options{
		SkipOpenLibs:    true,
		RegistryMaxSize: registryMax,
	})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "require", "os", "io", "package"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func (sb *Sandbox) bindDB(L *lua.LState) {
	db := L.NewTable()
	L.SetField(db, "get", L.NewFunction(sb.luaGet))
	L.SetField(db, "set", L.NewFunction(sb.luaSet))
	L.SetField(db, "setex", L.NewFunction(sb.luaSetex))
	L.SetField(db, "del", L.NewFunction(sb.luaDel))
	L.SetField(db, "lpush", L.NewFunction(sb.luaLpush))
	L.SetField(db, "rpush", L.NewFunction(sb.luaRpush))
	L.SetField(db, "lpop", L.NewFunction(sb.luaLpop))
	L.SetField(db, "rpop", L.NewFunction(sb.luaRpop))
	L.SetField(db, "lrange", L.NewFunction(sb.luaLrange))
	L.SetField(db, "llen", L.NewFunction(sb.luaLlen))
	L.SetField(db, "keys", L.NewFunction(sb.luaKeys))
	L.SetField(db, "size", L.NewFunction(sb.luaSize))
	L.SetGlobal("db", db)
}

func stringTable(L *lua.LState, items []string) *lua.LTable {
	t := L.NewTable()
	for i, item := range items {
		t.RawSetInt(i+1, lua.LString(item))
	}
	return t
}

func tableToStrings(t *lua.LTable) []string {
	items := make([]string, 0, t.Len())
	t.ForEach(func(_, v lua.LValue) {
		items = append(items, v.String())
	})
	return items
}

func (sb *Sandbox) luaGet(L *lua.LState) int {
	key := L.CheckString(2)
	value, ok := sb.store.GetValue(key)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	if value.Kind == keyspace.KindSequence {
		L.Push(stringTable(L, value.Sequence))
		return 1
	}
	L.Push(lua.LString(value.Scalar))
	return 1
}

func (sb *Sandbox) luaSet(L *lua.LState) int {
	key := L.CheckString(2)
	value := L.Get(3)
	switch v := value.(type) {
	case lua.LString:
		sb.store.Set(key, string(v))
		L.Push(lua.LTrue)
	case *lua.LTable:
		sb.store.SetList(key, tableToStrings(v))
		L.Push(lua.LTrue)
	default:
		L.Push(lua.LFalse)
	}
	return 1
}

func (sb *Sandbox) luaSetex(L *lua.LState) int {
	key := L.CheckString(2)
	seconds := L.CheckInt64(3)
	value := L.CheckString(4)
	sb.store.SetEX(key, value, seconds)
	L.Push(lua.LTrue)
	return 1
}

func (sb *Sandbox) luaDel(L *lua.LState) int {
	keys := tableToStrings(L.CheckTable(2))
	count := sb.store.Del(keys...)
	L.Push(lua.LNumber(count))
	return 1
}

func (sb *Sandbox) luaLpush(L *lua.LState) int {
	key := L.CheckString(2)
	values := tableToStrings(L.CheckTable(3))
	count := sb.store.LPush(key, values)
	L.Push(lua.LNumber(count))
	return 1
}

func (sb *Sandbox) luaRpush(L *lua.LState) int {
	key := L.CheckString(2)
	values := tableToStrings(L.CheckTable(3))
	count := sb.store.RPush(key, values)
	L.Push(lua.LNumber(count))
	return 1
}

func (sb *Sandbox) luaLpop(L *lua.LState) int {
	key := L.CheckString(2)
	value, ok := sb.store.LPop(key)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(value))
	return 1
}

func (sb *Sandbox) luaRpop(L *lua.LState) int {
	key := L.CheckString(2)
	value, ok := sb.store.RPop(key)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(value))
	return 1
}

func (sb *Sandbox) luaLrange(L *lua.LState) int {
	key := L.CheckString(2)
	start := int(L.CheckInt64(3))
	stop := int(L.CheckInt64(4))
	values, ok := sb.store.LRange(key, start, stop)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(stringTable(L, values))
	return 1
}

func (sb *Sandbox) luaLlen(L *lua.LState) int {
	key := L.CheckString(2)
	L.Push(lua.LNumber(sb.store.LLen(key)))
	return 1
}

func (sb *Sandbox) luaKeys(L *lua.LState) int {
	pattern := L.OptString(2, "")
	L.Push(stringTable(L, sb.store.Keys(pattern)))
	return 1
}

func (sb *Sandbox) luaSize(L *lua.LState) int {
	L.Push(lua.LNumber(sb.store.Size()))
	return 1
}

// Eval runs script against this Sandbox's bound keyspace.Store.
//
// Behavior:
//   - Builds a fresh interpreter with db/KEYS/ARGV bound as described in
//     the package doc; KEYS and ARGV are 1-indexed Lua tables built from
//     keys and args respectively.
//   - The script's single return value, if any, is re-encoded to a
//     string via luaValueToString.
//   - A script that runs past the Sandbox's configured wall-clock ceiling
//     is interrupted and reported as ErrTimeExceeded.
//
// Thread-safety: safe for concurrent use; concurrent Eval calls share no
// interpreter state, only the underlying keyspace.Store.
//
// Performance: dominated by constructing a fresh *lua.LState per call,
// plus one Lua/Go call-boundary crossing per db.* call the script makes.
//
// Parameters:
//   - script: Lua source text to parse and run.
//   - keys: bound as the 1-indexed global table KEYS.
//   - args: bound as the 1-indexed global table ARGV.
//
// Returns:
//   - string: the script's single return value, re-encoded as a string.
//   - error: a parse error, a runtime error, or ErrTimeExceeded.
func (sb *Sandbox) Eval(script string, keys, args []string) (string, error) {
	L := sb.newRestrictedState()
	defer L.Close()

	sb.bindDB(L)
	L.SetGlobal("KEYS", stringTable(L, keys))
	L.SetGlobal("ARGV", stringTable(L, args))

	ctx, cancel := context.WithTimeout(context.Background(), sb.wallTime)
	defer cancel()
	L.SetContext(ctx)

	fn, err := L.LoadString(script)
	if err != nil {
		return "", fmt.Errorf("script: parse error: %w", err)
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrTimeExceeded
		}
		return "", fmt.Errorf("script: execution error: %w", err)
	}

	result := L.Get(-1)
	L.Pop(1)
	return luaValueToString(result)
}

// EvalSHA runs the script previously cached under sha by ScriptLoad.
//
// Behavior: looks up sha in the script cache and, if found, calls Eval on
// its cached text with the same semantics as a direct Eval call.
//
// Thread-safety: safe for concurrent use; the cache lookup is a brief
// locked section separate from the Eval call it feeds.
//
// Performance: O(1) cache lookup plus the cost of Eval.
//
// Parameters:
//   - sha: the hex-encoded SHA-256 digest returned by a prior ScriptLoad.
//   - keys: bound as the 1-indexed global table KEYS.
//   - args: bound as the 1-indexed global table ARGV.
//
// Returns:
//   - string: the script's single return value, re-encoded as a string.
//   - error: ErrScriptNotFound if sha is not cached, otherwise any error
//     Eval itself could return.
func (sb *Sandbox) EvalSHA(sha string, keys, args []string) (string, error) {
	sb.mu.Lock()
	script, ok := sb.cache[sha]
	sb.mu.Unlock()
	if !ok {
		return "", ErrScriptNotFound
	}
	return sb.Eval(script, keys, args)
}

// ScriptLoad caches script under its hex-encoded SHA-256 digest and returns
// that digest. Reloading the same script text is idempotent.
func (sb *Sandbox) ScriptLoad(script string) string {
	sha := hashutil.SHA256Hex(script)
	sb.mu.Lock()
	sb.cache[sha] = script
	sb.mu.Unlock()
	return sha
}

// ScriptExists reports whether sha is currently cached.
func (sb *Sandbox) ScriptExists(sha string) bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	_, ok := sb.cache[sha]
	return ok
}

// ScriptFlush empties the script cache.
func (sb *Sandbox) ScriptFlush() {
	sb.mu.Lock()
	sb.cache = make(map[string]string)
	sb.mu.Unlock()
}

// luaValueToString renders a Lua result the way the original engine does:
// nil/bool/number/string render directly, tables render as a recursive
// "[e1, e2, ...]" over their 1..Len() integer entries, and every other
// type (function, userdata, thread) is rejected.
func luaValueToString(v lua.LValue) (string, error) {
	switch val := v.(type) {
	case *lua.LNilType:
		return "nil", nil
	case lua.LBool:
		if bool(val) {
			return "true", nil
		}
		return "false", nil
	case lua.LNumber:
		f := float64(val)
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return strconv.FormatInt(int64(f), 10), nil
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case lua.LString:
		return string(val), nil
	case *lua.LTable:
		result := "["
		for i := 1; i <= val.Len(); i++ {
			if i > 1 {
				result += ", "
			}
			s, err := luaValueToString(val.RawGetInt(i))
			if err != nil {
				return "", err
			}
			result += s
		}
		return result + "]", nil
	default:
		return "", fmt.Errorf("script: unsupported value type %s", v.Type().String())
	}
}
