// Package script implements LunarDB's scripting sandbox: evaluation of a
// Lua script against the live keyspace through a bound db handle, with
// resource ceilings and a SHA-256-keyed script cache.
//
// # Overview
//
// Sandbox lets a caller compose several keyspace.Store operations into
// one script, evaluated by a fresh gopher-lua interpreter per call. It is
// the embedding layer between LunarDB's wire protocol and the Lua VM:
// every script sees the same db handle, the same restricted global
// environment, and the same resource ceilings, regardless of who
// triggered the evaluation (a direct EVAL over TCP, or a test calling
// Sandbox.Eval directly).
//
// # Architecture
//
//	┌───────────────────────────────────────────────┐
//	│                    Sandbox                      │
//	├───────────────────────────────────────────────┤
//	│  Eval(script, keys, args)                       │
//	│       │                                         │
//	│       ▼                                         │
//	│  fresh *lua.LState, per call                    │
//	│   ├─ stdlib: table, string, math only            │
//	│   ├─ disabled: dofile, loadfile, load,           │
//	│   │            os, io, package, require          │
//	│   ├─ globals: KEYS (1-indexed), ARGV (1-indexed) │
//	│   └─ db table: get/set/setex/del/lpush/rpush/... │
//	│                    │                             │
//	│                    ▼                             │
//	│           internal/keyspace.Store                │
//	└───────────────────────────────────────────────┘
//	       script cache: sha256(script) → script text
//
// # Core Operations
//
// Eval(script, keys, args) builds a fresh interpreter, binds db/KEYS/ARGV,
// runs the script under a wall-clock deadline, and renders its single
// return value as a string.
//
// EvalSHA(sha, keys, args) looks up a previously cached script by its
// hex-SHA-256 digest and calls Eval on its text.
//
// ScriptLoad/ScriptExists/ScriptFlush manage the process-wide script
// cache: a script is keyed by the SHA-256 of its own bytes, so loading
// the same text twice is idempotent and yields the same key.
//
// WithLimits(wallTime, maxBytes) adjusts the ceilings applied to every
// subsequent Eval/EvalSHA call on this Sandbox.
//
// # Resource Ceilings
//
//   - Wall clock: each Eval derives a context.Context with a timeout from
//     the sandbox's configured wall-clock duration and attaches it to the
//     interpreter with SetContext; gopher-lua checks it on its
//     instruction hooks, so a script exceeding the deadline is
//     interrupted mid-execution rather than merely timing out the
//     caller.
//   - Memory: gopher-lua has no allocator-level byte-budget hook the way
//     some embeddings do, so the configured byte ceiling is approximated
//     via RegistryMaxSize, which bounds how many Lua values the
//     interpreter's value stack may hold — the nearest control the
//     runtime actually exposes, not a byte-exact cap.
//
// # Concurrency and Thread Safety
//
//   - Every Eval call constructs its own *lua.LState: interpreters are
//     never shared or reused across calls, so there is no cross-script
//     state leakage and no need to lock the interpreter itself.
//   - The script cache is guarded by its own mutex, independent of the
//     keyspace lock.
//   - Script-level atomicity is explicitly not provided: each db.* call
//     from within a script acquires and releases the keyspace lock
//     independently, the same as a top-level protocol command would.
//     Two concurrent evaluations interleave freely at the granularity of
//     individual db calls. See DESIGN.md for the rationale.
//
// # Error Handling
//
//   - Parse errors, runtime errors, and unsupported-result-type errors
//     are all returned as a plain error from Eval/EvalSHA, never panicked.
//   - ErrTimeExceeded is returned when the wall-clock deadline is hit.
//   - ErrScriptNotFound is returned by EvalSHA when the given digest is
//     not in the cache.
//   - Calling a disabled global (os, io, dofile, loadfile, load, require,
//     package) fails as an ordinary Lua runtime error, since those
//     globals are simply absent rather than present-but-forbidden.
//
// # Performance Characteristics
//
// Constructing a fresh *lua.LState per call costs more than reusing one,
// but buys complete isolation between scripts with no reset logic to get
// wrong; for LunarDB's expected script sizes and call rates this is the
// right trade. Each db.* call pays the same cost as the equivalent direct
// keyspace.Store call, plus one Lua/Go call-boundary crossing.
//
// # Limitations and Future Work
//
//   - No script-level atomicity across multiple db.* calls (see above).
//   - The memory ceiling is an approximation, not an exact byte budget.
//   - Scripts are not persisted across restarts; the cache is
//     process-lifetime only and is explicitly cleared by SCRIPT FLUSH.
//
// # See Also
//
// Related packages:
//   - internal/keyspace: every db.* method forwards to a Store.
//   - internal/hashutil: supplies SHA256Hex for the script cache key.
//   - internal/protocol: wires EVAL/EVALSHA/SCRIPT onto the TCP surface.
package script
