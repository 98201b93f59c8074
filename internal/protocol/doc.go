// Package protocol implements LunarDB's TCP command front end: a listener
// that spawns one goroutine per connection, each reading whitespace-
// tokenized text commands and writing newline-terminated responses.
//
// # Overview
//
// Server is the outermost layer of LunarDB: it owns the net.Listener, the
// shared internal/keyspace.Store, a bound internal/script.Sandbox for
// EVAL/EVALSHA, and a registry of independent named vector databases
// addressed by the V-prefixed command family. Every accepted connection
// runs its own goroutine against the same shared state; there is no
// per-connection session state beyond the socket itself.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────┐
//	│                     Server                        │
//	├─────────────────────────────────────────────────┤
//	│  net.Listener  ──►  acceptLoop                    │
//	│                        │                          │
//	│           ┌────────────┼────────────┐             │
//	│           ▼            ▼            ▼             │
//	│      connection    connection    connection        │
//	│      goroutine     goroutine     goroutine          │
//	│           │            │            │              │
//	│           └────────────┼────────────┘              │
//	│                        ▼                           │
//	│                    dispatch()                       │
//	│           ┌────────────┼────────────┐              │
//	│           ▼            ▼            ▼              │
//	│   keyspace.Store  script.Sandbox  vectors map        │
//	└─────────────────────────────────────────────────┘
//
// # Wire Protocol
//
// One physical conn.Read is treated as at most one command burst: the
// buffer is decoded as lossy UTF-8, trimmed, split on whitespace, and the
// first token is uppercased and dispatched. Additional commands packed
// into the same read are not split out on newlines: every token of the
// burst goes to the first command as an argument, and one response is
// written per read — a deliberate simplification over buffering and
// splitting on newlines, documented further in DESIGN.md.
//
// # Core Operations
//
// String/list-space commands (GET, SET, SETEX, DEL, MSET, MGET, KEYS,
// SIZE, CLEAR, CLEANUP, LPUSH, RPUSH, LPOP, RPOP, LRANGE, LLEN) forward
// directly to the bound keyspace.Store with a one-to-one arity check per
// command.
//
// Scripting commands (EVAL, EVALSHA, SCRIPT LOAD/EXISTS/FLUSH) forward to
// the bound script.Sandbox; EVAL/EVALSHA here have no access to the
// KEYS/ARGV binding since the wire format carries only a single script
// argument (the remainder of the command line).
//
// Vector commands (VCREATE, VADD, VGET, VSEARCH, VLEN, VTTL, VCLEANUP)
// address a server-wide map[string]*vectorstore.Database keyed by a
// caller-chosen database name created with VCREATE; every other V
// command looks that name up and reports "not found" if it was never
// created.
//
// # Concurrency and Thread Safety
//
//   - Server.wg tracks every live connection goroutine so Shutdown can
//     wait for them to finish (or for its context's deadline) after
//     closing the listener.
//   - The keyspace.Store and script.Sandbox are each internally
//     synchronized; dispatch does not hold any protocol-level lock beyond
//     the brief vectorMu critical section used to look up a named vector
//     database.
//   - Connections are fully independent of one another: there is no
//     cross-connection state, session, or pipelining beyond what the
//     shared Store itself provides.
//
// # Error Handling
//
//   - Client errors (unknown command, wrong arity, bad integer argument)
//     are reported inline as "ERROR: <message>\n"; the connection stays
//     open for the next command.
//   - Not-found results (missing key, empty list pop) are reported as
//     "(nil)\n", never as an ERROR response.
//   - Read or write errors on the connection itself close it; they are
//     never surfaced as a wire response, since there is no longer a
//     channel to write one to.
//
// # Performance Characteristics
//
// Each connection's read buffer is a fixed 1024 bytes, reused across
// reads; dispatch does no additional buffering. Throughput is bounded in
// practice by the keyspace lock, since every command this package handles
// resolves to at most one or two keyspace.Store calls under that lock.
//
// # Limitations and Future Work
//
//   - No inactivity timeout: a connection that never sends another
//     command and never closes holds its goroutine open indefinitely.
//   - No authentication or transport encryption. Start binds whatever
//     address it is given and does not restrict the host to 127.0.0.1;
//     the lunardb binary's default listen address is 127.0.0.1:6380,
//     which LUNARDB_ADDR can override with any host.
//
// # See Also
//
// Related packages:
//   - internal/keyspace: the store every string/list command operates on.
//   - internal/script: the sandbox EVAL/EVALSHA/SCRIPT delegate to.
//   - internal/vectorstore: the database type the V-prefixed commands
//     operate on.
package protocol
