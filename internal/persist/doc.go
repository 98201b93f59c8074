// Package persist implements LunarDB's dump/restore contract: an
// integrity-headed, content-addressed file per logical name.
//
// # Overview
//
// A dump is identified by a logical name chosen by the caller (typically
// the database's configured dump name), but that name never appears on
// disk. Save and Load both derive the physical filename by hashing the
// logical name, so two different logical names produce two different
// files with overwhelming probability, and the on-disk filename itself
// reveals nothing about the name the caller used to address it.
//
// # Architecture
//
//	Save(data, "mydb")
//	        │
//	        ▼
//	filename = SHA256Hex("mydb") + ".cache"
//	        │
//	        ▼
//	┌───────────────────────────────┐
//	│ LUNARDB_V1\n                  │  ← integrity header, checked on Load
//	│ <data bytes, verbatim>        │  ← caller's payload, opaque to persist
//	└───────────────────────────────┘
//
// Load reverses the process: it opens the file derived from the logical
// name, validates the header line is exactly "LUNARDB_V1", and returns
// everything after it unexamined. The payload itself — a JSON document
// produced by internal/keyspace.Store.Serialize — is opaque to this
// package; persist only owns the header and the filename derivation.
//
// # Core Operations
//
// Save(data []byte, logicalName string) error: writes the header line
// followed by data to the file derived from logicalName, overwriting any
// existing file at that path.
//
// Load(logicalName string) ([]byte, error): opens the file derived from
// logicalName, validates its header, and returns the payload bytes. It
// returns ErrInvalidHeader if the header line does not match exactly, and
// the underlying I/O error (commonly *os.PathError for a missing file) if
// the file cannot be opened or read.
//
// # Concurrency and Thread Safety
//
// Save and Load are ordinary blocking file I/O calls with no shared
// in-process state; callers are responsible for not racing a Save against
// a Load (or another Save) for the same logical name. LunarDB's
// embedding application calls Load once at startup and Save once at
// shutdown, so no such race arises in practice.
//
// # Error Handling
//
//   - I/O errors (missing file, permission denied, disk full) are
//     returned as-is from the underlying os/bufio calls, not wrapped.
//   - ErrInvalidHeader is returned when a file opens successfully but its
//     first line is not exactly the expected header — this indicates
//     either a corrupted dump or a file that was never written by this
//     package.
//
// # Performance Characteristics
//
// Both Save and Load are O(n) in payload size, streamed through a
// bufio.Writer/Reader rather than buffering the entire file in memory
// beyond the caller-supplied byte slice itself.
//
// # Limitations and Future Work
//
//   - There is no versioning beyond the single "LUNARDB_V1" header value;
//     a future on-disk format change would need a new header literal and
//     explicit handling for both.
//   - Save is not atomic: a crash mid-write can leave a truncated file
//     behind. A write-to-temp-then-rename sequence would close this gap
//     but is not implemented.
//
// # See Also
//
// Related packages:
//   - internal/hashutil: supplies SHA256Hex, the filename derivation
//     this package relies on.
//   - internal/keyspace: Store.Serialize/Deserialize produce and consume
//     the JSON payload this package wraps.
package persist
