// Package main implements the lunardb server binary: an in-memory
// key-value store with a Redis-like TCP command surface, an embedded
// scripting sandbox, and optional file persistence.
//
// Configuration (environment variables):
//   - LUNARDB_ADDR: listen address (default "127.0.0.1:6380")
//   - LUNARDB_CAPACITY: max key count before LRU eviction (default 10000)
//   - LUNARDB_DUMP_NAME: logical name of the persistence dump loaded at
//     startup and written on shutdown (default "lunardb")
//   - LUNARDB_SCRIPT_WALL_TIME_MS: script wall-clock budget in
//     milliseconds (default 5000)
//   - LUNARDB_SCRIPT_MAX_BYTES: script memory ceiling in bytes (default
//     10485760)
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dreamware/lunardb/internal/keyspace"
	"github.com/dreamware/lunardb/internal/persist"
	"github.com/dreamware/lunardb/internal/protocol"
)

// main initializes and runs the lunardb server, restoring any prior dump
// on startup and saving a fresh one on graceful shutdown.
//
// The main function:
//  1. Reads configuration from environment variables (see package doc).
//  2. Constructs the keyspace.Store and restores it from the configured
//     dump name, if one exists.
//  3. Constructs the protocol.Server, applies the configured script
//     resource ceilings, and starts accepting connections.
//  4. Waits for SIGINT or SIGTERM.
//  5. Shuts the server down with a five-second grace period, then saves
//     a fresh dump under the same logical name.
//
// Exit codes:
//   - 0: normal shutdown via signal.
//   - 1: fatal error binding the listener.
func main() {
	addr := getenv("LUNARDB_ADDR", "127.0.0.1:6380")
	capacity := getenvInt("LUNARDB_CAPACITY", keyspace.DefaultCapacity)
	dumpName := getenv("LUNARDB_DUMP_NAME", "lunardb")
	wallTimeMS := getenvInt("LUNARDB_SCRIPT_WALL_TIME_MS", 5000)
	maxBytes := getenvInt("LUNARDB_SCRIPT_MAX_BYTES", 10*1024*1024)

	store := keyspace.New(capacity)
	loadDump(store, dumpName)

	srv := protocol.NewServer(store)
	srv.Sandbox().WithLimits(time.Duration(wallTimeMS)*time.Millisecond, maxBytes)

	if err := srv.Start(addr); err != nil {
		log.Fatalf("listen: %v", err)
	}
	log.Printf("lunardb listening on %s", srv.Addr())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	saveDump(store, dumpName)
	log.Println("lunardb stopped")
}

// loadDump restores store from the dump logically named name, if one
// exists. A missing dump or a deserialize failure is logged and treated
// as an empty starting store; it never aborts startup.
func loadDump(store *keyspace.Store, name string) {
	data, err := persist.Load(name)
	if err != nil {
		log.Printf("no dump loaded for %q: %v", name, err)
		return
	}
	if err := store.Deserialize(data); err != nil {
		log.Printf("failed to restore dump %q: %v", name, err)
		return
	}
	log.Printf("restored %d keys from %q", store.Size(), name)
}

// saveDump serializes store and writes it under the dump logically named
// name. A serialize or write failure is logged; it never aborts shutdown.
func saveDump(store *keyspace.Store, name string) {
	data, err := store.Serialize()
	if err != nil {
		log.Printf("failed to serialize keyspace: %v", err)
		return
	}
	if err := persist.Save(data, name); err != nil {
		log.Printf("failed to save dump %q: %v", name, err)
	}
}

// getenv returns the value of the environment variable key, or def if it
// is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt returns the environment variable key parsed as an int, or
// def if it is unset, empty, or not a valid integer.
func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
