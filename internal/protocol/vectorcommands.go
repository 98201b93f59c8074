package protocol

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dreamware/lunardb/internal/vectorstore"
)

// Grounded on _examples/original_source/modules/lunarvector/src/commands.rs's
// execute_command switch: usage strings, "not found" phrasing, and the
// plain-text (no "ERROR:" prefix) failure responses are carried over
// unchanged, since this command family predates and differs from the
// string-keyspace family's error convention.

func (s *Server) vectorDB(name string) (*vectorstore.Database, bool) {
	s.vectorMu.Lock()
	defer s.vectorMu.Unlock()
	db, ok := s.vectors[name]
	return db, ok
}

func (s *Server) cmdVCreate(parts []string) string {
	if len(parts) != 2 {
		return "Usage: VCREATE <key>\n"
	}
	key := parts[1]
	s.vectorMu.Lock()
	s.vectors[key] = vectorstore.NewDatabase()
	s.vectorMu.Unlock()
	return fmt.Sprintf("Vector database '%s' created\n", key)
}

func (s *Server) cmdVAdd(parts []string) string {
	if len(parts) < 4 {
		return "Usage: VADD <db_key> <vector_id> <dim1> <dim2> ...\n"
	}
	dbKey, vectorID := parts[1], parts[2]
	db, ok := s.vectorDB(dbKey)
	if !ok {
		return fmt.Sprintf("Vector database '%s' not found\n", dbKey)
	}
	data := parseFloats(parts[3:])
	db.Add(vectorID, data)
	return "OK\n"
}

func (s *Server) cmdVGet(parts []string) string {
	if len(parts) != 3 {
		return "Usage: VGET <db_key> <vector_id>\n"
	}
	dbKey, vectorID := parts[1], parts[2]
	db, ok := s.vectorDB(dbKey)
	if !ok {
		return fmt.Sprintf("Vector database '%s' not found\n", dbKey)
	}
	data, ok := db.Get(vectorID)
	if !ok {
		return fmt.Sprintf("Vector '%s' not found in database '%s'\n", vectorID, dbKey)
	}
	return debugFloatList(data) + "\n"
}

func (s *Server) cmdVSearch(parts []string) string {
	if len(parts) < 5 {
		return "Usage: VSEARCH <db_key> <limit> <dim1> <dim2> ...\n"
	}
	dbKey := parts[1]
	limit, err := strconv.Atoi(parts[2])
	if err != nil || limit < 0 {
		return "Invalid limit\n"
	}
	db, ok := s.vectorDB(dbKey)
	if !ok {
		return fmt.Sprintf("Vector database '%s' not found\n", dbKey)
	}
	query := parseFloats(parts[3:])
	results, err := db.SearchSimilar(query, limit)
	if err != nil {
		return fmt.Sprintf("ERROR: %v\n", err)
	}
	return debugMatches(results) + "\n"
}

func (s *Server) cmdVLen(parts []string) string {
	if len(parts) != 2 {
		return "Usage: VLEN <db_key>\n"
	}
	dbKey := parts[1]
	db, ok := s.vectorDB(dbKey)
	if !ok {
		return fmt.Sprintf("Vector database '%s' not found\n", dbKey)
	}
	return fmt.Sprintf("%d\n", db.Len())
}

func (s *Server) cmdVTTL(parts []string) string {
	if len(parts) != 4 {
		return "Usage: VTTL <db_key> <vector_id> <seconds>\n"
	}
	dbKey, vectorID := parts[1], parts[2]
	seconds, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || seconds < 0 {
		return "Invalid TTL value\n"
	}
	db, ok := s.vectorDB(dbKey)
	if !ok {
		return fmt.Sprintf("Vector database '%s' not found\n", dbKey)
	}
	if !db.SetTTL(vectorID, time.Duration(seconds)*time.Second) {
		return fmt.Sprintf("Vector '%s' not found in database '%s'\n", vectorID, dbKey)
	}
	return "OK\n"
}

func (s *Server) cmdVCleanup(parts []string) string {
	if len(parts) != 1 {
		return "Usage: VCLEANUP\n"
	}
	s.vectorMu.Lock()
	for _, db := range s.vectors {
		db.CleanupExpired()
	}
	s.vectorMu.Unlock()
	return "Expired vectors cleaned up\n"
}

func parseFloats(tokens []string) []float64 {
	values := make([]float64, 0, len(tokens))
	for _, t := range tokens {
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			values = append(values, f)
		}
	}
	return values
}
