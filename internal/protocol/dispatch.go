package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dreamware/lunardb/internal/vectorstore"
)

// dispatch interprets one read burst: lossy UTF-8 decode, trim, whitespace
// split, uppercase the verb, and route to the matching command handler. It
// writes one response per burst: the whole burst is tokenized as a single
// command, so a second command packed into the same read is not dispatched
// on its own; its tokens become extra arguments of the first.
func (s *Server) dispatch(raw string) string {
	text := strings.ToValidUTF8(raw, "�")
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return "ERROR: Empty command\n"
	}

	switch strings.ToUpper(parts[0]) {
	case "GET":
		return s.cmdGet(parts)
	case "SET":
		return s.cmdSet(parts)
	case "SETEX":
		return s.cmdSetEX(parts)
	case "DEL":
		return s.cmdDel(parts)
	case "LPUSH":
		return s.cmdLPush(parts)
	case "RPUSH":
		return s.cmdRPush(parts)
	case "LRANGE":
		return s.cmdLRange(parts)
	case "LPOP":
		return s.cmdLPop(parts)
	case "RPOP":
		return s.cmdRPop(parts)
	case "LLEN":
		return s.cmdLLen(parts)
	case "MSET":
		return s.cmdMSet(parts)
	case "MGET":
		return s.cmdMGet(parts)
	case "KEYS":
		return s.cmdKeys(parts)
	case "SIZE":
		return s.cmdSize(parts)
	case "CLEAR":
		return s.cmdClear(parts)
	case "CLEANUP":
		return s.cmdCleanup(parts)
	case "EVAL":
		return s.cmdEval(parts)
	case "EVALSHA":
		return s.cmdEvalSHA(parts)
	case "SCRIPT":
		return s.cmdScript(parts)
	case "VCREATE":
		return s.cmdVCreate(parts)
	case "VADD":
		return s.cmdVAdd(parts)
	case "VGET":
		return s.cmdVGet(parts)
	case "VSEARCH":
		return s.cmdVSearch(parts)
	case "VLEN":
		return s.cmdVLen(parts)
	case "VTTL":
		return s.cmdVTTL(parts)
	case "VCLEANUP":
		return s.cmdVCleanup(parts)
	default:
		return "ERROR: Unknown command\n"
	}
}

func (s *Server) cmdGet(parts []string) string {
	if len(parts) != 2 {
		return "ERROR: GET requires 1 argument\n"
	}
	value, ok := s.store.Get(parts[1])
	if !ok {
		return "(nil)\n"
	}
	return value + "\n"
}

func (s *Server) cmdSet(parts []string) string {
	if len(parts) != 3 {
		return "ERROR: SET requires 2 arguments\n"
	}
	s.store.Set(parts[1], parts[2])
	return "OK\n"
}

func (s *Server) cmdSetEX(parts []string) string {
	if len(parts) != 4 {
		return "ERROR: SETEX requires 3 arguments\n"
	}
	seconds, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return "ERROR: SETEX seconds must be an integer\n"
	}
	s.store.SetEX(parts[1], parts[2], seconds)
	return "OK\n"
}

func (s *Server) cmdDel(parts []string) string {
	if len(parts) < 2 {
		return "ERROR: DEL requires at least 1 argument\n"
	}
	count := s.store.Del(parts[1:]...)
	return fmt.Sprintf("%d\n", count)
}

func (s *Server) cmdLPush(parts []string) string {
	if len(parts) < 3 {
		return "ERROR: LPUSH requires at least 2 arguments\n"
	}
	count := s.store.LPush(parts[1], parts[2:])
	return fmt.Sprintf("%d\n", count)
}

func (s *Server) cmdRPush(parts []string) string {
	if len(parts) < 3 {
		return "ERROR: RPUSH requires at least 2 arguments\n"
	}
	count := s.store.RPush(parts[1], parts[2:])
	return fmt.Sprintf("%d\n", count)
}

func (s *Server) cmdLRange(parts []string) string {
	if len(parts) != 4 {
		return "ERROR: LRANGE requires 3 arguments\n"
	}
	start, err := strconv.Atoi(parts[2])
	if err != nil {
		start = 0
	}
	stop, err := strconv.Atoi(parts[3])
	if err != nil {
		stop = -1
	}
	values, ok := s.store.LRange(parts[1], start, stop)
	if !ok {
		return "(nil)\n"
	}
	return debugStringList(values) + "\n"
}

func (s *Server) cmdLPop(parts []string) string {
	if len(parts) != 2 {
		return "ERROR: LPOP requires 1 argument\n"
	}
	value, ok := s.store.LPop(parts[1])
	if !ok {
		return "(nil)\n"
	}
	return value + "\n"
}

func (s *Server) cmdRPop(parts []string) string {
	if len(parts) != 2 {
		return "ERROR: RPOP requires 1 argument\n"
	}
	value, ok := s.store.RPop(parts[1])
	if !ok {
		return "(nil)\n"
	}
	return value + "\n"
}

func (s *Server) cmdLLen(parts []string) string {
	if len(parts) != 2 {
		return "ERROR: LLEN requires 1 argument\n"
	}
	return fmt.Sprintf("%d\n", s.store.LLen(parts[1]))
}

func (s *Server) cmdMSet(parts []string) string {
	if len(parts) < 3 || len(parts)%2 != 1 {
		return "ERROR: MSET requires an even number of arguments\n"
	}
	kv := make(map[string]string, (len(parts)-1)/2)
	for i := 1; i < len(parts); i += 2 {
		kv[parts[i]] = parts[i+1]
	}
	s.store.MSet(kv)
	return "OK\n"
}

func (s *Server) cmdMGet(parts []string) string {
	if len(parts) < 2 {
		return "ERROR: MGET requires at least 1 argument\n"
	}
	results := s.store.MGet(parts[1:])
	rendered := make([]string, len(results))
	for i, r := range results {
		if !r.Found {
			rendered[i] = "nil"
		} else {
			rendered[i] = r.Value
		}
	}
	return debugRawList(rendered) + "\n"
}

func (s *Server) cmdKeys(parts []string) string {
	if len(parts) > 2 {
		return "ERROR: KEYS requires 0 or 1 argument\n"
	}
	pattern := ""
	if len(parts) == 2 {
		pattern = parts[1]
	}
	return debugStringList(s.store.Keys(pattern)) + "\n"
}

func (s *Server) cmdSize(parts []string) string {
	if len(parts) != 1 {
		return "ERROR: SIZE requires 0 arguments\n"
	}
	return fmt.Sprintf("%d\n", s.store.Size())
}

func (s *Server) cmdClear(parts []string) string {
	if len(parts) != 1 {
		return "ERROR: CLEAR requires 0 arguments\n"
	}
	return fmt.Sprintf("%d\n", s.store.Clear())
}

func (s *Server) cmdCleanup(parts []string) string {
	if len(parts) != 1 {
		return "ERROR: CLEANUP requires 0 arguments\n"
	}
	return fmt.Sprintf("%d\n", s.store.Cleanup())
}

// EVAL, EVALSHA, and SCRIPT LOAD consume the rest of the command line as a
// single script argument (rejoined with single spaces) rather than a lone
// token, since the tokenizer would otherwise be unable to carry a script
// containing whitespace. KEYS/ARGV binding is unavailable over this wire
// form; scripts that need them are reached only via EVAL with no inputs.
func (s *Server) cmdEval(parts []string) string {
	if len(parts) < 2 {
		return "ERROR: EVAL requires 1 argument\n"
	}
	result, err := s.sandbox.Eval(strings.Join(parts[1:], " "), nil, nil)
	if err != nil {
		return fmt.Sprintf("ERROR: %v\n", err)
	}
	return result + "\n"
}

func (s *Server) cmdEvalSHA(parts []string) string {
	if len(parts) != 2 {
		return "ERROR: EVALSHA requires 1 argument\n"
	}
	result, err := s.sandbox.EvalSHA(parts[1], nil, nil)
	if err != nil {
		return fmt.Sprintf("ERROR: %v\n", err)
	}
	return result + "\n"
}

func (s *Server) cmdScript(parts []string) string {
	if len(parts) < 2 {
		return "ERROR: SCRIPT requires a subcommand\n"
	}
	switch strings.ToUpper(parts[1]) {
	case "LOAD":
		if len(parts) < 3 {
			return "ERROR: SCRIPT LOAD requires 1 argument\n"
		}
		return s.sandbox.ScriptLoad(strings.Join(parts[2:], " ")) + "\n"
	case "EXISTS":
		if len(parts) != 3 {
			return "ERROR: SCRIPT EXISTS requires 1 argument\n"
		}
		return fmt.Sprintf("%t\n", s.sandbox.ScriptExists(parts[2]))
	case "FLUSH":
		if len(parts) != 2 {
			return "ERROR: SCRIPT FLUSH requires 0 arguments\n"
		}
		s.sandbox.ScriptFlush()
		return "OK\n"
	default:
		return "ERROR: Unknown SCRIPT subcommand\n"
	}
}

// debugStringList renders a []string the way Rust's derived Debug renders
// a Vec<String>: double-quoted, comma-space joined elements in brackets.
func debugStringList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// debugRawList renders pre-rendered tokens (already "nil" or a plain
// value) without additional quoting, for MGET's mixed-hit response.
func debugRawList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// debugFloat renders a float64 the way Rust's f32 Debug does: always at
// least one fractional digit, shortest round-trip otherwise.
func debugFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func debugFloatList(values []float64) string {
	rendered := make([]string, len(values))
	for i, v := range values {
		rendered[i] = debugFloat(v)
	}
	return "[" + strings.Join(rendered, ", ") + "]"
}

// debugMatches renders []vectorstore.Match the way Rust's derived Debug
// renders a Vec<(String, f32)>: a bracketed list of parenthesized,
// comma-space joined (id, score) tuples.
func debugMatches(matches []vectorstore.Match) string {
	rendered := make([]string, len(matches))
	for i, m := range matches {
		rendered[i] = fmt.Sprintf("(%s, %s)", strconv.Quote(m.ID), debugFloat(m.Score))
	}
	return "[" + strings.Join(rendered, ", ") + "]"
}
