package script

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/lunardb/internal/keyspace"
)

func newTestSandbox() *Sandbox {
	return NewSandbox(keyspace.New(100))
}

func TestEvalReturnsComputedValue(t *testing.T) {
	sb := newTestSandbox()
	result, err := sb.Eval("return 1 + 1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "2", result)
}

func TestEvalReturnsNilAsString(t *testing.T) {
	sb := newTestSandbox()
	result, err := sb.Eval("local x = nil", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "nil", result)
}

func TestEvalKeysAndArgvAreOneIndexed(t *testing.T) {
	sb := newTestSandbox()
	result, err := sb.Eval("return KEYS[1] .. ':' .. ARGV[1]", []string{"k"}, []string{"v"})
	require.NoError(t, err)
	assert.Equal(t, "k:v", result)
}

func TestEvalDBSetAndGet(t *testing.T) {
	sb := newTestSandbox()
	result, err := sb.Eval(`db:set(KEYS[1], ARGV[1]); return db:get(KEYS[1])`, []string{"greeting"}, []string{"hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestEvalDBListRoundTrip(t *testing.T) {
	sb := newTestSandbox()
	result, err := sb.Eval(`
		db:rpush("mylist", {"a", "b", "c"})
		local items = db:lrange("mylist", 0, -1)
		return items
	`, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "[a, b, c]", result)
}

func TestEvalRejectsDangerousGlobals(t *testing.T) {
	sb := newTestSandbox()
	scripts := []string{
		`os.exit(1)`,
		`io.open("/etc/passwd")`,
		`require("os")`,
		`load("return 1")`,
		`loadfile("/etc/passwd")`,
		`dofile("/etc/passwd")`,
	}
	for _, script := range scripts {
		_, err := sb.Eval(script, nil, nil)
		assert.Error(t, err, "script %q should have failed", script)
	}
}

func TestEvalTimeExceeded(t *testing.T) {
	sb := newTestSandbox().WithLimits(10*time.Millisecond, DefaultMaxBytes)
	_, err := sb.Eval(`while true do end`, nil, nil)
	assert.ErrorIs(t, err, ErrTimeExceeded)
}

func TestScriptLoadExistsFlush(t *testing.T) {
	sb := newTestSandbox()
	sha := sb.ScriptLoad("return 42")
	assert.True(t, sb.ScriptExists(sha))

	result, err := sb.EvalSHA(sha, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "42", result)

	sb.ScriptFlush()
	assert.False(t, sb.ScriptExists(sha))

	_, err = sb.EvalSHA(sha, nil, nil)
	assert.ErrorIs(t, err, ErrScriptNotFound)
}

func TestEvalParseError(t *testing.T) {
	sb := newTestSandbox()
	_, err := sb.Eval("this is not lua(", nil, nil)
	assert.Error(t, err)
}
