package protocol

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/lunardb/internal/keyspace"
)

func startTestServer(t *testing.T) (*Server, net.Conn) {
	t.Helper()
	srv := NewServer(keyspace.New(100))
	require.NoError(t, srv.Start("127.0.0.1:0"))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return srv, conn
}

func sendCommand(t *testing.T, conn net.Conn, command string) string {
	t.Helper()
	_, err := conn.Write([]byte(command))
	require.NoError(t, err)
	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	return line
}

func TestSetAndGet(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "OK\n", sendCommand(t, conn, "SET greeting hello"))
	assert.Equal(t, "hello\n", sendCommand(t, conn, "GET greeting"))
}

func TestSetEXExpiresAfterSeconds(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "OK\n", sendCommand(t, conn, "SETEX temp v 0"))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, "(nil)\n", sendCommand(t, conn, "GET temp"))
}

func TestSetEXWrongArity(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "ERROR: SETEX requires 3 arguments\n", sendCommand(t, conn, "SETEX k v"))
}

func TestGetMissingReturnsNil(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "(nil)\n", sendCommand(t, conn, "GET missing"))
}

func TestGetWrongArity(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "ERROR: GET requires 1 argument\n", sendCommand(t, conn, "GET"))
}

func TestUnknownCommand(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "ERROR: Unknown command\n", sendCommand(t, conn, "NOPE"))
}

func TestDelCountsRemoved(t *testing.T) {
	_, conn := startTestServer(t)
	sendCommand(t, conn, "SET a 1")
	sendCommand(t, conn, "SET b 2")
	assert.Equal(t, "2\n", sendCommand(t, conn, "DEL a b c"))
}

func TestLPushAndLRange(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "3\n", sendCommand(t, conn, "LPUSH mylist a b c"))
	assert.Equal(t, `["c", "b", "a"]`+"\n", sendCommand(t, conn, "LRANGE mylist 0 -1"))
}

func TestLRangeOnMissingKeyIsNil(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "(nil)\n", sendCommand(t, conn, "LRANGE missing 0 -1"))
}

func TestEvalArithmetic(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "2\n", sendCommand(t, conn, "EVAL return 1+1"))
}

func TestScriptLoadExistsEvalSHA(t *testing.T) {
	_, conn := startTestServer(t)
	sha := sendCommand(t, conn, "SCRIPT LOAD return 42")
	sha = sha[:len(sha)-1]
	assert.Equal(t, "true\n", sendCommand(t, conn, "SCRIPT EXISTS "+sha))
	assert.Equal(t, "42\n", sendCommand(t, conn, "EVALSHA "+sha))
}

func TestVectorCommandLifecycle(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "Vector database 'docs' created\n", sendCommand(t, conn, "VCREATE docs"))
	assert.Equal(t, "OK\n", sendCommand(t, conn, "VADD docs v1 1 0 0"))
	assert.Equal(t, "[1.0, 0.0, 0.0]\n", sendCommand(t, conn, "VGET docs v1"))
	assert.Equal(t, "1\n", sendCommand(t, conn, "VLEN docs"))
}

func TestVectorCommandOnMissingDatabase(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "Vector database 'nope' not found\n", sendCommand(t, conn, "VLEN nope"))
}
