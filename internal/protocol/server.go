package protocol

import (
	"context"
	"log"
	"net"
	"sync"

	"github.com/dreamware/lunardb/internal/keyspace"
	"github.com/dreamware/lunardb/internal/script"
	"github.com/dreamware/lunardb/internal/vectorstore"
)

// readBufferSize is the maximum number of bytes read per connection read
// call. One physical read is treated as one command burst; extra commands
// packed into the same buffer are not split out, and their tokens are read
// as further arguments of the first command (see dispatch).
const readBufferSize = 1024

// Server is the TCP command front end: one net.Listener, a shared
// keyspace.Store, a script.Sandbox bound to that store, and a registry of
// named vector databases addressed by the V-prefixed command family.
//
// Invariants:
//   - Every accepted connection runs in its own goroutine against the
//     same shared store, sandbox, and vector registry; Server holds no
//     per-connection session state.
//   - wg tracks exactly the set of live connection goroutines, so
//     Shutdown can wait for them without a separate bookkeeping
//     structure.
//
// Thread-safety: Start, Addr, Sandbox, and Shutdown are safe to call from
// any goroutine; the vector registry is guarded by vectorMu independently
// of the keyspace.Store and script.Sandbox, each of which is internally
// synchronized.
type Server struct {
	store    *keyspace.Store
	sandbox  *script.Sandbox
	listener net.Listener

	vectorMu sync.Mutex
	vectors  map[string]*vectorstore.Database

	wg sync.WaitGroup
}

// NewServer constructs a Server over store, with a fresh script.Sandbox
// bound to the same store and an empty vector-database registry.
func NewServer(store *keyspace.Store) *Server {
	return &Server{
		store:   store,
		sandbox: script.NewSandbox(store),
		vectors: make(map[string]*vectorstore.Database),
	}
}

// Start binds addr and begins accepting connections in the background.
//
// Behavior:
//   - Returns once the listener is successfully bound; acceptLoop then
//     runs in its own goroutine for the life of the Server.
//   - Accept errors that occur after a successful Shutdown are swallowed
//     by acceptLoop, matching net.Listener's documented behavior for a
//     closed listener.
//
// Thread-safety: Start must not be called concurrently with itself on the
// same Server; a second call before Shutdown leaks the first listener.
//
// Parameters:
//   - addr: the address to bind, in the form accepted by net.Listen("tcp", addr).
//
// Returns: an error if the listener could not be bound; nil otherwise.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	go s.acceptLoop()
	return nil
}

// Addr returns the bound listener's address. It must be called after a
// successful Start.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Sandbox returns the script.Sandbox bound to this server's keyspace, so
// callers can adjust resource ceilings before Start.
func (s *Server) Sandbox() *script.Sandbox {
	return s.sandbox
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, readBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			response := s.dispatch(string(buf[:n]))
			if _, writeErr := conn.Write([]byte(response)); writeErr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Shutdown stops accepting new connections and waits for in-flight
// connection handlers to finish.
//
// Behavior:
//   - Closes the listener first, which unblocks acceptLoop's Accept call
//     and prevents any new connection from being accepted.
//   - Waits for every in-flight handleConnection goroutine to return,
//     honoring ctx's deadline. It does not forcibly close live
//     connections; a slow client can hold Shutdown open until ctx
//     expires.
//
// Thread-safety: safe to call once Start has returned; calling Shutdown
// without a prior successful Start is a no-op beyond the wait.
//
// Parameters:
//   - ctx: bounds how long Shutdown waits for in-flight handlers.
//
// Returns: nil if every handler finished before ctx's deadline;
// otherwise ctx.Err().
func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			log.Printf("protocol: listener close: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
