// Package server implements the TecnicoFS worker-pool dispatcher: a fixed
// number of goroutines pulling datagrams off one shared UNIX socket and
// applying them to a fs.FS, grounded on proj3/server/main.c's
// create_threads/processInput pair and on the teacher's use of
// golang.org/x/sync/errgroup to manage a worker pool
// (fuse/test/node_parallel_lookup_test.go).
package server

import (
	"context"
	"errors"
	"log"
	"net"
	"os"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/tecnicofs/tecnicofs/fs"
	"github.com/tecnicofs/tecnicofs/metrics"
	"github.com/tecnicofs/tecnicofs/proto"
)

// Server binds one UNIX datagram socket and dispatches every datagram it
// receives to a fixed pool of worker goroutines, each running an
// independent recvfrom/apply/sendto loop exactly like a processInput
// thread in the source.
type Server struct {
	fsys    *fs.FS
	conn    *net.UnixConn
	workers int
	log     *log.Logger
	metrics *metrics.Recorder
}

// Option configures a Server at construction time.
type Option func(*Server)

// WithLogger overrides the default logger (os.Stderr, no prefix).
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithMetrics attaches a Recorder; every completed operation is observed
// against it. Omit for no instrumentation.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Server) { s.metrics = r }
}

// New binds socketPath and returns a Server ready to Serve. It removes any
// stale socket file left over from a previous run first, mirroring the
// unlink(path) call in the source's main before bind.
func New(fsys *fs.FS, socketPath string, workers int, opts ...Option) (*Server, error) {
	if workers <= 0 {
		return nil, errors.New("server: numthreads must be >= 1")
	}

	_ = os.Remove(socketPath)

	addr := &net.UnixAddr{Name: socketPath, Net: "unixgram"}
	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		return nil, err
	}

	if raw, rerr := conn.SyscallConn(); rerr == nil {
		raw.Control(func(fd uintptr) {
			_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, 1<<20)
		})
	}

	s := &Server{
		fsys:    fsys,
		conn:    conn,
		workers: workers,
		log:     log.New(os.Stderr, "", log.Lmicroseconds),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Serve runs the worker pool until ctx is cancelled, a worker requests
// shutdown by returning an Abort reply, or a worker hits a fatal socket
// error. It mirrors create_threads+join_threads, but uses an errgroup so
// the first worker error cancels the others instead of leaking threads.
func (s *Server) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < s.workers; i++ {
		id := i
		g.Go(func() error { return s.work(ctx, id) })
	}

	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	err := g.Wait()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Shutdown closes the listening socket, unblocking every worker's recvfrom
// and causing Serve to return.
func (s *Server) Shutdown() error {
	return s.conn.Close()
}

// work is a single processInput loop: receive one datagram, apply it,
// reply, and keep going until the socket closes or the command is a fatal
// Abort.
func (s *Server) work(ctx context.Context, id int) error {
	buf := make([]byte, proto.MaxInputSize)
	for {
		n, addr, err := s.conn.ReadFromUnix(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		if n <= 0 || addr == nil {
			continue
		}

		result := s.apply(buf[:n])

		if _, werr := s.conn.WriteToUnix(proto.EncodeReply(int32(result)), addr); werr != nil {
			s.log.Printf("worker %d: reply to %s: %v", id, addr, werr)
		}

		if result == fs.Abort {
			return errors.New("server: received fatal command, aborting")
		}
	}
}
