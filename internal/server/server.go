package server

import (
	"net"
	"sync"
	"time"

	"tcp-cache/internal/logs"
	"tcp-cache/internal/metrics"
	"tcp-cache/internal/store"
)

// Idle clients are disconnected after this long without a complete line.
const defaultIdleTimeout = 5 * time.Minute

// Server accepts TCP connections and runs one session per connection
// against a single shared store.
type Server struct {
	addr        string
	store       *store.Store
	logger      *logs.Logger
	metrics     *metrics.Registry
	idleTimeout time.Duration

	listener net.Listener
	stopCh   chan struct{}

	connMu sync.Mutex
	conns  map[net.Conn]struct{}
}

// New creates a new TCP server. The store is shared with the caller;
// the server never owns or copies it.
func New(addr string, st *store.Store, logger *logs.Logger, metricsRegistry *metrics.Registry) *Server {
	return &Server{
		addr:        addr,
		store:       st,
		logger:      logger,
		metrics:     metricsRegistry,
		idleTimeout: defaultIdleTimeout,
		stopCh:      make(chan struct{}),
		conns:       make(map[net.Conn]struct{}),
	}
}

// Listen binds the address and serves until Shutdown or a fatal
// listener error. Blocking call.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln

	s.logger.Infof("server listening on %s", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.stopCh:
				return nil
			default:
			}
			s.logger.Errorf("accept error: %v", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

// Shutdown stops accepting and closes every in-flight session.
func (s *Server) Shutdown() {
	close(s.stopCh)
	if s.listener != nil {
		s.listener.Close()
	}

	s.connMu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.connMu.Unlock()
}

func (s *Server) track(conn net.Conn) {
	s.connMu.Lock()
	s.conns[conn] = struct{}{}
	s.connMu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.connMu.Lock()
	delete(s.conns, conn)
	s.connMu.Unlock()
}
