package server

import (
	"bufio"
	"net"
	"strings"
	"time"

	"tcp-cache/internal/metrics"
	"tcp-cache/internal/protocol"
	"tcp-cache/internal/store"
)

// handleConnection runs one session: read a line, decode, dispatch
// against the shared store, write the response, repeat until EOF or an
// I/O error. Decode errors keep the session alive.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	s.track(conn)
	defer s.untrack(conn)

	s.metrics.Inc(metrics.ConnectionsTotal)

	peer := conn.RemoteAddr().String()
	s.logger.Infof("client connected from %s", peer)

	reader := bufio.NewReader(conn)
	writer := bufio.NewWriter(conn)

	for {
		conn.SetReadDeadline(time.Now().Add(s.idleTimeout))

		line, err := reader.ReadString('\n')
		if err != nil {
			s.logger.Infof("connection closed by %s", peer)
			return
		}

		if strings.TrimSpace(line) == "" {
			// Blank line: nothing to answer, keep reading.
			continue
		}

		response := s.execute(peer, line)

		if _, err := writer.WriteString(response + "\n"); err != nil {
			s.logger.Warnf("write to %s failed: %v", peer, err)
			return
		}
		if err := writer.Flush(); err != nil {
			s.logger.Warnf("write to %s failed: %v", peer, err)
			return
		}
	}
}

// execute decodes and dispatches one request line, returning the
// response line to send back.
func (s *Server) execute(peer, line string) string {
	cmd, err := protocol.ParseCommand(line)
	if err != nil {
		s.metrics.Inc(metrics.ProtocolErrorsTotal)
		s.logger.Warnf("bad command from %s: %v", peer, err)
		return protocol.ErrorResponse(err)
	}

	s.metrics.Inc(metrics.CommandsTotal)

	switch cmd.Op {
	case protocol.OpSet:
		entry := store.Entry{Value: cmd.Value}
		if cmd.HasTTL {
			entry.ExpiresAt = time.Now().Add(cmd.TTL)
		}
		s.store.Set(cmd.Key, entry)
		s.logger.Debugf("SET %s from %s", cmd.Key, peer)
		return protocol.StatusOK

	case protocol.OpGet:
		value, found := s.store.Get(cmd.Key)
		s.logger.Debugf("GET %s from %s (found=%t)", cmd.Key, peer, found)
		if !found {
			return protocol.StatusNull
		}
		return value

	default: // protocol.OpRemove
		removed := s.store.Remove(cmd.Key)
		s.logger.Debugf("RM %s from %s (removed=%t)", cmd.Key, peer, removed)
		if !removed {
			return protocol.StatusNotFound
		}
		return protocol.StatusOK
	}
}
