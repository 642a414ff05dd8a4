package server

import (
	"bufio"
	"bytes"
	"net"
	"time"

	"go.uber.org/zap"

	"courier/internal/observability/metrics"
	"courier/internal/protocol"
	"courier/internal/util/logging"
)

// maxLineBytes caps a single request document. A peer that exceeds it gets
// its connection dropped by the scanner.
const maxLineBytes = 1 << 20

// Server owns the TCP listener loop. Requests and responses are
// newline-framed JSON documents; a session carries any number of them.
// Connections have no deadline, so an idle peer parks its goroutine without
// affecting the others.
type Server struct {
	proc *Processor
}

// New builds a Server around proc.
func New(proc *Processor) *Server {
	return &Server{proc: proc}
}

// ListenAndServe listens on addr and serves until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Serve accepts connections on lis until Accept fails. Closing lis is the
// way to stop it.
func (s *Server) Serve(lis net.Listener) error {
	for {
		conn, err := lis.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	logging.Debug("connection open", zap.String("remote", remote))
	metrics.ActiveConnections.Inc()
	defer metrics.ActiveConnections.Dec()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		resp := s.dispatch(line)
		out, err := protocol.EncodeResponse(resp)
		if err != nil {
			logging.Error("encode response", zap.String("remote", remote), zap.Error(err))
			return
		}
		out = append(out, '\n')
		if _, err := conn.Write(out); err != nil {
			logging.Debug("write failed", zap.String("remote", remote), zap.Error(err))
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logging.Debug("connection closed", zap.String("remote", remote), zap.Error(err))
	}
}

// dispatch turns one request line into exactly one response. Malformed input
// and storage failures both answer Error; only the transport itself can end
// the session.
func (s *Server) dispatch(line []byte) protocol.Response {
	started := time.Now()

	cmd, err := protocol.DecodeCommand(line)
	if err != nil {
		logging.Debug("malformed command", zap.Error(err))
		metrics.CommandsTotal.WithLabelValues("unknown", "error").Inc()
		return protocol.Error{Message: err.Error()}
	}

	name := protocol.CommandName(cmd)
	resp, err := s.proc.Process(cmd)
	if err != nil {
		logging.Error("command failed", zap.String("command", name), zap.Error(err))
		metrics.CommandsTotal.WithLabelValues(name, "error").Inc()
		return protocol.Error{Message: err.Error()}
	}

	status := "ok"
	if _, failed := resp.(protocol.Error); failed {
		status = "error"
	}
	metrics.CommandsTotal.WithLabelValues(name, status).Inc()
	metrics.CommandDurationSeconds.WithLabelValues(name).Observe(time.Since(started).Seconds())
	return resp
}
