// Package server implements the storage node's accept loop and per-request
// dispatch against a single guarded local set.
package server

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"kvset/internal/connection"
	"kvset/internal/localset"
	"kvset/internal/protocol"
)

// Metrics is the narrow surface the server needs from the metrics sidecar.
// A nil Metrics is valid; every method on it must tolerate that by the
// caller checking for nil before invoking it.
type Metrics interface {
	ObserveRequest(opcode string)
	ObserveRequestDuration(opcode string, seconds float64)
	SetLocalSetSize(n int)
}

// Server owns the local set for one node and runs its TCP accept loop.
type Server struct {
	set                  localset.Set
	log                  *logrus.Logger
	metrics              Metrics
	compressionThreshold int
}

// New builds a Server around set. log and metrics may be nil.
func New(set localset.Set, log *logrus.Logger, metrics Metrics, compressionThreshold int) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{set: set, log: log, metrics: metrics, compressionThreshold: compressionThreshold}
}

// Serve accepts connections on listener until it is closed, handing each
// one to its own goroutine. Accept errors are logged and do not stop the
// loop; a permanently closed listener causes Serve to return.
func (s *Server) Serve(listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.log.WithError(err).Error("listener closed, stopping accept loop")
				return err
			}
			s.log.WithError(err).Warn("accept failed, continuing")
			continue
		}
		go s.handleConnection(connection.New(conn, s.compressionThreshold))
	}
}

func (s *Server) handleConnection(c *connection.Connection) {
	peer := c.RemoteAddr()
	defer func() {
		c.Close()
		s.log.WithField("peer", peer).Info("connection aborted")
	}()

	for {
		stream, req, err := c.ReceiveRequest()
		if err != nil {
			return
		}

		start := time.Now()
		resp, opcodeName := s.dispatch(req)
		if s.metrics != nil {
			s.metrics.ObserveRequest(opcodeName)
			s.metrics.ObserveRequestDuration(opcodeName, time.Since(start).Seconds())
			s.metrics.SetLocalSetSize(s.set.Count())
		}

		if err := c.SendResponse(stream, resp); err != nil {
			s.log.WithError(err).WithField("peer", peer).Warn("failed to send response")
			return
		}
	}
}

func (s *Server) dispatch(req protocol.Request) (protocol.Response, string) {
	switch r := req.(type) {
	case protocol.AddRequest:
		return s.handleAdd(r), "add"
	case protocol.CheckRequest:
		return s.handleCheck(r), "check"
	case protocol.AddBatchRequest:
		return s.handleAddBatch(r), "add_batch"
	case protocol.GetBatchRequest:
		return s.handleGetBatch(r), "get_batch"
	case protocol.DropBatchRequest:
		return s.handleDropBatch(r), "drop_batch"
	default:
		return protocol.StringResponse{Value: fmt.Sprintf("unknown request type %T", req)}, "unknown"
	}
}
