package server

import (
	"fmt"

	"kvset/internal/cluster"
	"kvset/internal/protocol"
)

// handleCheck replies Bool(true) on a hit and a String message on a miss.
// The asymmetric reply type is part of the wire contract, not an oversight.
func (s *Server) handleCheck(req protocol.CheckRequest) protocol.Response {
	token := cluster.Hash(req.Value)
	if s.set.Contains(token) {
		return protocol.BoolResponse{Value: true}
	}
	return protocol.StringResponse{Value: fmt.Sprintf("Value: %s doesn't exist", req.Value)}
}
