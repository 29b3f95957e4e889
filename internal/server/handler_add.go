package server

import (
	"fmt"

	"kvset/internal/cluster"
	"kvset/internal/protocol"
)

// handleAdd inserts (hash(v), v), overwriting any value already at that
// token. It is idempotent for duplicate values: re-adding the same value
// overwrites with an identical value and the count does not change.
func (s *Server) handleAdd(req protocol.AddRequest) protocol.Response {
	token := cluster.Hash(req.Value)
	s.set.Add(token, req.Value)
	return protocol.StringResponse{
		Value: fmt.Sprintf("Added %s, there are currently %d", req.Value, s.set.Count()),
	}
}
