package server

import (
	"fmt"

	"kvset/internal/cluster"
	"kvset/internal/localset"
	"kvset/internal/protocol"
)

// handleAddBatch inserts every value in req.Values under a single lock,
// used by the rebalancer to push migrated data onto this node.
func (s *Server) handleAddBatch(req protocol.AddBatchRequest) protocol.Response {
	items := make([]localset.TokenValue, len(req.Values))
	for i, v := range req.Values {
		items[i] = localset.TokenValue{Token: cluster.Hash(v), Value: v}
	}
	s.set.AddBatch(items)
	return protocol.StringResponse{Value: fmt.Sprintf("Inserted batch of %d", len(req.Values))}
}
