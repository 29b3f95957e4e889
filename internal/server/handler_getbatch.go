package server

import (
	"kvset/internal/localset"
	"kvset/internal/protocol"
)

// handleGetBatch collects every value whose token falls within any of the
// requested ranges, inclusive on both ends, under a single lock so the read
// is atomic with respect to concurrent writes on this node.
func (s *Server) handleGetBatch(req protocol.GetBatchRequest) protocol.Response {
	ranges := make([]localset.TokenRange, len(req.Ranges))
	for i, r := range req.Ranges {
		ranges[i] = localset.TokenRange{Start: r.Start, End: r.End}
	}
	return protocol.ArrayResponse{Values: s.set.ValuesInRanges(ranges)}
}
