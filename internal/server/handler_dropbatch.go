package server

import (
	"fmt"

	"kvset/internal/localset"
	"kvset/internal/protocol"
)

// handleDropBatch removes every value whose token falls within any of the
// requested ranges, inclusive on both ends, under a single lock, and
// replies with the count actually removed.
func (s *Server) handleDropBatch(req protocol.DropBatchRequest) protocol.Response {
	ranges := make([]localset.TokenRange, len(req.Ranges))
	for i, r := range req.Ranges {
		ranges[i] = localset.TokenRange{Start: r.Start, End: r.End}
	}
	return protocol.StringResponse{Value: fmt.Sprintf("Removed: %d", s.set.RemoveInRanges(ranges))}
}
