package cluster

import (
	"fmt"
	"sort"

	"kvset/internal/protocol"
)

// Replicas is the number of virtual tokens inserted per node.
const Replicas = 10

// Ring is the sorted-token consistent-hash ring used by the client and the
// rebalancer; storage nodes hold no ring. It is not safe for concurrent mutation; the
// rebalancer is the only component that ever calls AddNode, and it does so
// single-threaded against its own private copy.
type Ring struct {
	nodes  []Node
	tokens []uint64 // sorted ascending
	owners map[uint64]int
}

// NewRing builds a ring from an ordered list of node addresses, inserting
// Replicas virtual tokens per node in the order given.
func NewRing(addresses []string) *Ring {
	r := &Ring{owners: make(map[uint64]int)}
	for _, addr := range addresses {
		r.AddNode(Node{Address: addr})
	}
	return r
}

// AddNode appends node to the member list and inserts its Replicas virtual
// tokens. No existing tokens are removed or re-seeded.
func (r *Ring) AddNode(n Node) {
	idx := len(r.nodes)
	r.nodes = append(r.nodes, n)

	for i := 0; i < Replicas; i++ {
		token := Hash(fmt.Sprintf("%s:%d", n.Address, i))
		// Last writer wins on collision, matching map-overwrite semantics.
		if _, exists := r.owners[token]; !exists {
			r.tokens = append(r.tokens, token)
		}
		r.owners[token] = idx
	}
	sort.Slice(r.tokens, func(i, j int) bool { return r.tokens[i] < r.tokens[j] })
}

// Owner returns the address of the node owning value: the node at the first
// token >= hash(value), wrapping to the smallest token if none exists.
// Calling Owner on an empty ring is a programmer error.
func (r *Ring) Owner(value string) string {
	if len(r.tokens) == 0 {
		panic("cluster: Owner called on empty ring")
	}
	h := Hash(value)
	i := sort.Search(len(r.tokens), func(i int) bool { return r.tokens[i] >= h })
	if i == len(r.tokens) {
		i = 0
	}
	return r.nodes[r.owners[r.tokens[i]]].Address
}

// NodeCount returns the number of distinct nodes in the ring.
func (r *Ring) NodeCount() int {
	return len(r.nodes)
}

// Nodes returns a copy of the ring's current member list, in insertion order.
func (r *Ring) Nodes() []Node {
	out := make([]Node, len(r.nodes))
	copy(out, r.nodes)
	return out
}

// RangesFor returns one Range per ring entry owned by address, in ring
// order. Each range's start is the previous ring token (or 0 for the first
// ring entry — this is deliberately not a wrap-around close against the
// last token) and its end is the owning token itself. Batch handlers treat
// both ends as inclusive.
func (r *Ring) RangesFor(address string) []protocol.Range {
	var ranges []protocol.Range
	prev := uint64(0)
	for i, token := range r.tokens {
		owner := r.nodes[r.owners[token]].Address
		if owner == address {
			start := uint64(0)
			if i > 0 {
				start = prev
			}
			ranges = append(ranges, protocol.Range{Start: start, End: token})
		}
		prev = token
	}
	return ranges
}
