// Package cluster implements the consistent-hash ring that maps values to
// owning storage nodes, and the rebalancer that migrates ownership when a
// node joins.
package cluster

// Node identifies one storage node by its dial address. Nodes carry no
// other identity; equality is by address.
type Node struct {
	Address string
}
