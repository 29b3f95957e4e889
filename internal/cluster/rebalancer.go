package cluster

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"kvset/internal/connection"
	"kvset/internal/protocol"
)

// Rebalancer drives the three-phase migration that runs when a new node
// joins: GetBatch from every existing owner, AddBatch to the new node,
// then DropBatch from every existing owner. It holds its own private ring;
// nothing about a rebalance is communicated to the nodes themselves beyond
// the batch RPCs.
type Rebalancer struct {
	ring                 *Ring
	log                  *logrus.Logger
	compressionThreshold int
}

// NewRebalancer builds a rebalancer around an initial membership list.
func NewRebalancer(addresses []string, log *logrus.Logger, compressionThreshold int) *Rebalancer {
	if log == nil {
		log = logrus.New()
	}
	return &Rebalancer{ring: NewRing(addresses), log: log, compressionThreshold: compressionThreshold}
}

// Ring exposes the rebalancer's current ring view, primarily for tests and
// for printing membership.
func (rb *Rebalancer) Ring() *Ring { return rb.ring }

// AddNode folds a newly joined node into the rebalancer's private ring. It
// must be called before Rebalance so RangesFor reflects the new member.
func (rb *Rebalancer) AddNode(address string) {
	rb.ring.AddNode(Node{Address: address})
}

// Rebalance migrates every value now owned by newNode away from its prior
// owners. newNode must already have been added to the ring via AddNode.
//
// The three phases are strictly sequential and the function aborts cleanly
// (returning an error, not panicking) if any RPC fails. DropBatch is only
// ever issued after AddBatch has succeeded: a failure between get and add
// loses no data, since the old owners still hold it; a crash between add
// and drop leaves values duplicated but never lost. Aborting before drop
// when add fails preserves that guarantee.
func (rb *Rebalancer) Rebalance(newNode string, oldOwners []string) error {
	ranges := rb.ring.RangesFor(newNode)
	if len(ranges) == 0 {
		rb.log.WithField("node", newNode).Info("no ranges owned by new node, nothing to migrate")
		return nil
	}

	var migrated []string
	for _, owner := range oldOwners {
		if owner == newNode {
			continue
		}
		values, err := rb.getBatch(owner, ranges)
		if err != nil {
			return fmt.Errorf("cluster: get batch from %s: %w", owner, err)
		}
		migrated = append(migrated, values...)
	}

	if err := rb.addBatch(newNode, migrated); err != nil {
		return fmt.Errorf("cluster: add batch to %s: %w", newNode, err)
	}

	for _, owner := range oldOwners {
		if owner == newNode {
			continue
		}
		if err := rb.dropBatch(owner, ranges); err != nil {
			return fmt.Errorf("cluster: drop batch on %s: %w", owner, err)
		}
	}

	rb.log.WithFields(logrus.Fields{
		"node":    newNode,
		"values":  len(migrated),
		"ranges":  len(ranges),
		"sources": oldOwners,
	}).Info("rebalance complete")
	return nil
}

func (rb *Rebalancer) getBatch(address string, ranges []protocol.Range) ([]string, error) {
	conn, err := connection.Dial(address, rb.compressionThreshold)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	resp, err := conn.SendRequestWithResponse(protocol.GetBatchRequest{Ranges: ranges})
	if err != nil {
		return nil, err
	}
	arr, ok := resp.(protocol.ArrayResponse)
	if !ok {
		return nil, fmt.Errorf("cluster: expected Array response from %s, got %T", address, resp)
	}
	return arr.Values, nil
}

func (rb *Rebalancer) addBatch(address string, values []string) error {
	conn, err := connection.Dial(address, rb.compressionThreshold)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.SendRequestWithResponse(protocol.AddBatchRequest{Values: values})
	return err
}

func (rb *Rebalancer) dropBatch(address string, ranges []protocol.Range) error {
	conn, err := connection.Dial(address, rb.compressionThreshold)
	if err != nil {
		return err
	}
	defer conn.Close()

	resp, err := conn.SendRequestWithResponse(protocol.DropBatchRequest{Ranges: ranges})
	if err != nil {
		return err
	}
	if _, ok := resp.(protocol.StringResponse); !ok {
		return fmt.Errorf("cluster: expected String response from %s, got %T", address, resp)
	}
	return nil
}
