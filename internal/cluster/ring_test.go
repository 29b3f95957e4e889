package cluster

import "testing"

func TestRingOwnershipDeterminism(t *testing.T) {
	r := NewRing([]string{"127.0.0.1:3000", "127.0.0.1:3001", "127.0.0.1:3002"})

	got := r.Owner("test_key")
	want := "127.0.0.1:3002"
	if got != want {
		t.Fatalf("Owner(test_key) = %s, want %s", got, want)
	}

	// Stable across repeated calls.
	if again := r.Owner("test_key"); again != got {
		t.Fatalf("Owner(test_key) not stable: %s != %s", again, got)
	}
}

func TestRingNodeJoinReassignment(t *testing.T) {
	r := NewRing([]string{"127.0.0.1:3000", "127.0.0.1:3001", "127.0.0.1:3002"})
	r.AddNode(Node{Address: "127.0.0.1:3003"})

	got := r.Owner("test_key1")
	want := "127.0.0.1:3003"
	if got != want {
		t.Fatalf("Owner(test_key1) = %s, want %s", got, want)
	}

	h := Hash("test_key1")
	ranges := r.RangesFor("127.0.0.1:3003")
	if len(ranges) == 0 {
		t.Fatal("expected at least one range for newly joined node")
	}

	found := false
	for _, rg := range ranges {
		if h > rg.Start && h < rg.End {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("hash(test_key1)=%d not strictly inside any range for 127.0.0.1:3003: %+v", h, ranges)
	}
}

func TestRingOwnerOnEmptyRingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Owner on empty ring")
		}
	}()
	r := &Ring{owners: make(map[uint64]int)}
	r.Owner("anything")
}

func TestRangesForOneRangePerRingToken(t *testing.T) {
	r := NewRing([]string{"a:1", "a:2", "a:3"})
	total := 0
	for _, n := range r.Nodes() {
		total += len(r.RangesFor(n.Address))
	}
	if total != Replicas*3 {
		t.Fatalf("expected %d total ranges across all nodes, got %d", Replicas*3, total)
	}
}

func TestNodeCount(t *testing.T) {
	r := NewRing([]string{"a:1", "a:2"})
	if r.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", r.NodeCount())
	}
	r.AddNode(Node{Address: "a:3"})
	if r.NodeCount() != 3 {
		t.Fatalf("NodeCount() = %d, want 3", r.NodeCount())
	}
}
