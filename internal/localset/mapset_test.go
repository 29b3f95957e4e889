package localset

import "testing"

func TestAddContainsCount(t *testing.T) {
	s := NewMapSet()
	if s.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", s.Count())
	}

	s.Add(1, "a")
	s.Add(2, "b")
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	if !s.Contains(1) || !s.Contains(2) {
		t.Fatal("expected both tokens present")
	}
	if s.Contains(3) {
		t.Fatal("did not expect token 3 present")
	}
}

func TestAddOverwritesOnCollision(t *testing.T) {
	s := NewMapSet()
	s.Add(1, "a")
	s.Add(1, "a") // identical hash, same value: count unchanged
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after duplicate add", s.Count())
	}
}

func TestRemoveByToken(t *testing.T) {
	s := NewMapSet()
	s.Add(5, "v")
	if !s.RemoveByToken(5) {
		t.Fatal("expected RemoveByToken to report removal")
	}
	if s.Contains(5) {
		t.Fatal("token should be gone after removal")
	}
	if s.RemoveByToken(5) {
		t.Fatal("expected second RemoveByToken to report no-op")
	}
}

func TestValuesWithTokenInInclusive(t *testing.T) {
	s := NewMapSet()
	s.Add(100, "t1")
	s.Add(200, "t2")
	s.Add(300, "t3")

	values := s.ValuesWithTokenIn(100, 200)
	if len(values) != 2 {
		t.Fatalf("expected 2 values in [100,200], got %d: %v", len(values), values)
	}
	seen := map[string]bool{}
	for _, v := range values {
		seen[v] = true
	}
	if !seen["t1"] || !seen["t2"] {
		t.Fatalf("expected t1 and t2 in range, got %v", values)
	}
}

func TestAddBatchInsertsAllUnderOneLock(t *testing.T) {
	s := NewMapSet()
	s.AddBatch([]TokenValue{{Token: 1, Value: "a"}, {Token: 2, Value: "b"}, {Token: 3, Value: "c"}})
	if s.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", s.Count())
	}
	if !s.Contains(1) || !s.Contains(2) || !s.Contains(3) {
		t.Fatal("expected all batched tokens present")
	}
}

func TestValuesInRangesAcrossMultipleSpans(t *testing.T) {
	s := NewMapSet()
	s.Add(100, "t1")
	s.Add(200, "t2")
	s.Add(300, "t3")

	values := s.ValuesInRanges([]TokenRange{{Start: 100, End: 100}, {Start: 300, End: 300}})
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d: %v", len(values), values)
	}
}

func TestRemoveInRangesAcrossMultipleSpans(t *testing.T) {
	s := NewMapSet()
	s.Add(100, "t1")
	s.Add(200, "t2")
	s.Add(300, "t3")

	removed := s.RemoveInRanges([]TokenRange{{Start: 100, End: 100}, {Start: 300, End: 300}})
	if removed != 2 {
		t.Fatalf("RemoveInRanges = %d, want 2", removed)
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after removal", s.Count())
	}
	if !s.Contains(200) {
		t.Fatal("expected token 200 to survive removal")
	}
}

func TestRemoveTokensIn(t *testing.T) {
	s := NewMapSet()
	s.Add(100, "t1")
	s.Add(200, "t2")
	s.Add(300, "t3")

	removed := s.RemoveTokensIn(100, 200)
	if removed != 2 {
		t.Fatalf("RemoveTokensIn = %d, want 2", removed)
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after removal", s.Count())
	}
	if !s.Contains(300) {
		t.Fatal("expected token 300 to survive removal")
	}
}
