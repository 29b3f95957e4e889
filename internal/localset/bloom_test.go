package localset

import "testing"

func TestBloomSetNoFalseNegatives(t *testing.T) {
	s := NewBloomSet(1000)
	tokens := []uint64{1, 42, 1000, 999999, 7}
	for i, tok := range tokens {
		s.Add(tok, string(rune('a'+i)))
	}
	for _, tok := range tokens {
		if !s.Contains(tok) {
			t.Fatalf("Contains(%d) = false, want true (no false negatives allowed)", tok)
		}
	}
}

func TestBloomSetMissingTokenNotContained(t *testing.T) {
	s := NewBloomSet(1000)
	s.Add(1, "a")
	// A token that was never added may occasionally false-positive in the
	// bloom filter, but must never be reported present by Contains once
	// confirmed against the backing map — this one simply was never added.
	if s.Contains(999999999) {
		t.Fatal("did not expect an unrelated token to be contained")
	}
}

func TestBloomSetCountMatchesUnderlyingSet(t *testing.T) {
	s := NewBloomSet(100)
	s.Add(1, "a")
	s.Add(2, "b")
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	s.RemoveByToken(1)
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after removal", s.Count())
	}
}

func TestBloomSetAddBatch(t *testing.T) {
	s := NewBloomSet(100)
	s.AddBatch([]TokenValue{{Token: 1, Value: "a"}, {Token: 2, Value: "b"}})
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	if !s.Contains(1) || !s.Contains(2) {
		t.Fatal("expected both batched tokens present")
	}
}

func TestBloomSetRangeOperations(t *testing.T) {
	s := NewBloomSet(100)
	s.Add(100, "t1")
	s.Add(200, "t2")
	s.Add(300, "t3")

	values := s.ValuesWithTokenIn(100, 200)
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}

	removed := s.RemoveTokensIn(100, 200)
	if removed != 2 {
		t.Fatalf("RemoveTokensIn = %d, want 2", removed)
	}
}
