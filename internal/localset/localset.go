package localset

// Set is the interface the core requires of a node's local storage
// container, satisfied by both MapSet and BloomSet.
//
// AddBatch, ValuesInRanges, and RemoveInRanges each hold the set's lock for
// the entire call, not once per element: a concurrent Add or Check from
// another connection can never observe a partially-applied batch or
// multi-range request.
type Set interface {
	Add(token uint64, value string)
	Contains(token uint64) bool
	Count() int
	ValuesWithTokenIn(start, end uint64) []string
	RemoveByToken(token uint64) bool
	RemoveTokensIn(start, end uint64) int
	AddBatch(items []TokenValue)
	ValuesInRanges(ranges []TokenRange) []string
	RemoveInRanges(ranges []TokenRange) int
}

// TokenValue pairs a token with the value it hashes to, for batch inserts.
type TokenValue struct {
	Token uint64
	Value string
}

// TokenRange is an inclusive [Start, End] span of the token keyspace.
type TokenRange struct {
	Start, End uint64
}

var (
	_ Set = (*MapSet)(nil)
	_ Set = (*BloomSet)(nil)
)
