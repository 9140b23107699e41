package hashgraph

// RoundInfo records the Events assigned to a round and, among them, its
// witnesses in insertion order.
type RoundInfo struct {
	Index     uint32
	Events    int
	witnesses []EventID
}

// NewRoundInfo ...
func NewRoundInfo(index uint32) *RoundInfo {
	return &RoundInfo{
		Index: index,
	}
}

// AddEvent ...
func (r *RoundInfo) AddEvent(x EventID, witness bool) {
	r.Events++
	if witness {
		r.witnesses = append(r.witnesses, x)
	}
}

// Witnesses returns a copy of the round's witnesses, ordered by id.
func (r *RoundInfo) Witnesses() []EventID {
	res := make([]EventID, len(r.witnesses))
	copy(res, r.witnesses)
	return res
}
