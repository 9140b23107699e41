package hashgraph

import (
	"github.com/mosaicnetworks/hgcore/src/peers"
)

// RoundAssigner computes the round and witness flag of every Event when it is
// inserted.
//
// A genesis Event is a round 0 witness. Any other Event starts from the
// highest round of its parents. If it strongly sees witnesses of that round
// whose distinct creators hold a supermajority of the stake, it moves to the
// next round and becomes a witness of it.
type RoundAssigner struct {
	store    *EventStore
	registry *peers.Registry
	ss       *StronglySeeEvaluator

	rounds  []uint32 //[id-1] => round
	witness []bool   //[id-1] => witness
	infos   []*RoundInfo
}

// NewRoundAssigner ...
func NewRoundAssigner(store *EventStore,
	registry *peers.Registry,
	ss *StronglySeeEvaluator) *RoundAssigner {

	return &RoundAssigner{
		store:    store,
		registry: registry,
		ss:       ss,
	}
}

// Assign computes and records the round and witness flag of the Event id,
// whose ancestry must already be indexed.
func (ra *RoundAssigner) Assign(id EventID, rec EventRecord) (uint32, bool) {
	round, witness := ra.compute(id, rec)

	ra.rounds = append(ra.rounds, round)
	ra.witness = append(ra.witness, witness)

	for uint32(len(ra.infos)) <= round {
		ra.infos = append(ra.infos, NewRoundInfo(uint32(len(ra.infos))))
	}
	ra.infos[round].AddEvent(id, witness)

	return round, witness
}

func (ra *RoundAssigner) compute(id EventID, rec EventRecord) (uint32, bool) {
	if rec.Genesis {
		return 0, true
	}

	base := ra.Round(rec.SelfParent)
	if rec.OtherParent != NoEvent {
		if opRound := ra.Round(rec.OtherParent); opRound > base {
			base = opRound
		}
	}

	threshold := ra.registry.SuperMajority()
	seen := make(map[uint32]bool)
	var weight uint64

	for _, w := range ra.infos[base].witnesses {
		c := ra.store.Creator(w)
		if seen[c] || !ra.ss.StronglySees(id, w) {
			continue
		}
		seen[c] = true
		weight += ra.registry.Weight(c)
		if weight >= threshold {
			return base + 1, true
		}
	}

	return base, false
}

// Round returns the round of an assigned Event.
func (ra *RoundAssigner) Round(id EventID) uint32 {
	return ra.rounds[id-1]
}

// IsWitness ...
func (ra *RoundAssigner) IsWitness(id EventID) bool {
	return ra.witness[id-1]
}

// LastRound returns the highest round assigned so far, or -1 before the first
// Event.
func (ra *RoundAssigner) LastRound() int {
	return len(ra.infos) - 1
}

// GetRound returns the RoundInfo of a round, or nil if no Event reached it.
func (ra *RoundAssigner) GetRound(round uint32) *RoundInfo {
	if int(round) >= len(ra.infos) {
		return nil
	}
	return ra.infos[round]
}

// Witnesses returns the witnesses of a round ordered by id.
func (ra *RoundAssigner) Witnesses(round uint32) []EventID {
	info := ra.GetRound(round)
	if info == nil {
		return []EventID{}
	}
	return info.Witnesses()
}
