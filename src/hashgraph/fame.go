package hashgraph

import (
	"fmt"
	"sync/atomic"

	"github.com/mosaicnetworks/hgcore/src/peers"
)

// FameStatus is the verdict of virtual voting on a witness.
type FameStatus int32

const (
	// Undetermined means the voting round has not reached a supermajority
	// either way yet. It is also the status of every non-witness.
	Undetermined FameStatus = iota
	// Famous ...
	Famous
	// NotFamous ...
	NotFamous
)

var fameStatuses = []string{"Undetermined", "Famous", "NotFamous"}

// String ...
func (f FameStatus) String() string {
	if f >= 0 && int(f) < len(fameStatuses) {
		return fameStatuses[f]
	}
	return fmt.Sprintf("FameStatus(%d)", int32(f))
}

// Decided ...
func (f FameStatus) Decided() bool {
	return f != Undetermined
}

// Decision is a fame verdict reached during an insertion.
type Decision struct {
	Witness EventID
	Round   uint32
	Fame    FameStatus
}

// FameOracle decides the fame of witnesses by a single round of virtual
// voting. The witnesses of round r+1 vote on each witness w of round r, one
// vote per creator: "see" if the voter strongly sees w, "not-see" otherwise. w
// is Famous once the "see" side holds a supermajority of the stake, and
// NotFamous once the "not-see" side does. A decided status never changes.
//
// TODO: escalate undecided witnesses to later voting rounds with a coin round
// fallback, as in the full virtual-voting algorithm.
type FameOracle struct {
	store    *EventStore
	registry *peers.Registry
	rounds   *RoundAssigner
	ss       *StronglySeeEvaluator

	fame []int32 //[id-1] => FameStatus, accessed atomically
}

// NewFameOracle ...
func NewFameOracle(store *EventStore,
	registry *peers.Registry,
	rounds *RoundAssigner,
	ss *StronglySeeEvaluator) *FameOracle {

	return &FameOracle{
		store:    store,
		registry: registry,
		rounds:   rounds,
		ss:       ss,
	}
}

// Fame returns the current status of an Event.
func (fo *FameOracle) Fame(id EventID) FameStatus {
	return FameStatus(atomic.LoadInt32(&fo.fame[id-1]))
}

// Insert registers a newly assigned Event and, if it is a witness, runs the
// votes it can affect: its own, against the witnesses already in the next
// round, and those of the Undetermined witnesses of the previous round, for
// which it is a new voter. It returns the decisions reached.
func (fo *FameOracle) Insert(id EventID) []Decision {
	fo.fame = append(fo.fame, int32(Undetermined))

	if !fo.rounds.IsWitness(id) {
		return nil
	}

	decisions := []Decision{}

	round := fo.rounds.Round(id)

	if d, ok := fo.Evaluate(id); ok {
		decisions = append(decisions, d)
	}

	if round > 0 {
		for _, w := range fo.rounds.Witnesses(round - 1) {
			if d, ok := fo.Evaluate(w); ok {
				decisions = append(decisions, d)
			}
		}
	}

	return decisions
}

// Evaluate tallies the votes on an Undetermined witness and records the
// verdict if one side reached a supermajority. It returns true only when the
// status changed.
func (fo *FameOracle) Evaluate(w EventID) (Decision, bool) {
	if !fo.rounds.IsWitness(w) || fo.Fame(w).Decided() {
		return Decision{}, false
	}

	round := fo.rounds.Round(w)
	voters := fo.rounds.Witnesses(round + 1)
	if len(voters) == 0 {
		return Decision{}, false
	}

	var yays, nays uint64
	voted := make(map[uint32]bool)

	//voters are ordered by id, so a creator votes with its earliest witness
	for _, v := range voters {
		c := fo.store.Creator(v)
		if voted[c] {
			continue
		}
		voted[c] = true

		if fo.ss.StronglySees(v, w) {
			yays += fo.registry.Weight(c)
		} else {
			nays += fo.registry.Weight(c)
		}
	}

	threshold := fo.registry.SuperMajority()

	var verdict FameStatus
	switch {
	case yays >= threshold:
		verdict = Famous
	case nays >= threshold:
		verdict = NotFamous
	default:
		return Decision{}, false
	}

	if !atomic.CompareAndSwapInt32(&fo.fame[w-1], int32(Undetermined), int32(verdict)) {
		return Decision{}, false
	}

	return Decision{Witness: w, Round: round, Fame: verdict}, true
}

// Undetermined returns the witnesses of a round whose fame is not decided.
func (fo *FameOracle) Undetermined(round uint32) []EventID {
	res := []EventID{}
	for _, w := range fo.rounds.Witnesses(round) {
		if !fo.Fame(w).Decided() {
			res = append(res, w)
		}
	}
	return res
}
