package hashgraph

import (
	"fmt"
	"sync"

	cm "github.com/mosaicnetworks/hgcore/src/common"
	"github.com/mosaicnetworks/hgcore/src/peers"
	"github.com/sirupsen/logrus"
)

// ConsensusGraph is a DAG of Events together with the consensus state derived
// from it: ancestry, rounds, witnesses, strongly-see and fame.
//
// AddEvent is the single writer and is serialized by the graph's lock. Queries
// take the read lock and may run concurrently. Ancestor sets and records never
// change once inserted, so iterators returned by Ancestors remain valid after
// the lock is released.
type ConsensusGraph struct {
	sync.RWMutex

	registry *peers.Registry
	store    *EventStore
	ancestry *AncestryIndex
	ss       *StronglySeeEvaluator
	rounds   *RoundAssigner
	fame     *FameOracle

	logger *logrus.Entry
}

// NewConsensusGraph creates an empty graph over a validator registry.
// cacheSize bounds the strongly-see cache.
func NewConsensusGraph(registry *peers.Registry, cacheSize int, logger *logrus.Entry) *ConsensusGraph {
	if registry == nil {
		registry = peers.NewRegistry()
	}

	if logger == nil {
		log := logrus.New()
		log.Level = logrus.DebugLevel
		logger = logrus.NewEntry(log)
	}

	store := NewEventStore()
	ancestry := NewAncestryIndex()
	ss := NewStronglySeeEvaluator(store, ancestry, registry, cacheSize)
	rounds := NewRoundAssigner(store, registry, ss)
	fame := NewFameOracle(store, registry, rounds, ss)

	return &ConsensusGraph{
		registry: registry,
		store:    store,
		ancestry: ancestry,
		ss:       ss,
		rounds:   rounds,
		fame:     fame,
		logger:   logger,
	}
}

/*******************************************************************************
Insertion
*******************************************************************************/

// AddEvent inserts a new Event created by creator. selfParent is NoEvent for a
// genesis Event; otherParent is NoEvent when absent. Parents are local ids
// that must already be in the graph. On error nothing is modified.
func (g *ConsensusGraph) AddEvent(creator uint32,
	selfParent EventID,
	otherParent EventID,
	payload [][]byte) (EventID, error) {

	g.Lock()
	defer g.Unlock()

	rec := NewEventRecord(creator, selfParent, otherParent, payload)

	if err := g.store.Check(rec); err != nil {
		g.logger.WithFields(logrus.Fields{
			"creator":      creator,
			"self_parent":  selfParent,
			"other_parent": otherParent,
		}).WithError(err).Error("AddEvent")
		return NoEvent, err
	}

	if g.ancestry.Len() != g.store.Len() {
		err := fmt.Errorf("AncestryIndex has %d sets for %d events", g.ancestry.Len(), g.store.Len())
		g.logger.WithError(err).Error("AddEvent")
		return NoEvent, err
	}

	g.registerCreator(creator)

	id, err := g.store.Add(rec)
	if err != nil {
		return NoEvent, err
	}

	//the index was checked in sync with the store above
	if err := g.ancestry.Insert(id, rec); err != nil {
		panic(err)
	}

	round, witness := g.rounds.Assign(id, rec)

	decisions := g.fame.Insert(id)

	if !rec.Genesis && !g.registry.Sealed() {
		g.registry.Seal()
	}

	g.logger.WithFields(logrus.Fields{
		"event":        id,
		"creator":      creator,
		"self_parent":  selfParent,
		"other_parent": otherParent,
		"round":        round,
		"witness":      witness,
	}).Debug("AddEvent")

	for _, d := range decisions {
		g.logger.WithFields(logrus.Fields{
			"witness": d.Witness,
			"round":   d.Round,
			"fame":    d.Fame,
		}).Info("Fame decided")
	}

	return id, nil
}

func (g *ConsensusGraph) registerCreator(creator uint32) {
	if !g.registry.Register(creator) {
		return
	}

	if g.registry.Sealed() {
		g.logger.WithFields(logrus.Fields{
			"validator":    creator,
			"total_weight": g.registry.TotalWeight(),
		}).Warn("Validator admitted after consensus began; supermajority changed retroactively")
	}
}

/*******************************************************************************
Queries
*******************************************************************************/

func (g *ConsensusGraph) checkEvent(id EventID) error {
	if !g.store.Contains(id) {
		return cm.NewConsensusErr("ConsensusGraph", cm.UnknownEvent, id.String())
	}
	return nil
}

// Event returns the record of an Event.
func (g *ConsensusGraph) Event(id EventID) (EventRecord, error) {
	g.RLock()
	defer g.RUnlock()
	return g.store.Get(id)
}

// Round returns the round of an Event.
func (g *ConsensusGraph) Round(id EventID) (uint32, error) {
	g.RLock()
	defer g.RUnlock()
	if err := g.checkEvent(id); err != nil {
		return 0, err
	}
	return g.rounds.Round(id), nil
}

// IsWitness returns true if the Event is the witness of its round.
func (g *ConsensusGraph) IsWitness(id EventID) (bool, error) {
	g.RLock()
	defer g.RUnlock()
	if err := g.checkEvent(id); err != nil {
		return false, err
	}
	return g.rounds.IsWitness(id), nil
}

// Fame returns the fame of an Event. Non-witnesses are always Undetermined.
func (g *ConsensusGraph) Fame(id EventID) (FameStatus, error) {
	g.RLock()
	defer g.RUnlock()
	if err := g.checkEvent(id); err != nil {
		return Undetermined, err
	}
	return g.fame.Fame(id), nil
}

// Ancestors returns a lazy, restartable iterator over the ancestors of an
// Event.
func (g *ConsensusGraph) Ancestors(id EventID) (*AncestorIter, error) {
	g.RLock()
	defer g.RUnlock()
	if err := g.checkEvent(id); err != nil {
		return nil, err
	}
	return g.ancestry.Ancestors(id), nil
}

// IsAncestor returns true if y is an ancestor of x.
func (g *ConsensusGraph) IsAncestor(x, y EventID) (bool, error) {
	g.RLock()
	defer g.RUnlock()
	if err := g.checkEvent(x); err != nil {
		return false, err
	}
	if err := g.checkEvent(y); err != nil {
		return false, err
	}
	return g.ancestry.IsAncestor(x, y), nil
}

// StronglySees returns true if x strongly sees y.
func (g *ConsensusGraph) StronglySees(x, y EventID) (bool, error) {
	g.RLock()
	defer g.RUnlock()
	if err := g.checkEvent(x); err != nil {
		return false, err
	}
	if err := g.checkEvent(y); err != nil {
		return false, err
	}
	return g.ss.StronglySees(x, y), nil
}

// Validators returns the registered validators in registration order.
func (g *ConsensusGraph) Validators() []peers.Validator {
	return g.registry.Validators()
}

// Registry ...
func (g *ConsensusGraph) Registry() *peers.Registry {
	return g.registry
}

// Len returns the number of Events.
func (g *ConsensusGraph) Len() int {
	g.RLock()
	defer g.RUnlock()
	return g.store.Len()
}

// LastRound returns the highest round reached, or -1 for an empty graph.
func (g *ConsensusGraph) LastRound() int {
	g.RLock()
	defer g.RUnlock()
	return g.rounds.LastRound()
}

// RoundWitnesses returns the witnesses of a round ordered by id.
func (g *ConsensusGraph) RoundWitnesses(round uint32) []EventID {
	g.RLock()
	defer g.RUnlock()
	return g.rounds.Witnesses(round)
}

// RoundEvents returns the number of Events in a round.
func (g *ConsensusGraph) RoundEvents(round uint32) int {
	g.RLock()
	defer g.RUnlock()
	info := g.rounds.GetRound(round)
	if info == nil {
		return 0
	}
	return info.Events
}

// UndeterminedWitnesses returns the witnesses of a round still waiting for a
// fame verdict.
func (g *ConsensusGraph) UndeterminedWitnesses(round uint32) []EventID {
	g.RLock()
	defer g.RUnlock()
	return g.fame.Undetermined(round)
}

// Records returns every accepted record in insertion order. Replaying them
// through AddEvent, over a registry built from Validators in the same order,
// reproduces the graph.
func (g *ConsensusGraph) Records() []EventRecord {
	g.RLock()
	defer g.RUnlock()
	return g.store.Records()
}

// VerifyAncestry recomputes the ancestry of every Event from the parent edges
// and checks it against the incrementally maintained sets.
func (g *ConsensusGraph) VerifyAncestry() error {
	g.RLock()
	defer g.RUnlock()
	return g.ancestry.VerifyClosure(g.store.Records())
}
