package journal

import (
	"fmt"

	cm "github.com/mosaicnetworks/hgcore/src/common"
	"github.com/mosaicnetworks/hgcore/src/hashgraph"
	"github.com/mosaicnetworks/hgcore/src/peers"
	"github.com/sirupsen/logrus"
)

// Replay rebuilds a ConsensusGraph from a Journal. Validators are registered
// in their journaled order with their journaled weights. Late validators are
// registered at their admission point, so the supermajority changes at the
// same Events as it did originally. Every record must receive the id it was
// journaled with.
func Replay(j Journal, cacheSize int, logger *logrus.Entry) (*hashgraph.ConsensusGraph, error) {
	validators, late, err := j.Validators()
	if err != nil {
		return nil, fmt.Errorf("reading validators: %w", err)
	}

	isLate := make(map[uint32]bool, len(late))
	for _, a := range late {
		isLate[a.ID] = true
	}

	weights := make(map[uint32]uint64, len(validators))
	registry := peers.NewRegistry()
	for _, v := range validators {
		weights[v.ID] = v.Weight
		if !isLate[v.ID] {
			registry.RegisterWeighted(v.ID, v.Weight)
		}
	}

	//admissions are journaled in order
	pending := late
	admit := func(upTo hashgraph.EventID) {
		for len(pending) > 0 && pending[0].After <= upTo {
			registry.RegisterWeighted(pending[0].ID, weights[pending[0].ID])
			pending = pending[1:]
		}
	}

	entries, err := j.Entries()
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	g := hashgraph.NewConsensusGraph(registry, cacheSize, logger)

	for _, e := range entries {
		admit(e.ID - 1)

		id, err := g.AddEvent(e.Record.Creator,
			e.Record.SelfParent,
			e.Record.OtherParent,
			e.Record.Payload)
		if err != nil {
			return nil, fmt.Errorf("replaying record %d: %w", e.ID, err)
		}
		if id != e.ID {
			return nil, cm.NewConsensusErr("Replay", cm.ReplayMismatch,
				fmt.Sprintf("journaled %d, assigned %d", e.ID, id))
		}
	}

	//validators admitted after the last Event
	for _, a := range pending {
		registry.RegisterWeighted(a.ID, weights[a.ID])
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"events":     g.Len(),
			"validators": registry.Len(),
			"last_round": g.LastRound(),
		}).Info("Replayed journal")
	}

	return g, nil
}
