package simulation

import (
	"fmt"
	"io"
	"strings"

	"github.com/mosaicnetworks/hgcore/src/hashgraph"
)

// RoundSummary aggregates the consensus state of one round.
type RoundSummary struct {
	Round        uint32
	Events       int
	Witnesses    []hashgraph.EventID
	Famous       []hashgraph.EventID
	NotFamous    []hashgraph.EventID
	Undetermined []hashgraph.EventID
}

// Summarize reads the per-round state of a graph.
func Summarize(g *hashgraph.ConsensusGraph) ([]RoundSummary, error) {
	res := []RoundSummary{}

	for r := 0; r <= g.LastRound(); r++ {
		round := uint32(r)
		s := RoundSummary{
			Round:        round,
			Events:       g.RoundEvents(round),
			Witnesses:    g.RoundWitnesses(round),
			Famous:       []hashgraph.EventID{},
			NotFamous:    []hashgraph.EventID{},
			Undetermined: []hashgraph.EventID{},
		}

		for _, w := range s.Witnesses {
			f, err := g.Fame(w)
			if err != nil {
				return nil, err
			}
			switch f {
			case hashgraph.Famous:
				s.Famous = append(s.Famous, w)
			case hashgraph.NotFamous:
				s.NotFamous = append(s.NotFamous, w)
			default:
				s.Undetermined = append(s.Undetermined, w)
			}
		}

		res = append(res, s)
	}

	return res, nil
}

// Print writes one line per round.
func Print(w io.Writer, summaries []RoundSummary) {
	for _, s := range summaries {
		fmt.Fprintf(w, "round %d: events=%d witnesses=[%s] famous=[%s] not-famous=[%s] undetermined=[%s]\n",
			s.Round,
			s.Events,
			join(s.Witnesses),
			join(s.Famous),
			join(s.NotFamous),
			join(s.Undetermined))
	}
}

func join(ids []hashgraph.EventID) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = id.String()
	}
	return strings.Join(s, " ")
}
