package hashgraph

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/mosaicnetworks/hgcore/src/peers"
)

func TestRound(t *testing.T) {
	g, index := initFourValidatorGraph(t)

	expected := []struct {
		name    string
		round   uint32
		witness bool
	}{
		{"g0", 0, true},
		{"g1", 0, true},
		{"g2", 0, true},
		{"g3", 0, true},
		{"e5", 0, false},
		{"e6", 0, false},
		{"e7", 0, false},
		{"e8", 0, false},
		{"w0", 1, true},
		{"w1", 1, true},
		{"w3", 1, true},
	}

	for _, exp := range expected {
		r, err := g.Round(index[exp.name])
		if err != nil {
			t.Fatal(err)
		}
		if r != exp.round {
			t.Fatalf("%s round should be %d, not %d", exp.name, exp.round, r)
		}

		w, err := g.IsWitness(index[exp.name])
		if err != nil {
			t.Fatal(err)
		}
		if w != exp.witness {
			t.Fatalf("%s witness should be %v, not %v", exp.name, exp.witness, w)
		}
	}

	if l := g.LastRound(); l != 1 {
		t.Fatalf("last round should be 1, not %d", l)
	}

	expectedWitnesses := [][]EventID{
		{index["g0"], index["g1"], index["g2"], index["g3"]},
		{index["w0"], index["w1"], index["w3"]},
		{},
	}
	for r, exp := range expectedWitnesses {
		if w := g.RoundWitnesses(uint32(r)); !reflect.DeepEqual(w, exp) {
			t.Fatalf("round %d witnesses should be %v, not %v", r, exp, w)
		}
	}

	if n := g.RoundEvents(0); n != 8 {
		t.Fatalf("round 0 should have 8 events, not %d", n)
	}
	if n := g.RoundEvents(1); n != 3 {
		t.Fatalf("round 1 should have 3 events, not %d", n)
	}
}

func TestLastRoundEmpty(t *testing.T) {
	g := createGraph(nil, t)
	if l := g.LastRound(); l != -1 {
		t.Fatalf("last round of an empty graph should be -1, not %d", l)
	}
	if n := g.RoundEvents(0); n != 0 {
		t.Fatalf("empty graph should have no round 0 events, not %d", n)
	}
}

// TestRoundProperties checks, on random DAGs, that rounds never decrease along
// parent edges and that an Event is a witness exactly when it is genesis or
// its round exceeds that of its parents, which happens exactly when it
// strongly sees a supermajority of the witnesses of its parents' round.
func TestRoundProperties(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		registry := testRegistry(1, 1, 1, 1, 1)
		g := createGraph(registry, t)
		randomGraph(g, rand.New(rand.NewSource(seed)), 5, 200, t)

		threshold := registry.SuperMajority()

		for _, id := range eventIDs(g) {
			rec, _ := g.Event(id)
			round, _ := g.Round(id)
			witness, _ := g.IsWitness(id)

			if rec.Genesis {
				if round != 0 || !witness {
					t.Fatalf("seed %d: genesis %d should be a round 0 witness", seed, id)
				}
				continue
			}

			base := uint32(0)
			for _, p := range rec.Parents() {
				pr, _ := g.Round(p)
				if pr > round {
					t.Fatalf("seed %d: event %d round %d below parent %d round %d", seed, id, round, p, pr)
				}
				if pr > base {
					base = pr
				}
			}

			if round > base+1 {
				t.Fatalf("seed %d: event %d round %d jumps from parent round %d", seed, id, round, base)
			}

			if witness != (round == base+1) {
				t.Fatalf("seed %d: event %d witness %v but round %d, parent round %d", seed, id, witness, round, base)
			}

			seen := stronglySeenWeight(g, registry, id, base)
			if witness != (seen >= threshold) {
				t.Fatalf("seed %d: event %d witness %v but strongly sees weight %d of round %d", seed, id, witness, seen, base)
			}
		}
	}
}

func eventIDs(g *ConsensusGraph) []EventID {
	res := make([]EventID, g.Len())
	for i := range res {
		res[i] = EventID(i + 1)
	}
	return res
}

// stronglySeenWeight sums the weights of the distinct creators of round
// witnesses strongly seen by x.
func stronglySeenWeight(g *ConsensusGraph, registry *peers.Registry, x EventID, round uint32) uint64 {
	creators := make(map[uint32]bool)
	var weight uint64
	for _, w := range g.RoundWitnesses(round) {
		if ss, _ := g.StronglySees(x, w); !ss {
			continue
		}
		rec, _ := g.Event(w)
		if !creators[rec.Creator] {
			creators[rec.Creator] = true
			weight += registry.Weight(rec.Creator)
		}
	}
	return weight
}
