package hashgraph

import (
	"fmt"
	"math/rand"
	"testing"

	cm "github.com/mosaicnetworks/hgcore/src/common"
	"github.com/mosaicnetworks/hgcore/src/peers"
)

var cacheSize = 100

type play struct {
	creator     uint32
	selfParent  string
	otherParent string
	name        string
}

func testRegistry(weights ...uint64) *peers.Registry {
	r := peers.NewRegistry()
	for i, w := range weights {
		r.RegisterWeighted(uint32(i), w)
	}
	return r
}

func createGraph(registry *peers.Registry, t testing.TB) *ConsensusGraph {
	return NewConsensusGraph(registry, cacheSize, cm.NewTestEntry(t))
}

func playEvents(plays []play, g *ConsensusGraph, t testing.TB) map[string]EventID {
	index := make(map[string]EventID)
	for _, p := range plays {
		id, err := g.AddEvent(p.creator,
			index[p.selfParent],
			index[p.otherParent],
			[][]byte{[]byte(p.name)})
		if err != nil {
			t.Fatalf("ERROR inserting event %s: %s", p.name, err)
		}
		index[p.name] = id
	}
	return index
}

// Four validators of weight 1, so the supermajority is 3. e5 to e8 stay in
// round 0; w0, w1 and w3 each merge round 0 Events that strongly see g0, g1
// and g2 and become round 1 witnesses. None of them strongly sees g3.
//
// After w3, g0 g1 and g2 are Famous and g3 is NotFamous.
var fourValidatorPlays = []play{
	{0, "", "", "g0"},     //1
	{1, "", "", "g1"},     //2
	{2, "", "", "g2"},     //3
	{3, "", "", "g3"},     //4
	{1, "g1", "g0", "e5"}, //5
	{2, "g2", "e5", "e6"}, //6
	{3, "g3", "e6", "e7"}, //7
	{1, "e5", "e6", "e8"}, //8
	{0, "g0", "e7", "w0"}, //9
	{1, "e8", "e7", "w1"}, //10
	{3, "e7", "e8", "w3"}, //11
}

func initFourValidatorGraph(t testing.TB) (*ConsensusGraph, map[string]EventID) {
	g := createGraph(testRegistry(1, 1, 1, 1), t)
	index := playEvents(fourValidatorPlays, g, t)
	return g, index
}

// randomGraph inserts n Events from the given number of creators. Each creator
// starts with a genesis Event and then extends its own chain, usually with an
// other-parent picked at random among all existing Events.
func randomGraph(g *ConsensusGraph, r *rand.Rand, creators, n int, t testing.TB) {
	last := make(map[uint32]EventID)
	for g.Len() < n {
		c := uint32(r.Intn(creators))
		sp, ok := last[c]

		op := NoEvent
		if ok && r.Intn(4) > 0 {
			op = EventID(r.Intn(g.Len()) + 1)
		}

		id, err := g.AddEvent(c, sp, op, [][]byte{[]byte(fmt.Sprintf("tx%d", g.Len()))})
		if err != nil {
			t.Fatalf("ERROR inserting random event %d: %s", g.Len()+1, err)
		}
		last[c] = id
	}
}
