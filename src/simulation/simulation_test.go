package simulation

import (
	"bytes"
	"strings"
	"testing"

	cm "github.com/mosaicnetworks/hgcore/src/common"
	"github.com/mosaicnetworks/hgcore/src/hashgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	conf := Config{Validators: 4, Events: 120, OtherParentRate: 0.8, Seed: 3}

	steps, err := Generate(conf)
	require.NoError(t, err)
	require.Len(t, steps, 120)

	last := make(map[uint32]hashgraph.EventID)
	for i, s := range steps {
		id := hashgraph.EventID(i + 1)

		if i < conf.Validators {
			assert.Equal(t, uint32(i), s.Creator)
			assert.Equal(t, hashgraph.NoEvent, s.SelfParent)
			assert.Equal(t, hashgraph.NoEvent, s.OtherParent)
		} else {
			assert.Equal(t, last[s.Creator], s.SelfParent, "step %d self-parent", i)
			if s.OtherParent != hashgraph.NoEvent {
				require.True(t, s.OtherParent < id)
				assert.NotEqual(t, s.Creator, steps[s.OtherParent-1].Creator,
					"step %d other-parent has the same creator", i)
			}
		}

		last[s.Creator] = id
	}
}

func TestGenerateDeterministic(t *testing.T) {
	conf := Config{Validators: 3, Events: 60, OtherParentRate: 0.5, Seed: 11}

	a, err := Generate(conf)
	require.NoError(t, err)
	b, err := Generate(conf)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	conf.Seed++
	c, err := Generate(conf)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(Config{Validators: 0, Events: 10})
	assert.Error(t, err)

	_, err = Generate(Config{Validators: 5, Events: 4})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	conf := DefaultConfig()

	steps, err := Generate(conf)
	require.NoError(t, err)

	g := hashgraph.NewConsensusGraph(conf.Registry(), 1000, cm.NewTestEntry(t))
	ids, err := Run(g, steps)
	require.NoError(t, err)
	require.Len(t, ids, conf.Events)

	for i, id := range ids {
		assert.Equal(t, hashgraph.EventID(i+1), id)
	}

	assert.NoError(t, g.VerifyAncestry())
	assert.True(t, g.LastRound() > 0, "a dense simulation should reach round 1")
	assert.Empty(t, g.Registry().Late())
}

func TestRunStopsOnRejection(t *testing.T) {
	g := hashgraph.NewConsensusGraph(nil, 100, cm.NewTestEntry(t))

	steps := []Step{
		{Creator: 0},
		{Creator: 0, SelfParent: 1},
		{Creator: 1, SelfParent: 7},
		{Creator: 1},
	}

	ids, err := Run(g, steps)
	require.Error(t, err)
	assert.True(t, cm.Is(err, cm.InvalidParent))
	assert.Len(t, ids, 2)
	assert.Equal(t, 2, g.Len())
}

func TestSummarize(t *testing.T) {
	conf := Config{Validators: 4, Events: 200, OtherParentRate: 1, Seed: 5}

	steps, err := Generate(conf)
	require.NoError(t, err)

	g := hashgraph.NewConsensusGraph(conf.Registry(), 1000, cm.NewTestEntry(t))
	_, err = Run(g, steps)
	require.NoError(t, err)

	summaries, err := Summarize(g)
	require.NoError(t, err)
	require.Len(t, summaries, g.LastRound()+1)

	total := 0
	for _, s := range summaries {
		total += s.Events
		assert.Equal(t, len(s.Witnesses), len(s.Famous)+len(s.NotFamous)+len(s.Undetermined))
	}
	assert.Equal(t, g.Len(), total)

	assert.Len(t, summaries[0].Witnesses, 4)

	var buf bytes.Buffer
	Print(&buf, summaries)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(summaries))
	assert.True(t, strings.HasPrefix(lines[0], "round 0: "))
}
