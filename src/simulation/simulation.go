package simulation

import (
	"fmt"
	"math/rand"

	"github.com/mosaicnetworks/hgcore/src/hashgraph"
	"github.com/mosaicnetworks/hgcore/src/peers"
)

// Config controls the shape of a generated DAG.
type Config struct {
	Validators      int     `mapstructure:"validators"`
	Events          int     `mapstructure:"events"`
	OtherParentRate float64 `mapstructure:"other-parent-rate"`
	Seed            int64   `mapstructure:"seed"`
}

// DefaultConfig ...
func DefaultConfig() Config {
	return Config{
		Validators:      4,
		Events:          100,
		OtherParentRate: 0.9,
		Seed:            1,
	}
}

// Step is one insertion of a generated sequence.
type Step struct {
	Creator     uint32
	SelfParent  hashgraph.EventID
	OtherParent hashgraph.EventID
	Payload     [][]byte
}

// Inserter is anything that accepts Events the way a ConsensusGraph does.
type Inserter interface {
	AddEvent(creator uint32,
		selfParent hashgraph.EventID,
		otherParent hashgraph.EventID,
		payload [][]byte) (hashgraph.EventID, error)
}

// Registry returns a registry of conf.Validators validators of default weight,
// with ids 0 to conf.Validators-1.
func (conf Config) Registry() *peers.Registry {
	r := peers.NewRegistry()
	for i := 0; i < conf.Validators; i++ {
		r.Register(uint32(i))
	}
	return r
}

// Generate produces a deterministic sequence of conf.Events steps. The first
// steps are the genesis Events of every validator, in id order. Afterwards a
// random validator extends its own chain and, with probability
// OtherParentRate, references a random Event of another validator.
//
// Step i is expected to receive id i+1, which is what a fresh graph assigns.
func Generate(conf Config) ([]Step, error) {
	if conf.Validators <= 0 {
		return nil, fmt.Errorf("simulation needs at least one validator, got %d", conf.Validators)
	}
	if conf.Events < conf.Validators {
		return nil, fmt.Errorf("%d events cannot hold the genesis events of %d validators",
			conf.Events, conf.Validators)
	}

	r := rand.New(rand.NewSource(conf.Seed))

	steps := make([]Step, 0, conf.Events)
	creators := make([]uint32, 0, conf.Events) //[id-1] => creator
	last := make([]hashgraph.EventID, conf.Validators)

	add := func(s Step) {
		steps = append(steps, s)
		creators = append(creators, s.Creator)
		last[s.Creator] = hashgraph.EventID(len(steps))
	}

	for v := 0; v < conf.Validators; v++ {
		add(Step{
			Creator: uint32(v),
			Payload: payload(len(steps)),
		})
	}

	for len(steps) < conf.Events {
		c := uint32(r.Intn(conf.Validators))

		op := hashgraph.NoEvent
		if conf.Validators > 1 && r.Float64() < conf.OtherParentRate {
			//rejection sampling terminates because every other validator
			//has at least its genesis event
			for {
				candidate := r.Intn(len(steps))
				if creators[candidate] != c {
					op = hashgraph.EventID(candidate + 1)
					break
				}
			}
		}

		add(Step{
			Creator:     c,
			SelfParent:  last[c],
			OtherParent: op,
			Payload:     payload(len(steps)),
		})
	}

	return steps, nil
}

func payload(i int) [][]byte {
	return [][]byte{[]byte(fmt.Sprintf("tx%d", i))}
}

// Run inserts the steps in order and returns the assigned ids. It stops at the
// first rejected step.
func Run(g Inserter, steps []Step) ([]hashgraph.EventID, error) {
	ids := make([]hashgraph.EventID, 0, len(steps))
	for i, s := range steps {
		id, err := g.AddEvent(s.Creator, s.SelfParent, s.OtherParent, s.Payload)
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
