package journal

import (
	"github.com/mosaicnetworks/hgcore/src/hashgraph"
	"github.com/mosaicnetworks/hgcore/src/peers"
)

// Entry is a journaled record with the id the graph assigned to it.
type Entry struct {
	ID     hashgraph.EventID
	Record hashgraph.EventRecord
}

// Admission records that a validator joined the sealed registry once After
// Events had been accepted, that is before Event After+1 was inserted.
type Admission struct {
	ID    uint32
	After hashgraph.EventID
}

// Journal captures, in acceptance order, everything needed to rebuild a
// ConsensusGraph: the validator registry and the accepted records.
//
// late lists the validators that were admitted after the registry was sealed,
// with the point of their admission. Replay registers them again at that
// point instead of up front.
type Journal interface {
	SetValidators(validators []peers.Validator, late []Admission) error
	Validators() ([]peers.Validator, []Admission, error)
	Append(id hashgraph.EventID, rec hashgraph.EventRecord) error
	Record(id hashgraph.EventID) (hashgraph.EventRecord, error)
	Entries() ([]Entry, error)
	Len() int
	Close() error
}
