package journal

import (
	"sync"

	cm "github.com/mosaicnetworks/hgcore/src/common"
	"github.com/mosaicnetworks/hgcore/src/hashgraph"
	"github.com/mosaicnetworks/hgcore/src/peers"
)

// InmemJournal keeps the journal in memory.
type InmemJournal struct {
	sync.RWMutex

	validators []peers.Validator
	late       []Admission
	entries    []Entry
}

// NewInmemJournal ...
func NewInmemJournal() *InmemJournal {
	return &InmemJournal{}
}

// SetValidators implements the Journal interface
func (j *InmemJournal) SetValidators(validators []peers.Validator, late []Admission) error {
	j.Lock()
	defer j.Unlock()
	j.validators = append([]peers.Validator{}, validators...)
	j.late = append([]Admission{}, late...)
	return nil
}

// Validators implements the Journal interface
func (j *InmemJournal) Validators() ([]peers.Validator, []Admission, error) {
	j.RLock()
	defer j.RUnlock()
	return append([]peers.Validator{}, j.validators...), append([]Admission{}, j.late...), nil
}

// Append implements the Journal interface. Ids must be appended in sequence.
func (j *InmemJournal) Append(id hashgraph.EventID, rec hashgraph.EventRecord) error {
	j.Lock()
	defer j.Unlock()

	if id != hashgraph.EventID(len(j.entries)+1) {
		return cm.NewConsensusErr("InmemJournal", cm.ReplayMismatch, id.String())
	}

	j.entries = append(j.entries, Entry{ID: id, Record: rec})

	return nil
}

// Record implements the Journal interface
func (j *InmemJournal) Record(id hashgraph.EventID) (hashgraph.EventRecord, error) {
	j.RLock()
	defer j.RUnlock()

	if id == hashgraph.NoEvent || int(id) > len(j.entries) {
		return hashgraph.EventRecord{}, cm.NewConsensusErr("InmemJournal", cm.KeyNotFound, id.String())
	}

	return j.entries[id-1].Record, nil
}

// Entries implements the Journal interface
func (j *InmemJournal) Entries() ([]Entry, error) {
	j.RLock()
	defer j.RUnlock()
	return append([]Entry{}, j.entries...), nil
}

// Len implements the Journal interface
func (j *InmemJournal) Len() int {
	j.RLock()
	defer j.RUnlock()
	return len(j.entries)
}

// Close implements the Journal interface
func (j *InmemJournal) Close() error {
	return nil
}
