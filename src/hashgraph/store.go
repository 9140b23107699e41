package hashgraph

import (
	cm "github.com/mosaicnetworks/hgcore/src/common"
)

// EventStore is an append-only arena of EventRecords. The id of a record is
// its position in the arena plus one, so NoEvent never designates a record.
type EventStore struct {
	records []EventRecord
	genesis map[uint32]EventID //[creator] => genesis event
}

// NewEventStore creates an empty EventStore.
func NewEventStore() *EventStore {
	return &EventStore{
		genesis: make(map[uint32]EventID),
	}
}

// Len returns the number of stored records.
func (s *EventStore) Len() int {
	return len(s.records)
}

// Next returns the id that the next successful Add will assign.
func (s *EventStore) Next() EventID {
	return EventID(len(s.records) + 1)
}

// Check validates a record against the current content of the store without
// modifying it.
func (s *EventStore) Check(rec EventRecord) error {
	next := s.Next()

	if rec.Genesis {
		if rec.SelfParent != NoEvent || rec.OtherParent != NoEvent {
			return cm.NewConsensusErr("EventStore", cm.InvalidParent, next.String())
		}
		if _, ok := s.genesis[rec.Creator]; ok {
			return cm.NewConsensusErr("EventStore", cm.DuplicateGenesis, next.String())
		}
		return nil
	}

	if rec.SelfParent == NoEvent || rec.SelfParent >= next {
		return cm.NewConsensusErr("EventStore", cm.InvalidParent, next.String())
	}

	if rec.OtherParent >= next {
		return cm.NewConsensusErr("EventStore", cm.InvalidParent, next.String())
	}

	return nil
}

// Add validates and appends a record, returning its id. Nothing is modified if
// validation fails.
func (s *EventStore) Add(rec EventRecord) (EventID, error) {
	if err := s.Check(rec); err != nil {
		return NoEvent, err
	}

	id := s.Next()
	s.records = append(s.records, rec)

	if rec.Genesis {
		s.genesis[rec.Creator] = id
	}

	return id, nil
}

// Get returns the record with the given id.
func (s *EventStore) Get(id EventID) (EventRecord, error) {
	if !s.Contains(id) {
		return EventRecord{}, cm.NewConsensusErr("EventStore", cm.UnknownEvent, id.String())
	}
	return s.records[id-1], nil
}

// Contains ...
func (s *EventStore) Contains(id EventID) bool {
	return id != NoEvent && uint64(id) <= uint64(len(s.records))
}

// Genesis returns the genesis event of a creator.
func (s *EventStore) Genesis(creator uint32) (EventID, bool) {
	id, ok := s.genesis[creator]
	return id, ok
}

// Records returns the stored records in insertion order. The slice is a copy;
// the records themselves are immutable.
func (s *EventStore) Records() []EventRecord {
	res := make([]EventRecord, len(s.records))
	copy(res, s.records)
	return res
}

// Creator returns the creator of a stored record. The id must be valid.
func (s *EventStore) Creator(id EventID) uint32 {
	return s.records[id-1].Creator
}
