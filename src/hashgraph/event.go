package hashgraph

import (
	"bytes"
	"strconv"

	"github.com/ugorji/go/codec"
)

// EventID is the local handle of an Event. Ids are assigned sequentially by
// the EventStore, starting at 1, and are never reused.
type EventID uint64

// NoEvent is the sentinel for an absent parent. It is never assigned to an
// Event.
const NoEvent EventID = 0

// String ...
func (id EventID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// EventRecord is the immutable content of an Event: who created it, which
// Events it references, and its payload of transactions.
type EventRecord struct {
	Creator     uint32
	SelfParent  EventID  //NoEvent for genesis events
	OtherParent EventID  //NoEvent if absent
	Payload     [][]byte //ordered transactions
	Genesis     bool
}

// NewEventRecord creates an EventRecord. An event without a self-parent is a
// genesis event.
func NewEventRecord(creator uint32, selfParent, otherParent EventID, payload [][]byte) EventRecord {
	return EventRecord{
		Creator:     creator,
		SelfParent:  selfParent,
		OtherParent: otherParent,
		Payload:     payload,
		Genesis:     selfParent == NoEvent,
	}
}

// Parents returns the ids of the parents that are present, self-parent first.
func (r EventRecord) Parents() []EventID {
	res := make([]EventID, 0, 2)
	if r.SelfParent != NoEvent {
		res = append(res, r.SelfParent)
	}
	if r.OtherParent != NoEvent {
		res = append(res, r.OtherParent)
	}
	return res
}

// Marshal returns the canonical JSON encoding of the EventRecord. Canonical
// encoding keeps journaled records byte-identical across runs.
func (r *EventRecord) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(r); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal ...
func (r *EventRecord) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(r)
}
