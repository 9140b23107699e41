package journal

import (
	"fmt"

	"github.com/mosaicnetworks/hgcore/src/hashgraph"
	"github.com/sirupsen/logrus"
)

// Recorder inserts Events into a ConsensusGraph and appends every accepted
// record to a Journal, in acceptance order. It must be the only writer of the
// graph.
//
// Validators admitted to the sealed registry are journaled with their
// admission point. Admissions are detected on the next AddEvent or Flush, so
// an admission made between two Events is attributed to the gap where it
// happened.
type Recorder struct {
	graph      *hashgraph.ConsensusGraph
	journal    Journal
	validators int
	admissions []Admission
	logger     *logrus.Entry
}

// NewRecorder journals the current validators of g and returns a Recorder
// ready to accept Events. The graph must be empty.
func NewRecorder(g *hashgraph.ConsensusGraph, j Journal, logger *logrus.Entry) (*Recorder, error) {
	if g.Len() != 0 {
		return nil, fmt.Errorf("cannot record a graph that already has %d events", g.Len())
	}
	if j.Len() != 0 {
		return nil, fmt.Errorf("journal already has %d records", j.Len())
	}

	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	r := &Recorder{
		graph:   g,
		journal: j,
		logger:  logger,
	}

	if err := r.syncValidators(hashgraph.NoEvent); err != nil {
		return nil, err
	}

	return r, nil
}

// AddEvent inserts an Event into the graph and journals it if it was
// accepted. Rejected Events are not journaled.
func (r *Recorder) AddEvent(creator uint32,
	selfParent hashgraph.EventID,
	otherParent hashgraph.EventID,
	payload [][]byte) (hashgraph.EventID, error) {

	//registrations made since the previous Event
	if err := r.Flush(); err != nil {
		return hashgraph.NoEvent, err
	}

	id, err := r.graph.AddEvent(creator, selfParent, otherParent, payload)
	if err != nil {
		return id, err
	}

	rec, err := r.graph.Event(id)
	if err != nil {
		return id, err
	}

	if err := r.journal.Append(id, rec); err != nil {
		r.logger.WithField("event", id).WithError(err).Error("Journal append")
		return id, fmt.Errorf("journal: %w", err)
	}

	//the graph admits an unknown creator right before inserting its Event
	if err := r.syncValidators(id - 1); err != nil {
		return id, fmt.Errorf("journal validators: %w", err)
	}

	return id, nil
}

// Flush journals the validators registered since the last Event. Call it
// before closing the journal if the registry may have grown after the last
// AddEvent.
func (r *Recorder) Flush() error {
	if err := r.syncValidators(hashgraph.EventID(r.graph.Len())); err != nil {
		return fmt.Errorf("journal validators: %w", err)
	}
	return nil
}

// Graph ...
func (r *Recorder) Graph() *hashgraph.ConsensusGraph {
	return r.graph
}

// syncValidators journals the registry again if it grew since the last call.
// New late validators are recorded as admitted after the given Event.
func (r *Recorder) syncValidators(after hashgraph.EventID) error {
	registry := r.graph.Registry()
	late := registry.Late()

	if registry.Len() == r.validators && len(late) == len(r.admissions) && r.validators > 0 {
		return nil
	}

	admissions := r.admissions
	for _, id := range late[len(r.admissions):] {
		admissions = append(admissions, Admission{ID: id, After: after})
	}

	if err := r.journal.SetValidators(registry.Validators(), admissions); err != nil {
		return err
	}

	r.validators = registry.Len()
	r.admissions = admissions

	return nil
}
