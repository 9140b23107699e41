package hashgraph

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// AncestryIndex maintains, for every Event, the set of all its causal
// ancestors as a bit vector indexed by EventID. A set is computed once, from
// the already final sets of the Event's parents, and never changes afterwards
// because every ancestor of an Event exists before the Event is inserted.
//
// Sets are dense, so space grows quadratically with the number of Events.
type AncestryIndex struct {
	sets []*bitset.BitSet //[id-1] => ancestors of id
}

// NewAncestryIndex ...
func NewAncestryIndex() *AncestryIndex {
	return &AncestryIndex{}
}

// Len ...
func (a *AncestryIndex) Len() int {
	return len(a.sets)
}

// Insert computes the ancestor set of a newly stored Event. id must be the
// next id of the index and the parents of rec must already be indexed.
func (a *AncestryIndex) Insert(id EventID, rec EventRecord) error {
	if int(id) != len(a.sets)+1 {
		return fmt.Errorf("ancestry of event %d inserted out of order, expected %d", id, len(a.sets)+1)
	}

	set := bitset.New(uint(id))
	for _, p := range rec.Parents() {
		set.InPlaceUnion(a.sets[p-1])
		set.Set(uint(p))
	}

	a.sets = append(a.sets, set)

	return nil
}

// IsAncestor returns true if y is an ancestor of x. An Event is not its own
// ancestor.
func (a *AncestryIndex) IsAncestor(x, y EventID) bool {
	s := a.set(x)
	if s == nil {
		return false
	}
	return s.Test(uint(y))
}

// Count returns the number of ancestors of x.
func (a *AncestryIndex) Count(x EventID) int {
	s := a.set(x)
	if s == nil {
		return 0
	}
	return int(s.Count())
}

// Ancestors returns a lazy iterator over the ancestors of x.
func (a *AncestryIndex) Ancestors(x EventID) *AncestorIter {
	s := a.set(x)
	if s == nil {
		s = bitset.New(0)
	}
	return &AncestorIter{set: s}
}

// AncestorsFrom returns a lazy iterator over the ancestors of x whose id is at
// least from. Only those can be descendants of the Event from.
func (a *AncestryIndex) AncestorsFrom(x, from EventID) *AncestorIter {
	it := a.Ancestors(x)
	it.start = uint(from)
	it.next = it.start
	return it
}

func (a *AncestryIndex) set(x EventID) *bitset.BitSet {
	if x == NoEvent || int(x) > len(a.sets) {
		return nil
	}
	return a.sets[x-1]
}

/*******************************************************************************
AncestorIter
*******************************************************************************/

// AncestorIter walks an ancestor set in ascending id order. The underlying set
// is immutable, so an iterator stays valid while new Events are inserted.
type AncestorIter struct {
	set   *bitset.BitSet
	start uint
	next  uint
}

// Next returns the next ancestor, or false when the sequence is exhausted.
func (it *AncestorIter) Next() (EventID, bool) {
	i, ok := it.set.NextSet(it.next)
	if !ok {
		return NoEvent, false
	}
	it.next = i + 1
	return EventID(i), true
}

// Reset restarts the sequence from the beginning.
func (it *AncestorIter) Reset() {
	it.next = it.start
}

// Collect drains the iterator into a slice. It does not reset it.
func (it *AncestorIter) Collect() []EventID {
	res := []EventID{}
	for id, ok := it.Next(); ok; id, ok = it.Next() {
		res = append(res, id)
	}
	return res
}

/*******************************************************************************
Batch closure
*******************************************************************************/

// BatchClosure computes the ancestor set of every record directly from the
// parent edges, by relaxing closure[e] |= closure[p] for every edge e->p until
// nothing changes. It does not rely on insertion order and is only meant to
// cross-check the incremental AncestryIndex. The result is indexed by
// EventID; index 0 is unused.
func BatchClosure(records []EventRecord) []*bitset.BitSet {
	n := len(records)
	closure := make([]*bitset.BitSet, n+1)
	closure[0] = bitset.New(0)

	for i, rec := range records {
		set := bitset.New(uint(n + 1))
		for _, p := range rec.Parents() {
			set.Set(uint(p))
		}
		closure[i+1] = set
	}

	for changed := true; changed; {
		changed = false
		for i, rec := range records {
			set := closure[i+1]
			before := set.Count()
			for _, p := range rec.Parents() {
				if int(p) <= n {
					set.InPlaceUnion(closure[p])
				}
			}
			if set.Count() != before {
				changed = true
			}
		}
	}

	return closure
}

// VerifyClosure checks that the incremental sets of the index agree with the
// batch closure of records, and returns an error naming the first Event where
// they differ.
func (a *AncestryIndex) VerifyClosure(records []EventRecord) error {
	if len(records) != len(a.sets) {
		return fmt.Errorf("index has %d sets for %d records", len(a.sets), len(records))
	}

	closure := BatchClosure(records)

	for i, incremental := range a.sets {
		if !sameMembers(incremental, closure[i+1]) {
			return fmt.Errorf("ancestry of event %d: incremental %v, batch %v",
				i+1, incremental, closure[i+1])
		}
	}

	return nil
}

// sameMembers compares two sets regardless of their allocated length.
func sameMembers(x, y *bitset.BitSet) bool {
	c := x.Count()
	return c == y.Count() && x.IntersectionCardinality(y) == c
}
