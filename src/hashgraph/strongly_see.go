package hashgraph

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/mosaicnetworks/hgcore/src/peers"
)

// DefaultCacheSize is the capacity of the strongly-see cache when none is
// given.
const DefaultCacheSize = 10000

// ssKey identifies a strongly-see result. The total weight is part of the key
// because the threshold moves if validators are admitted late.
type ssKey struct {
	x, y  EventID
	total uint64
}

// StronglySeeEvaluator decides whether an Event x strongly sees an ancestor y:
// the validators that created some Event on a path from x back to y, x and y
// included, together hold at least a supermajority of the stake.
type StronglySeeEvaluator struct {
	store    *EventStore
	ancestry *AncestryIndex
	registry *peers.Registry
	cache    *lru.Cache
}

// NewStronglySeeEvaluator ...
func NewStronglySeeEvaluator(store *EventStore,
	ancestry *AncestryIndex,
	registry *peers.Registry,
	cacheSize int) *StronglySeeEvaluator {

	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	//lru.New only fails on a non-positive size
	cache, _ := lru.New(cacheSize)

	return &StronglySeeEvaluator{
		store:    store,
		ancestry: ancestry,
		registry: registry,
		cache:    cache,
	}
}

// StronglySees returns true if x strongly sees y. It is false whenever y is not
// an ancestor of x.
func (s *StronglySeeEvaluator) StronglySees(x, y EventID) bool {
	if !s.ancestry.IsAncestor(x, y) {
		return false
	}

	key := ssKey{x, y, s.registry.TotalWeight()}
	if c, ok := s.cache.Get(key); ok {
		return c.(bool)
	}

	ss := s.stronglySees(x, y, key.total)
	s.cache.Add(key, ss)

	return ss
}

func (s *StronglySeeEvaluator) stronglySees(x, y EventID, total uint64) bool {
	threshold := peers.SuperMajority(total)

	seen := make(map[uint32]bool)
	var weight uint64

	count := func(a EventID) bool {
		c := s.store.Creator(a)
		if !seen[c] {
			seen[c] = true
			weight += s.registry.Weight(c)
		}
		return weight >= threshold
	}

	//x and y are both on every path from x to y
	if count(x) || count(y) {
		return true
	}

	//ancestors of x with a smaller id than y cannot descend from y
	it := s.ancestry.AncestorsFrom(x, y+1)
	for a, ok := it.Next(); ok; a, ok = it.Next() {
		if !s.ancestry.IsAncestor(a, y) {
			continue
		}
		if count(a) {
			return true
		}
	}

	return false
}

// Purge empties the cache.
func (s *StronglySeeEvaluator) Purge() {
	s.cache.Purge()
}
