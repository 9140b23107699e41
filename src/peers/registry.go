package peers

import (
	"sync"
)

// Registry tracks the known validators and their stake weights. Validators are
// kept in registration order so that replaying the same registrations always
// yields the same registry.
type Registry struct {
	sync.RWMutex

	sorted []*Validator
	byID   map[uint32]*Validator
	total  uint64

	sealed bool
	late   []uint32
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[uint32]*Validator),
	}
}

// NewRegistryFromSlice creates a Registry from a list of validators, in order.
func NewRegistryFromSlice(validators []*Validator) *Registry {
	r := NewRegistry()
	for _, v := range validators {
		r.RegisterWeighted(v.ID, v.Weight)
	}
	return r
}

// Register adds a validator with the default weight if it is not already
// known. It returns true if the validator was added.
func (r *Registry) Register(id uint32) bool {
	return r.RegisterWeighted(id, DefaultWeight)
}

// RegisterWeighted adds a validator with the given weight if it is not already
// known. An existing validator keeps its weight. It returns true if the
// validator was added.
func (r *Registry) RegisterWeighted(id uint32, weight uint64) bool {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.byID[id]; ok {
		return false
	}

	v := NewValidator(id, weight)
	r.sorted = append(r.sorted, v)
	r.byID[id] = v
	r.total += v.Weight

	if r.sealed {
		r.late = append(r.late, id)
	}

	return true
}

// Seal marks the validator set as fixed. Validators registered afterwards are
// still accepted, because the core cannot refuse events from them, but they
// are reported by Late.
func (r *Registry) Seal() {
	r.Lock()
	defer r.Unlock()
	r.sealed = true
}

// Sealed ...
func (r *Registry) Sealed() bool {
	r.RLock()
	defer r.RUnlock()
	return r.sealed
}

// Late returns the ids of validators registered after Seal. Their admission
// changed the supermajority denominator retroactively.
func (r *Registry) Late() []uint32 {
	r.RLock()
	defer r.RUnlock()
	res := make([]uint32, len(r.late))
	copy(res, r.late)
	return res
}

// Contains ...
func (r *Registry) Contains(id uint32) bool {
	r.RLock()
	defer r.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// Weight returns the stake weight of a validator, 0 if it is unknown.
func (r *Registry) Weight(id uint32) uint64 {
	r.RLock()
	defer r.RUnlock()
	if v, ok := r.byID[id]; ok {
		return v.Weight
	}
	return 0
}

// Len returns the number of registered validators.
func (r *Registry) Len() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.sorted)
}

// TotalWeight returns the sum of all registered weights.
func (r *Registry) TotalWeight() uint64 {
	r.RLock()
	defer r.RUnlock()
	return r.total
}

// SuperMajority returns the smallest weight strictly greater than two thirds of
// the total weight.
func (r *Registry) SuperMajority() uint64 {
	return SuperMajority(r.TotalWeight())
}

// Validators returns a copy of the validators in registration order.
func (r *Registry) Validators() []Validator {
	r.RLock()
	defer r.RUnlock()
	res := make([]Validator, len(r.sorted))
	for i, v := range r.sorted {
		res[i] = *v
	}
	return res
}

// SuperMajority computes floor(2*total/3) + 1 with integer arithmetic only.
func SuperMajority(total uint64) uint64 {
	return 2*total/3 + 1
}
