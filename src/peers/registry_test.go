package peers

import (
	"reflect"
	"testing"
)

func TestSuperMajority(t *testing.T) {
	for _, c := range []struct {
		total uint64
		out   uint64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 3},
		{5, 4},
		{6, 5},
		{7, 5},
		{10, 7},
		{100, 67},
	} {
		got := SuperMajority(c.total)
		if got != c.out {
			t.Errorf("SuperMajority(%d) => %d != %d", c.total, got, c.out)
		}
		if 3*got <= 2*c.total {
			t.Errorf("SuperMajority(%d) = %d is not above two thirds", c.total, got)
		}
		if got > 0 && 3*(got-1) > 2*c.total {
			t.Errorf("SuperMajority(%d) = %d is not the smallest", c.total, got)
		}
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	for i := uint32(0); i < 3; i++ {
		if !r.Register(i) {
			t.Fatalf("validator %d should be new", i)
		}
	}

	if r.Register(1) {
		t.Fatalf("registering validator 1 twice should be a no-op")
	}

	if r.TotalWeight() != 3 {
		t.Fatalf("total weight should be 3, not %d", r.TotalWeight())
	}

	if r.SuperMajority() != 3 {
		t.Fatalf("supermajority should be 3, not %d", r.SuperMajority())
	}

	expected := []Validator{{0, 1}, {1, 1}, {2, 1}}
	if !reflect.DeepEqual(r.Validators(), expected) {
		t.Fatalf("validators should be %v, not %v", expected, r.Validators())
	}
}

func TestRegistryWeighted(t *testing.T) {
	r := NewRegistryFromSlice([]*Validator{
		NewValidator(7, 4),
		NewValidator(3, 5),
		NewValidator(9, 1),
	})

	if r.TotalWeight() != 10 {
		t.Fatalf("total weight should be 10, not %d", r.TotalWeight())
	}

	if r.SuperMajority() != 7 {
		t.Fatalf("supermajority should be 7, not %d", r.SuperMajority())
	}

	if r.RegisterWeighted(3, 100) {
		t.Fatalf("re-registering validator 3 should be a no-op")
	}

	if w := r.Weight(3); w != 5 {
		t.Fatalf("validator 3 should keep weight 5, not %d", w)
	}

	if w := r.Weight(42); w != 0 {
		t.Fatalf("unknown validator should have weight 0, not %d", w)
	}

	ids := []uint32{}
	for _, v := range r.Validators() {
		ids = append(ids, v.ID)
	}
	if !reflect.DeepEqual(ids, []uint32{7, 3, 9}) {
		t.Fatalf("validators should be in registration order, got %v", ids)
	}
}

func TestRegistrySeal(t *testing.T) {
	r := NewRegistry()
	r.Register(0)
	r.Register(1)
	r.Seal()

	if !r.Sealed() {
		t.Fatalf("registry should be sealed")
	}

	r.Register(1)
	if len(r.Late()) != 0 {
		t.Fatalf("known validator should not be reported late")
	}

	r.Register(2)
	if !reflect.DeepEqual(r.Late(), []uint32{2}) {
		t.Fatalf("late validators should be [2], not %v", r.Late())
	}
}

func TestValidatorMarshal(t *testing.T) {
	v := NewValidator(12, 0)
	if v.Weight != DefaultWeight {
		t.Fatalf("zero weight should default to %d", DefaultWeight)
	}

	raw, err := v.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	var nv Validator
	if err := nv.Unmarshal(raw); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(*v, nv) {
		t.Fatalf("unmarshalled validator should be %v, not %v", *v, nv)
	}
}
