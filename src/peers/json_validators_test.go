package peers

import (
	"os"
	"reflect"
	"testing"
)

func TestJSONValidators(t *testing.T) {
	dir, err := os.MkdirTemp("", "hgcore-validators")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	store := NewJSONValidators(dir)

	missing, err := store.Validators()
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("missing file should yield no validators")
	}

	validators := []*Validator{
		NewValidator(0, 1),
		NewValidator(1, 3),
		NewValidator(2, 1),
	}

	if err := store.SetValidators(validators); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Validators()
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(loaded, validators) {
		t.Fatalf("loaded validators should be %v, not %v", validators, loaded)
	}

	if NewRegistryFromSlice(loaded).TotalWeight() != 5 {
		t.Fatalf("total weight of loaded validators should be 5")
	}
}
