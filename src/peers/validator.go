package peers

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// DefaultWeight is the stake weight of a validator registered without an
// explicit weight.
const DefaultWeight uint64 = 1

// Validator is a participant contributing events to the DAG.
type Validator struct {
	ID     uint32 `json:"id"`
	Weight uint64 `json:"weight"`
}

// NewValidator creates a Validator. A zero weight is replaced by
// DefaultWeight.
func NewValidator(id uint32, weight uint64) *Validator {
	if weight == 0 {
		weight = DefaultWeight
	}
	return &Validator{
		ID:     id,
		Weight: weight,
	}
}

// Marshal returns the canonical JSON encoding of the Validator.
func (v *Validator) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal ...
func (v *Validator) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(v)
}
