package peers

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	jsonValidatorsPath = "validators.json"
)

// JSONValidators reads the initial validator set from a JSON file.
type JSONValidators struct {
	path string
}

// NewJSONValidators creates a new JSONValidators for the validators.json file
// of a data directory.
func NewJSONValidators(base string) *JSONValidators {
	return &JSONValidators{
		path: filepath.Join(base, jsonValidatorsPath),
	}
}

// Path ...
func (j *JSONValidators) Path() string {
	return j.path
}

// Validators parses the file. A missing or empty file yields no validators and
// no error.
func (j *JSONValidators) Validators() ([]*Validator, error) {
	buf, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var validators []*Validator
	if len(buf) > 0 {
		dec := json.NewDecoder(bytes.NewReader(buf))
		if err := dec.Decode(&validators); err != nil {
			return nil, err
		}
	}

	for i, v := range validators {
		validators[i] = NewValidator(v.ID, v.Weight)
	}

	return validators, nil
}

// SetValidators writes the validators to the file.
func (j *JSONValidators) SetValidators(validators []*Validator) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "\t")
	if err := enc.Encode(validators); err != nil {
		return err
	}

	return os.WriteFile(j.path, buf.Bytes(), 0755)
}
