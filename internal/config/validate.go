package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "github.com/tessro/sonoctl/internal/errors"
)

// Fields is a Record viewed as a flat mapping from field name to an
// arbitrary JSON value. Set patches this view and converts it back.
type Fields map[string]json.RawMessage

// Fields returns the flat view of r.
func (r Record) Fields() (Fields, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return parseFields(data)
}

// parseFields decodes data as a JSON object. Anything else is not a
// config record at all.
func parseFields(data []byte) (Fields, error) {
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: not an object", apperrors.ErrInvalidConfig)
	}
	return f, nil
}

// Record converts the flat view back into a Record, rejecting anything that
// does not have exactly the Record shape.
func (f Fields) Record() (Record, error) {
	for key := range f {
		if !IsKey(key) {
			return Record{}, apperrors.UnknownConfigKey(key)
		}
	}

	timeout, ok := f[KeyTimeout]
	if !ok || isNull(timeout) {
		return Record{}, fmt.Errorf("%w: %s is required", apperrors.ErrInvalidConfig, KeyTimeout)
	}

	data, err := json.Marshal(f)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var r Record
	if err := dec.Decode(&r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}

	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate checks the Record for values the schema cannot express.
func (r Record) Validate() error {
	if r.Timeout == 0 {
		return fmt.Errorf("%w: %s must be a positive integer", apperrors.ErrInvalidConfig, KeyTimeout)
	}
	if r.Timeout > MaxTimeout {
		return fmt.Errorf("%w: %s must be at most %d", apperrors.ErrInvalidConfig, KeyTimeout, MaxTimeout)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
