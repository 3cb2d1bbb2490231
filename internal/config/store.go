package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "github.com/tessro/sonoctl/internal/errors"
)

// Entry is one rendered field of a Record.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// String renders the entry as "key: value", value in JSON form.
func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Value)
}

// List returns every field of r in Keys order.
func List(r Record) ([]Entry, error) {
	f, err := r.Fields()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(Keys))
	for _, key := range Keys {
		entries = append(entries, Entry{Key: key, Value: valueOrNull(f[key])})
	}
	return entries, nil
}

// Get returns the field key of r. A key that is not part of the record
// renders as null.
func Get(r Record, key string) (Entry, error) {
	f, err := r.Fields()
	if err != nil {
		return Entry{}, err
	}
	return Entry{Key: key, Value: valueOrNull(f[key])}, nil
}

// Set parses raw as a JSON value, assigns it to key and returns the
// resulting Record. r is left unchanged; persisting is up to the caller.
func Set(r Record, key, raw string) (Record, error) {
	if !IsKey(key) {
		return Record{}, apperrors.UnknownConfigKey(key)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return Record{}, fmt.Errorf("parse value for %s: %w", key, err)
	}

	f, err := r.Fields()
	if err != nil {
		return Record{}, err
	}
	f[key] = json.RawMessage(buf.Bytes())

	return f.Record()
}

func valueOrNull(v json.RawMessage) json.RawMessage {
	if len(v) == 0 {
		return json.RawMessage("null")
	}
	return v
}
