package shaping

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Entry is one key/value of a Record.
type Entry struct {
	Key   string
	Value any
}

// Record is an ordered set of fields taken from one object. Serialized as a
// JSON object whose keys keep the record's order.
type Record struct {
	entries []Entry
}

// Len is the number of fields.
func (r Record) Len() int { return len(r.entries) }

// Keys returns the field names in order.
func (r Record) Keys() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Key
	}
	return out
}

// Entries returns a copy of the fields.
func (r Record) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Get looks a field up ignoring case.
func (r Record) Get(key string) (any, bool) {
	for _, e := range r.entries {
		if strings.EqualFold(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// With returns a copy of r with key set to v. An existing key (any case) is
// replaced in place, a new one is appended.
func (r Record) With(key string, v any) Record {
	out := Record{entries: make([]Entry, len(r.entries), len(r.entries)+1)}
	copy(out.entries, r.entries)
	for i, e := range out.entries {
		if strings.EqualFold(e.Key, key) {
			out.entries[i].Value = v
			return out
		}
	}
	out.entries = append(out.entries, Entry{Key: key, Value: v})
	return out
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
