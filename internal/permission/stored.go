// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package permission

import "encoding/json"

// Stored is one element of an employee's persisted permission list.
// The stored form is heterogeneous: bare identifier strings written by
// early builds, full permission records written by later ones, and the
// occasional malformed value. UnmarshalJSON is the only place in the
// module that branches on the stored shape.
//
// A malformed element decodes to the zero Stored and is dropped by
// Normalize with a diagnostic. Decoding never fails: a bad element
// must not take the rest of the record down with it.
type Stored struct {
	id     string
	record *Permission
}

// StoredID wraps a bare identifier as a stored element.
func StoredID(id string) Stored {
	return Stored{id: id}
}

// StoredRecord wraps a full permission record as a stored element.
func StoredRecord(p Permission) Stored {
	return Stored{record: &p}
}

// AsStored converts canonical instances back to the stored form, for
// persisting and for re-normalization.
func AsStored(perms []Permission) []Stored {
	out := make([]Stored, 0, len(perms))
	for _, p := range perms {
		out = append(out, StoredRecord(p))
	}
	return out
}

// ID returns the permission identifier, or "" for a malformed element.
func (s Stored) ID() string {
	if s.record != nil {
		return s.record.ID
	}
	return s.id
}

// UnmarshalJSON accepts a bare string, a record object, or garbage.
// Garbage (including a record without an id) leaves s zero; the error
// is always nil so one bad element cannot corrupt the whole list.
func (s *Stored) UnmarshalJSON(data []byte) error {
	*s = Stored{}

	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		s.id = id
		return nil
	}

	var rec Permission
	if err := json.Unmarshal(data, &rec); err == nil && rec.ID != "" {
		s.record = &rec
		return nil
	}

	return nil
}

// MarshalJSON writes the element back in its canonical form. Bare
// identifiers stay bare; records stay records.
func (s Stored) MarshalJSON() ([]byte, error) {
	if s.record != nil {
		return json.Marshal(*s.record) //nolint:wrapcheck // plain struct marshal cannot fail
	}
	return json.Marshal(s.id) //nolint:wrapcheck // string marshal cannot fail
}
