// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package jsondoc supports read-modify-write of remote JSON documents whose
// APIs model updates as full overwrites. Fields this module does not know
// about must survive the round trip.
package jsondoc

import (
	"encoding/json"

	"github.com/juju/errors"
)

// Fields holds the raw top-level fields of a decoded document.
type Fields map[string]json.RawMessage

// Unmarshal decodes data into v and also returns every top-level field of
// the document so that it can be written back later.
func Unmarshal(data []byte, v interface{}) (Fields, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, errors.Trace(err)
	}
	var fields Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Trace(err)
	}
	return fields, nil
}

// Marshal encodes v. If the document was previously decoded (fields is not
// nil) the original document is written back with only the owned keys taken
// from v.
func Marshal(v interface{}, fields Fields, owned ...string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if fields == nil {
		return data, nil
	}

	var current Fields
	if err := json.Unmarshal(data, &current); err != nil {
		return nil, errors.Trace(err)
	}
	merged := make(Fields, len(fields)+len(owned))
	for k, v := range fields {
		merged[k] = v
	}
	for _, k := range owned {
		if v, ok := current[k]; ok {
			merged[k] = v
		} else {
			delete(merged, k)
		}
	}
	data, err = json.Marshal(merged)
	return data, errors.Trace(err)
}
