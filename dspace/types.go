// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package dspace

import (
	"strconv"

	"github.com/bentley-historical-library/collectionsync/internal/jsondoc"
)

// Collection is a DSpace collection as exposed by the REST API. A decoded
// collection keeps the rest of the document so that a PUT only changes the
// descriptive fields.
type Collection struct {
	ID               int    `json:"id,omitempty"`
	UUID             string `json:"uuid,omitempty"`
	Name             string `json:"name"`
	Handle           string `json:"handle,omitempty"`
	IntroductoryText string `json:"introductoryText"`
	CopyrightText    string `json:"copyrightText"`
	License          string `json:"license"`

	fields jsondoc.Fields
}

// Identifier returns the identifier DSpace expects in collection paths:
// the numeric id on DSpace 5, the uuid on DSpace 6.
func (c Collection) Identifier() string {
	if c.UUID != "" {
		return c.UUID
	}
	if c.ID == 0 {
		return ""
	}
	return strconv.Itoa(c.ID)
}

// MarshalJSON writes the collection back with only the descriptive fields
// replaced.
func (c Collection) MarshalJSON() ([]byte, error) {
	type plain Collection
	return jsondoc.Marshal(plain(c), c.fields, "name", "introductoryText", "copyrightText", "license")
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Collection) UnmarshalJSON(data []byte) error {
	type plain Collection
	var p plain
	fields, err := jsondoc.Unmarshal(data, &p)
	if err != nil {
		return err
	}
	*c = Collection(p)
	c.fields = fields
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
