// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package archivesspace

import (
	"github.com/bentley-historical-library/collectionsync/internal/jsondoc"
)

// Levels of description relevant to the collection narrative.
const (
	LevelRecordGroup = "recordgrp"
	LevelCollection  = "collection"
)

// Note types read when rendering the collection narrative.
const (
	NoteAbstract = "abstract"
	NoteBioghist = "bioghist"
)

// InstanceTypeDigitalObject tags an instance linking a digital object.
const InstanceTypeDigitalObject = "digital_object"

// Resource is an archival description record. Only the fields collectionsync
// reads are modelled; the rest of the document is preserved when a decoded
// resource is written back.
type Resource struct {
	URI       string     `json:"uri,omitempty"`
	Title     string     `json:"title"`
	Level     string     `json:"level"`
	EADID     string     `json:"ead_id,omitempty"`
	Notes     []Note     `json:"notes,omitempty"`
	Instances []Instance `json:"instances"`

	fields jsondoc.Fields
}

// Note is a typed descriptive note. Single part notes carry their text in
// Content, multipart notes in Subnotes.
type Note struct {
	JSONModelType string    `json:"jsonmodel_type,omitempty"`
	Type          string    `json:"type"`
	Content       []string  `json:"content,omitempty"`
	Subnotes      []Subnote `json:"subnotes,omitempty"`
}

// Subnote is a part of a multipart note.
type Subnote struct {
	JSONModelType string `json:"jsonmodel_type,omitempty"`
	Content       string `json:"content"`
}

// Instance links a resource to an external representation.
type Instance struct {
	InstanceType  string `json:"instance_type"`
	DigitalObject *Ref   `json:"digital_object,omitempty"`
}

// Ref is a reference to another record by URI.
type Ref struct {
	Ref string `json:"ref"`
}

// MarshalJSON writes the resource back with only its instances replaced.
func (r Resource) MarshalJSON() ([]byte, error) {
	type plain Resource
	return jsondoc.Marshal(plain(r), r.fields, "instances")
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Resource) UnmarshalJSON(data []byte) error {
	type plain Resource
	var p plain
	fields, err := jsondoc.Unmarshal(data, &p)
	if err != nil {
		return err
	}
	*r = Resource(p)
	r.fields = fields
	return nil
}

// DigitalObject is the ArchivesSpace proxy record for a DSpace collection.
type DigitalObject struct {
	URI             string        `json:"uri,omitempty"`
	Title           string        `json:"title"`
	DigitalObjectID string        `json:"digital_object_id"`
	Publish         bool          `json:"publish"`
	FileVersions    []FileVersion `json:"file_versions"`

	fields jsondoc.Fields
}

// FileVersion points at the external copy of a digital object.
type FileVersion struct {
	FileURI               string `json:"file_uri"`
	XLinkShowAttribute    string `json:"xlink_show_attribute,omitempty"`
	XLinkActuateAttribute string `json:"xlink_actuate_attribute,omitempty"`
}

// MarshalJSON writes the digital object back with only its title replaced.
func (d DigitalObject) MarshalJSON() ([]byte, error) {
	type plain DigitalObject
	return jsondoc.Marshal(plain(d), d.fields, "title")
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DigitalObject) UnmarshalJSON(data []byte) error {
	type plain DigitalObject
	var p plain
	fields, err := jsondoc.Unmarshal(data, &p)
	if err != nil {
		return err
	}
	*d = DigitalObject(p)
	d.fields = fields
	return nil
}

// UpdateResult is the body ArchivesSpace answers create and update calls
// with.
type UpdateResult struct {
	Status string `json:"status"`
	ID     int    `json:"id"`
	URI    string `json:"uri"`
}

type session struct {
	Session string `json:"session"`
}
