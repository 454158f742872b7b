// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package jsondoc_test

import (
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/bentley-historical-library/collectionsync/internal/jsondoc"
)

type JSONDocSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&JSONDocSuite{})

type doc struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
}

func (s *JSONDocSuite) TestOwnedFieldsOverlaid(c *gc.C) {
	var d doc
	fields, err := jsondoc.Unmarshal([]byte(`{"title":"old","lock_version":3,"tags":["a"]}`), &d)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(d.Title, gc.Equals, "old")

	d.Title = "new"
	d.Tags = []string{"b"}
	data, err := jsondoc.Marshal(d, fields, "title")
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(string(data), jc.JSONEquals, map[string]interface{}{
		"title":        "new",
		"lock_version": 3,
		"tags":         []string{"a"},
	})
}

func (s *JSONDocSuite) TestOwnedFieldOmittedIsRemoved(c *gc.C) {
	var d doc
	fields, err := jsondoc.Unmarshal([]byte(`{"title":"old","tags":["a"]}`), &d)
	c.Assert(err, jc.ErrorIsNil)

	d.Tags = nil
	data, err := jsondoc.Marshal(d, fields, "tags")
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(string(data), jc.JSONEquals, map[string]interface{}{
		"title": "old",
	})
}

func (s *JSONDocSuite) TestNewDocument(c *gc.C) {
	data, err := jsondoc.Marshal(doc{Title: "fresh"}, nil, "title")
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(string(data), gc.Equals, `{"title":"fresh"}`)
}

func (s *JSONDocSuite) TestUnmarshalInvalid(c *gc.C) {
	var d doc
	_, err := jsondoc.Unmarshal([]byte(`[1,2]`), &d)
	c.Assert(err, gc.NotNil)
}
