// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package resourceid_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	coreerrors "github.com/bentley-historical-library/collectionsync/core/errors"
	"github.com/bentley-historical-library/collectionsync/internal/resourceid"
)

type ParseSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&ParseSuite{})

func (ParseSuite) TestAcceptedForms(c *gc.C) {
	for i, input := range []string{
		"http://141.211.39.87:8080/resources/1234",
		"http://141.211.39.87:8080/resources/1234/edit#tree::resource_1234",
		"http://141.211.39.87:8089/repositories/2/resources/1234",
		"http://141.211.39.87:8080/resources/1234#tree::resource_1234",
		"http://141.211.39.87:8080/resources/1234?foo=bar",
		"1234",
	} {
		c.Logf("test %d: %s", i, input)
		id, err := resourceid.Parse(input)
		c.Assert(err, jc.ErrorIsNil)
		c.Check(id, gc.Equals, "1234")
	}
}

func (ParseSuite) TestRejectedForms(c *gc.C) {
	for i, input := range []string{
		"",
		"abc",
		"12a",
		"-12",
		" 12",
		"http://141.211.39.87:8080/resources/",
		"http://141.211.39.87:8080/resources/abc/edit",
		"http://141.211.39.87:8080/digital_objects/12",
	} {
		c.Logf("test %d: %q", i, input)
		_, err := resourceid.Parse(input)
		c.Check(errors.Is(err, coreerrors.ParseError), jc.IsTrue)
		c.Check(err, gc.ErrorMatches, `parsing .*: cannot determine resource identifier`)
	}
}
