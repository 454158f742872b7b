// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package resourceid extracts ArchivesSpace resource identifiers from the
// forms an archivist is likely to paste on the command line.
package resourceid

import (
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	coreerrors "github.com/bentley-historical-library/collectionsync/core/errors"
)

var logger = loggo.GetLogger("collectionsync.resourceid")

// marker precedes the identifier in staff interface and API URLs.
const marker = "/resources/"

// Parse returns the resource identifier embedded in input. It accepts
//
//	http://host:8080/resources/:id
//	http://host:8080/resources/:id/edit#tree::resource_:id
//	http://host:8089/repositories/2/resources/:id
//	:id
//
// Anything else fails with a ParseError.
func Parse(input string) (string, error) {
	var id string
	if _, rest, ok := strings.Cut(input, marker); ok {
		if i := strings.IndexAny(rest, "/#?"); i >= 0 {
			rest = rest[:i]
		}
		id = rest
	} else {
		id = input
	}
	if !isNumeric(id) {
		return "", errors.Annotatef(coreerrors.ParseError, "parsing %q", input)
	}
	logger.Debugf("resource id %s parsed from %q", id, input)
	return id, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
