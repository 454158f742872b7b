// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package errors

import "github.com/juju/errors"

const (
	// ParseError is raised when a resource identifier cannot be extracted
	// from the input given on the command line.
	ParseError = errors.ConstError("cannot determine resource identifier")

	// AlreadySynchronized is raised when a create is attempted for a
	// resource that already links to a digital object.
	AlreadySynchronized = errors.ConstError("resource already has a digital object instance")

	// NotSynchronized is raised when an update is attempted for a resource
	// that does not link to a digital object.
	NotSynchronized = errors.ConstError("resource does not have a digital object instance")

	// TemplateDataError is raised when the resource lacks data required to
	// render the collection narrative.
	TemplateDataError = errors.ConstError("missing narrative data")

	// MalformedLink is raised when the resource, digital object and
	// collection chain does not have the expected shape.
	MalformedLink = errors.ConstError("malformed collection link")

	// RemoteCallError is raised when a call to a remote system fails, either
	// at the transport level or with an unsuccessful status.
	RemoteCallError = errors.ConstError("remote call failed")
)
