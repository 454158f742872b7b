// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package collectionsync

import (
	"context"
	"strings"

	"github.com/juju/errors"

	"github.com/bentley-historical-library/collectionsync/archivesspace"
	coreerrors "github.com/bentley-historical-library/collectionsync/core/errors"
)

// HandleURI returns the URI recorded on the digital object of the
// collection with the given handle.
func HandleURI(handleBaseURL, handle string) string {
	return handleBaseURL + handle
}

// DigitalObjectRef returns the reference of the digital object linked to
// resource.
func DigitalObjectRef(resource archivesspace.Resource) (string, error) {
	if len(resource.Instances) == 0 {
		return "", errors.Annotatef(coreerrors.NotSynchronized, "resource %q", resource.Title)
	}
	instance := resource.Instances[0]
	if instance.DigitalObject == nil || instance.DigitalObject.Ref == "" {
		return "", errors.Annotatef(coreerrors.MalformedLink, "resource %q instance has no digital object reference", resource.Title)
	}
	return instance.DigitalObject.Ref, nil
}

// ResolveCollectionHandle follows the digital object linked to resource
// back to the handle of its collection.
func ResolveCollectionHandle(ctx context.Context, archive ArchiveAPI, handleBaseURL string, resource archivesspace.Resource) (string, error) {
	ref, err := DigitalObjectRef(resource)
	if err != nil {
		return "", errors.Trace(err)
	}
	return handleForRef(ctx, archive, handleBaseURL, ref)
}

func handleForRef(ctx context.Context, archive ArchiveAPI, handleBaseURL, ref string) (string, error) {
	digitalObject, err := archive.GetDigitalObject(ctx, ref)
	if err != nil {
		return "", errors.Trace(err)
	}
	return HandleFromDigitalObject(handleBaseURL, digitalObject)
}

// HandleFromDigitalObject strips the handle base URL from the first file
// version of digitalObject.
func HandleFromDigitalObject(handleBaseURL string, digitalObject archivesspace.DigitalObject) (string, error) {
	if len(digitalObject.FileVersions) == 0 {
		return "", errors.Annotatef(coreerrors.MalformedLink, "digital object %s has no file versions", digitalObject.URI)
	}
	uri := digitalObject.FileVersions[0].FileURI
	handle, ok := strings.CutPrefix(uri, handleBaseURL)
	if !ok || handle == "" {
		return "", errors.Annotatef(coreerrors.MalformedLink, "file uri %q is not a handle under %q", uri, handleBaseURL)
	}
	logger.Debugf("digital object %s links collection %s", digitalObject.URI, handle)
	return handle, nil
}
