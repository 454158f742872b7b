// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package collectionsync

import (
	"context"

	"github.com/bentley-historical-library/collectionsync/archivesspace"
	"github.com/bentley-historical-library/collectionsync/dspace"
)

// ArchiveAPI is the ArchivesSpace API used to read resources and maintain
// their digital objects.
type ArchiveAPI interface {
	// GetResource fetches the resource with the given identifier.
	GetResource(ctx context.Context, id string) (archivesspace.Resource, error)

	// UpdateResource overwrites the whole resource document.
	UpdateResource(ctx context.Context, id string, resource archivesspace.Resource) error

	// CreateDigitalObject creates a digital object and returns its
	// reference.
	CreateDigitalObject(ctx context.Context, digitalObject archivesspace.DigitalObject) (string, error)

	// GetDigitalObject fetches the digital object at ref.
	GetDigitalObject(ctx context.Context, ref string) (archivesspace.DigitalObject, error)

	// UpdateDigitalObject overwrites the whole digital object document.
	UpdateDigitalObject(ctx context.Context, ref string, digitalObject archivesspace.DigitalObject) error
}

// RepositoryAPI is the DSpace API used to maintain collections.
type RepositoryAPI interface {
	// CreateCollection creates a collection in the parent community and
	// returns it with its assigned handle.
	CreateCollection(ctx context.Context, communityID string, collection dspace.Collection) (dspace.Collection, error)

	// GetCollectionByHandle fetches the collection with the given handle.
	GetCollectionByHandle(ctx context.Context, handle string) (dspace.Collection, error)

	// UpdateCollection overwrites the collection with the given identifier.
	UpdateCollection(ctx context.Context, id string, collection dspace.Collection) error
}

// Renderer builds collection fields from a resource.
type Renderer interface {
	Collection(resource archivesspace.Resource) (dspace.Collection, error)
}

// Provisioner provisions a storage location for a new collection.
type Provisioner interface {
	Provision(ctx context.Context, relativePath, description string) error
}

// Notifier tells a person that their collection exists.
type Notifier interface {
	Notify(ctx context.Context, recipient, title, handle string) error
}
