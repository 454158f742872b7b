// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package collectionsync keeps a DSpace collection in step with the
// ArchivesSpace resource that describes it.
package collectionsync

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/bentley-historical-library/collectionsync/archivesspace"
	coreerrors "github.com/bentley-historical-library/collectionsync/core/errors"
	"github.com/bentley-historical-library/collectionsync/dspace"
	"github.com/bentley-historical-library/collectionsync/internal/narrative"
	"github.com/bentley-historical-library/collectionsync/internal/resourceid"
)

var logger = loggo.GetLogger("collectionsync")

// Config holds the collaborators and settings of a Synchronizer.
type Config struct {
	Archive    ArchiveAPI
	Repository RepositoryAPI
	Renderer   Renderer

	// CommunityID is the DSpace community new collections are created in.
	CommunityID string

	// HandleBaseURL prefixes a handle to form the collection URL recorded
	// on the digital object.
	HandleBaseURL string

	// RepositoryBaseURL is the DSpace base URL used to build the SWORD
	// deposit path of a provisioned location.
	RepositoryBaseURL string

	// Provisioner and Notifier are optional.
	Provisioner Provisioner
	Notifier    Notifier
}

// Validate checks that the config can be used by a Synchronizer.
func (c Config) Validate() error {
	if c.Archive == nil {
		return errors.NotValidf("nil Archive")
	}
	if c.Repository == nil {
		return errors.NotValidf("nil Repository")
	}
	if c.Renderer == nil {
		return errors.NotValidf("nil Renderer")
	}
	if c.CommunityID == "" {
		return errors.NotValidf("empty CommunityID")
	}
	if c.HandleBaseURL == "" {
		return errors.NotValidf("empty HandleBaseURL")
	}
	if c.Provisioner != nil && c.RepositoryBaseURL == "" {
		return errors.NotValidf("empty RepositoryBaseURL with a Provisioner")
	}
	return nil
}

// CreateArgs holds the arguments to Create.
type CreateArgs struct {
	// Resource is a resource URL or bare resource id.
	Resource string

	// Recipient is notified of the new collection when set and a
	// Notifier is configured.
	Recipient string
}

// UpdateArgs holds the arguments to Update.
type UpdateArgs struct {
	// Resource is a resource URL or bare resource id.
	Resource string
}

// ResolveArgs holds the arguments to Resolve.
type ResolveArgs struct {
	// Resource is a resource URL or bare resource id.
	Resource string
}

// Result describes the pair a synchronization touched.
type Result struct {
	ResourceID       string `yaml:"resource-id" json:"resource-id"`
	Title            string `yaml:"title" json:"title"`
	Handle           string `yaml:"handle" json:"handle"`
	CollectionURL    string `yaml:"collection-url" json:"collection-url"`
	DigitalObjectRef string `yaml:"digital-object" json:"digital-object"`
}

// Synchronizer creates and updates DSpace collections from ArchivesSpace
// resources.
type Synchronizer struct {
	config Config
}

// New returns a Synchronizer using the given config.
func New(config Config) (*Synchronizer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &Synchronizer{config: config}, nil
}

// Create makes a new collection for a resource that has none yet, and links
// the resource to it through a new digital object.
func (s *Synchronizer) Create(ctx context.Context, args CreateArgs) (Result, error) {
	id, resource, err := s.fetch(ctx, args.Resource)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	if len(resource.Instances) > 0 {
		return Result{}, errors.Annotatef(coreerrors.AlreadySynchronized, "resource %s %q", id, resource.Title)
	}

	collection, err := s.config.Renderer.Collection(resource)
	if err != nil {
		return Result{}, errors.Annotatef(err, "rendering resource %s", id)
	}

	logger.Infof("creating collection %q in community %s", collection.Name, s.config.CommunityID)
	created, err := s.config.Repository.CreateCollection(ctx, s.config.CommunityID, collection)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	handle := created.Handle
	if handle == "" {
		return Result{}, errors.Annotatef(coreerrors.MalformedLink, "collection %q created without a handle", collection.Name)
	}
	logger.Infof("created collection %s for resource %s", handle, id)

	if err := s.writeHandle(ctx, handle); err != nil {
		return Result{}, errors.Annotatef(err, "collection %s left without its handle", handle)
	}

	collectionURL := HandleURI(s.config.HandleBaseURL, handle)
	ref, err := s.config.Archive.CreateDigitalObject(ctx, archivesspace.DigitalObject{
		Title:           resource.Title,
		DigitalObjectID: collectionURL,
		Publish:         false,
		FileVersions: []archivesspace.FileVersion{{
			FileURI:               collectionURL,
			XLinkShowAttribute:    "new",
			XLinkActuateAttribute: "onRequest",
		}},
	})
	if err != nil {
		return Result{}, errors.Annotatef(err, "creating digital object for collection %s", handle)
	}
	logger.Infof("created digital object %s for collection %s", ref, handle)

	if err := s.link(ctx, id, ref); err != nil {
		return Result{}, errors.Annotatef(err, "linking digital object %s to resource %s", ref, id)
	}

	if s.config.Provisioner != nil {
		path := s.config.RepositoryBaseURL + "/swordv2/collection/" + handle
		logger.Infof("provisioning storage location %s", path)
		if err := s.config.Provisioner.Provision(ctx, path, resource.Title); err != nil {
			return Result{}, errors.Annotatef(err, "provisioning location for collection %s", handle)
		}
	}

	if s.config.Notifier != nil && args.Recipient != "" {
		logger.Infof("notifying %s", args.Recipient)
		if err := s.config.Notifier.Notify(ctx, args.Recipient, resource.Title, handle); err != nil {
			return Result{}, errors.Annotatef(err, "notifying %s of collection %s", args.Recipient, handle)
		}
	}

	return Result{
		ResourceID:       id,
		Title:            resource.Title,
		Handle:           handle,
		CollectionURL:    collectionURL,
		DigitalObjectRef: ref,
	}, nil
}

// Update refreshes the collection and digital object linked to a resource
// from its current description. The resource itself is not modified.
func (s *Synchronizer) Update(ctx context.Context, args UpdateArgs) (Result, error) {
	id, resource, err := s.fetch(ctx, args.Resource)
	if err != nil {
		return Result{}, errors.Trace(err)
	}

	rendered, err := s.config.Renderer.Collection(resource)
	if err != nil {
		return Result{}, errors.Annotatef(err, "rendering resource %s", id)
	}

	ref, err := DigitalObjectRef(resource)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	digitalObject, err := s.config.Archive.GetDigitalObject(ctx, ref)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	handle, err := HandleFromDigitalObject(s.config.HandleBaseURL, digitalObject)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	logger.Infof("updating collection %s from resource %s", handle, id)

	collection, err := s.config.Repository.GetCollectionByHandle(ctx, handle)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	collection.Name = rendered.Name
	collection.IntroductoryText = narrative.ResolveHandle(rendered.IntroductoryText, handle)
	collection.CopyrightText = rendered.CopyrightText
	collection.License = rendered.License
	collectionID, err := identify(collection, handle)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	if err := s.config.Repository.UpdateCollection(ctx, collectionID, collection); err != nil {
		return Result{}, errors.Trace(err)
	}

	digitalObject.Title = resource.Title
	if err := s.config.Archive.UpdateDigitalObject(ctx, ref, digitalObject); err != nil {
		return Result{}, errors.Trace(err)
	}
	logger.Infof("updated collection %s and digital object %s", handle, ref)

	return Result{
		ResourceID:       id,
		Title:            resource.Title,
		Handle:           handle,
		CollectionURL:    HandleURI(s.config.HandleBaseURL, handle),
		DigitalObjectRef: ref,
	}, nil
}

// Resolve reports the collection a resource is linked to without changing
// either system.
func (s *Synchronizer) Resolve(ctx context.Context, args ResolveArgs) (Result, error) {
	id, resource, err := s.fetch(ctx, args.Resource)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	ref, err := DigitalObjectRef(resource)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	handle, err := handleForRef(ctx, s.config.Archive, s.config.HandleBaseURL, ref)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{
		ResourceID:       id,
		Title:            resource.Title,
		Handle:           handle,
		CollectionURL:    HandleURI(s.config.HandleBaseURL, handle),
		DigitalObjectRef: ref,
	}, nil
}

func (s *Synchronizer) fetch(ctx context.Context, input string) (string, archivesspace.Resource, error) {
	id, err := resourceid.Parse(input)
	if err != nil {
		return "", archivesspace.Resource{}, errors.Trace(err)
	}
	logger.Infof("getting resource %s", id)
	resource, err := s.config.Archive.GetResource(ctx, id)
	if err != nil {
		return "", archivesspace.Resource{}, errors.Trace(err)
	}
	return id, resource, nil
}

// writeHandle fills the handle into the introductory text of the stored
// collection, which can only be known once DSpace has assigned it.
func (s *Synchronizer) writeHandle(ctx context.Context, handle string) error {
	collection, err := s.config.Repository.GetCollectionByHandle(ctx, handle)
	if err != nil {
		return errors.Trace(err)
	}
	collectionID, err := identify(collection, handle)
	if err != nil {
		return errors.Trace(err)
	}
	collection.IntroductoryText = narrative.ResolveHandle(collection.IntroductoryText, handle)
	return errors.Trace(s.config.Repository.UpdateCollection(ctx, collectionID, collection))
}

// identify returns the identifier collection is addressed by in DSpace
// updates.
func identify(collection dspace.Collection, handle string) (string, error) {
	id := collection.Identifier()
	if id == "" {
		return "", errors.Annotatef(coreerrors.MalformedLink, "collection %s has no uuid or id", handle)
	}
	return id, nil
}

// link replaces the instances of the resource with the digital object at
// ref, on a freshly fetched copy of the resource.
func (s *Synchronizer) link(ctx context.Context, id, ref string) error {
	resource, err := s.config.Archive.GetResource(ctx, id)
	if err != nil {
		return errors.Trace(err)
	}
	resource.Instances = []archivesspace.Instance{{
		InstanceType:  archivesspace.InstanceTypeDigitalObject,
		DigitalObject: &archivesspace.Ref{Ref: ref},
	}}
	return errors.Trace(s.config.Archive.UpdateResource(ctx, id, resource))
}
