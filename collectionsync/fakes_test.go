// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package collectionsync_test

import (
	"context"
	"fmt"

	"github.com/juju/errors"
	"github.com/juju/testing"

	"github.com/bentley-historical-library/collectionsync/archivesspace"
	"github.com/bentley-historical-library/collectionsync/dspace"
)

// fakeArchive keeps resources and digital objects in memory and records
// every call on a shared stub.
type fakeArchive struct {
	stub           *testing.Stub
	resources      map[string]archivesspace.Resource
	digitalObjects map[string]archivesspace.DigitalObject
	nextID         int
}

func newFakeArchive(stub *testing.Stub) *fakeArchive {
	return &fakeArchive{
		stub:           stub,
		resources:      make(map[string]archivesspace.Resource),
		digitalObjects: make(map[string]archivesspace.DigitalObject),
		nextID:         1,
	}
}

func (f *fakeArchive) GetResource(ctx context.Context, id string) (archivesspace.Resource, error) {
	f.stub.AddCall("GetResource", id)
	if err := f.stub.NextErr(); err != nil {
		return archivesspace.Resource{}, err
	}
	resource, ok := f.resources[id]
	if !ok {
		return archivesspace.Resource{}, errors.NotFoundf("resource %s", id)
	}
	return resource, nil
}

func (f *fakeArchive) UpdateResource(ctx context.Context, id string, resource archivesspace.Resource) error {
	f.stub.AddCall("UpdateResource", id, resource)
	if err := f.stub.NextErr(); err != nil {
		return err
	}
	f.resources[id] = resource
	return nil
}

func (f *fakeArchive) CreateDigitalObject(ctx context.Context, digitalObject archivesspace.DigitalObject) (string, error) {
	f.stub.AddCall("CreateDigitalObject", digitalObject)
	if err := f.stub.NextErr(); err != nil {
		return "", err
	}
	ref := fmt.Sprintf("/repositories/2/digital_objects/%d", f.nextID)
	f.nextID++
	digitalObject.URI = ref
	f.digitalObjects[ref] = digitalObject
	return ref, nil
}

func (f *fakeArchive) GetDigitalObject(ctx context.Context, ref string) (archivesspace.DigitalObject, error) {
	f.stub.AddCall("GetDigitalObject", ref)
	if err := f.stub.NextErr(); err != nil {
		return archivesspace.DigitalObject{}, err
	}
	digitalObject, ok := f.digitalObjects[ref]
	if !ok {
		return archivesspace.DigitalObject{}, errors.NotFoundf("digital object %s", ref)
	}
	return digitalObject, nil
}

func (f *fakeArchive) UpdateDigitalObject(ctx context.Context, ref string, digitalObject archivesspace.DigitalObject) error {
	f.stub.AddCall("UpdateDigitalObject", ref, digitalObject)
	if err := f.stub.NextErr(); err != nil {
		return err
	}
	f.digitalObjects[ref] = digitalObject
	return nil
}

// fakeRepository keeps collections in memory, assigning handles under the
// 2027.42 prefix.
type fakeRepository struct {
	stub        *testing.Stub
	collections map[string]dspace.Collection
	nextID      int
	noHandle    bool
	noID        bool
}

func newFakeRepository(stub *testing.Stub) *fakeRepository {
	return &fakeRepository{
		stub:        stub,
		collections: make(map[string]dspace.Collection),
		nextID:      12345,
	}
}

func (f *fakeRepository) CreateCollection(ctx context.Context, communityID string, collection dspace.Collection) (dspace.Collection, error) {
	f.stub.AddCall("CreateCollection", communityID, collection)
	if err := f.stub.NextErr(); err != nil {
		return dspace.Collection{}, err
	}
	id := f.nextID
	f.nextID++
	if !f.noID {
		collection.ID = id
	}
	if !f.noHandle {
		collection.Handle = fmt.Sprintf("2027.42/%d", id)
	}
	f.collections[collection.Handle] = collection
	return collection, nil
}

func (f *fakeRepository) GetCollectionByHandle(ctx context.Context, handle string) (dspace.Collection, error) {
	f.stub.AddCall("GetCollectionByHandle", handle)
	if err := f.stub.NextErr(); err != nil {
		return dspace.Collection{}, err
	}
	collection, ok := f.collections[handle]
	if !ok {
		return dspace.Collection{}, errors.NotFoundf("collection %s", handle)
	}
	return collection, nil
}

func (f *fakeRepository) UpdateCollection(ctx context.Context, id string, collection dspace.Collection) error {
	f.stub.AddCall("UpdateCollection", id, collection)
	if err := f.stub.NextErr(); err != nil {
		return err
	}
	f.collections[collection.Handle] = collection
	return nil
}

type fakeProvisioner struct {
	*testing.Stub
}

func (f *fakeProvisioner) Provision(ctx context.Context, relativePath, description string) error {
	f.AddCall("Provision", relativePath, description)
	return f.NextErr()
}

type fakeNotifier struct {
	*testing.Stub
}

func (f *fakeNotifier) Notify(ctx context.Context, recipient, title, handle string) error {
	f.AddCall("Notify", recipient, title, handle)
	return f.NextErr()
}
