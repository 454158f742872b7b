// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package archivesspace is a client for the parts of the ArchivesSpace
// backend API used to link resources to DSpace collections.
package archivesspace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	coreerrors "github.com/bentley-historical-library/collectionsync/core/errors"
	"github.com/bentley-historical-library/collectionsync/internal/restclient"
)

var logger = loggo.GetLogger("collectionsync.archivesspace")

// SessionHeader carries the session token on every authenticated request.
const SessionHeader = "X-ArchivesSpace-Session"

// Credentials identify the ArchivesSpace user collectionsync acts as.
type Credentials struct {
	BaseURL      string
	User         string
	Password     string
	RepositoryID string
}

// Client talks to a single ArchivesSpace repository with an established
// session.
type Client struct {
	rest         *restclient.HTTPRESTClient
	repositoryID string
}

// Login opens a session with the given credentials and returns a client
// that uses it for every later call.
func Login(ctx context.Context, transport restclient.Transport, creds Credentials) (*Client, error) {
	logger.Infof("logging into ArchivesSpace at %s as %s", creds.BaseURL, creds.User)
	rest := restclient.NewHTTPRESTClient(creds.BaseURL, transport, nil)

	var result session
	path := fmt.Sprintf("/users/%s/login", url.PathEscape(creds.User))
	if _, err := rest.PostForm(ctx, path, url.Values{"password": {creds.Password}}, &result); err != nil {
		return nil, errors.Annotate(err, "logging into ArchivesSpace")
	}
	if result.Session == "" {
		return nil, errors.WithType(errors.New("logging into ArchivesSpace: no session token returned"), coreerrors.RemoteCallError)
	}

	headers := make(http.Header)
	headers.Set(SessionHeader, result.Session)
	return NewClient(rest.WithHeaders(headers), creds.RepositoryID), nil
}

// NewClient returns a client using an already authenticated REST client.
func NewClient(rest *restclient.HTTPRESTClient, repositoryID string) *Client {
	return &Client{
		rest:         rest,
		repositoryID: repositoryID,
	}
}

func (c *Client) resourcePath(id string) string {
	return fmt.Sprintf("/repositories/%s/resources/%s", c.repositoryID, url.PathEscape(id))
}

// GetResource fetches the resource with the given identifier.
func (c *Client) GetResource(ctx context.Context, id string) (Resource, error) {
	logger.Debugf("GETting resource %s", id)
	var resource Resource
	if _, err := c.rest.Get(ctx, c.resourcePath(id), &resource); err != nil {
		return Resource{}, errors.Annotatef(err, "getting resource %s", id)
	}
	return resource, nil
}

// UpdateResource overwrites the resource with the given identifier.
func (c *Client) UpdateResource(ctx context.Context, id string, resource Resource) error {
	logger.Debugf("POSTing resource %s", id)
	var result UpdateResult
	if _, err := c.rest.Post(ctx, c.resourcePath(id), nil, resource, &result); err != nil {
		return errors.Annotatef(err, "updating resource %s", id)
	}
	return nil
}

// CreateDigitalObject creates a digital object and returns its reference.
func (c *Client) CreateDigitalObject(ctx context.Context, digitalObject DigitalObject) (string, error) {
	logger.Debugf("POSTing digital object %q", digitalObject.DigitalObjectID)
	var result UpdateResult
	path := fmt.Sprintf("/repositories/%s/digital_objects", c.repositoryID)
	if _, err := c.rest.Post(ctx, path, nil, digitalObject, &result); err != nil {
		return "", errors.Annotate(err, "creating digital object")
	}
	if result.URI == "" {
		return "", errors.WithType(errors.New("creating digital object: no uri returned"), coreerrors.RemoteCallError)
	}
	return result.URI, nil
}

// GetDigitalObject fetches the digital object at ref, a path such as
// /repositories/2/digital_objects/5.
func (c *Client) GetDigitalObject(ctx context.Context, ref string) (DigitalObject, error) {
	logger.Debugf("GETting digital object %s", ref)
	var digitalObject DigitalObject
	if _, err := c.rest.Get(ctx, ref, &digitalObject); err != nil {
		return DigitalObject{}, errors.Annotatef(err, "getting digital object %s", ref)
	}
	return digitalObject, nil
}

// UpdateDigitalObject overwrites the digital object at ref.
func (c *Client) UpdateDigitalObject(ctx context.Context, ref string, digitalObject DigitalObject) error {
	logger.Debugf("POSTing digital object %s", ref)
	var result UpdateResult
	if _, err := c.rest.Post(ctx, ref, nil, digitalObject, &result); err != nil {
		return errors.Annotatef(err, "updating digital object %s", ref)
	}
	return nil
}
