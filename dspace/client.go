// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package dspace is a client for the collection endpoints of the DSpace
// REST API.
package dspace

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	coreerrors "github.com/bentley-historical-library/collectionsync/core/errors"
	"github.com/bentley-historical-library/collectionsync/internal/restclient"
)

var logger = loggo.GetLogger("collectionsync.dspace")

const (
	// TokenHeader carries the login token on every authenticated request.
	TokenHeader = "rest-dspace-token"

	apiPrefix = "/RESTapi"
)

// Credentials identify the DSpace account collectionsync acts as.
type Credentials struct {
	BaseURL  string
	Email    string
	Password string
}

// Client talks to the DSpace REST API with an established token.
type Client struct {
	rest *restclient.HTTPRESTClient
}

// Login obtains a token with the given credentials and returns a client
// that uses it for every later call.
func Login(ctx context.Context, transport restclient.Transport, creds Credentials) (*Client, error) {
	logger.Infof("logging into DSpace at %s as %s", creds.BaseURL, creds.Email)
	rest := restclient.NewHTTPRESTClient(strings.TrimSuffix(creds.BaseURL, "/")+apiPrefix, transport, nil)

	body, err := rest.PostRaw(ctx, "/login", credentials{
		Email:    creds.Email,
		Password: creds.Password,
	})
	if err != nil {
		return nil, errors.Annotate(err, "logging into DSpace")
	}
	token := strings.TrimSpace(string(body))
	if token == "" {
		return nil, errors.WithType(errors.New("logging into DSpace: no token returned"), coreerrors.RemoteCallError)
	}

	headers := make(http.Header)
	headers.Set(TokenHeader, token)
	return NewClient(rest.WithHeaders(headers)), nil
}

// NewClient returns a client using an already authenticated REST client
// rooted at the REST API prefix.
func NewClient(rest *restclient.HTTPRESTClient) *Client {
	return &Client{rest: rest}
}

// CreateCollection creates collection inside the community and returns the
// collection as created, including its newly assigned handle.
func (c *Client) CreateCollection(ctx context.Context, communityID string, collection Collection) (Collection, error) {
	logger.Debugf("POSTing collection %q to community %s", collection.Name, communityID)
	var created Collection
	path := fmt.Sprintf("/communities/%s/collections", communityID)
	if _, err := c.rest.Post(ctx, path, nil, collection, &created); err != nil {
		return Collection{}, errors.Annotatef(err, "creating collection in community %s", communityID)
	}
	return created, nil
}

// GetCollectionByHandle fetches the collection with the given handle.
func (c *Client) GetCollectionByHandle(ctx context.Context, handle string) (Collection, error) {
	logger.Debugf("GETting collection %s", handle)
	var collection Collection
	if _, err := c.rest.Get(ctx, "/handle/"+handle, &collection); err != nil {
		return Collection{}, errors.Annotatef(err, "getting collection %s", handle)
	}
	return collection, nil
}

// UpdateCollection overwrites the collection with the given identifier.
func (c *Client) UpdateCollection(ctx context.Context, id string, collection Collection) error {
	logger.Debugf("PUTting collection %s", id)
	if _, err := c.rest.Put(ctx, "/collections/"+id, nil, collection, nil); err != nil {
		return errors.Annotatef(err, "updating collection %s", id)
	}
	return nil
}
