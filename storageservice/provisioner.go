// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package storageservice provisions Archivematica Storage Service
// locations for DSpace collections.
package storageservice

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/bentley-historical-library/collectionsync/internal/restclient"
)

var logger = loggo.GetLogger("collectionsync.storageservice")

// PurposeAIPStorage marks a location as AIP storage.
const PurposeAIPStorage = "AS"

// Credentials identify the Storage Service user and its API key.
type Credentials struct {
	URL      string
	Username string
	APIKey   string
}

// Config describes where new locations are created.
type Config struct {
	// Space is the UUID of the space new locations are added to.
	Space string

	// Pipelines are the URIs of the pipelines that may use new locations,
	// such as /api/v2/pipeline/<uuid>/.
	Pipelines []string
}

// Validate checks that the space is a UUID.
func (c Config) Validate() error {
	if c.Space == "" {
		return errors.NotValidf("empty space")
	}
	if err := uuid.Validate(c.Space); err != nil {
		return errors.NewNotValid(err, fmt.Sprintf("space %q", c.Space))
	}
	return nil
}

type location struct {
	Description  string   `json:"description"`
	Space        string   `json:"space"`
	RelativePath string   `json:"relative_path"`
	Purpose      string   `json:"purpose"`
	Pipeline     []string `json:"pipeline"`
}

type createdLocation struct {
	UUID         string `json:"uuid"`
	ResourceURI  string `json:"resource_uri"`
	RelativePath string `json:"relative_path"`
}

// Provisioner creates AIP storage locations in a single space.
type Provisioner struct {
	rest   *restclient.HTTPRESTClient
	config Config
}

// NewProvisioner returns a provisioner that authenticates with the API key
// in creds.
func NewProvisioner(transport restclient.Transport, creds Credentials, config Config) (*Provisioner, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	headers := make(http.Header)
	headers.Set("Authorization", fmt.Sprintf("ApiKey %s:%s", creds.Username, creds.APIKey))
	return &Provisioner{
		rest:   restclient.NewHTTPRESTClient(creds.URL, transport, headers),
		config: config,
	}, nil
}

// Provision creates a location at relativePath described by description.
func (p *Provisioner) Provision(ctx context.Context, relativePath, description string) error {
	logger.Infof("adding storage service location %s to space %s", relativePath, p.config.Space)
	body := location{
		Description:  description,
		Space:        fmt.Sprintf("/api/v2/space/%s/", p.config.Space),
		RelativePath: relativePath,
		Purpose:      PurposeAIPStorage,
		Pipeline:     p.config.Pipelines,
	}
	if body.Pipeline == nil {
		body.Pipeline = []string{}
	}
	var created createdLocation
	if _, err := p.rest.Post(ctx, "/api/v2/location/", nil, body, &created); err != nil {
		return errors.Annotatef(err, "adding storage service location %s", relativePath)
	}
	logger.Debugf("storage service location %s created", created.UUID)
	return nil
}
