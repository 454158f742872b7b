// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package storageservice_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	coreerrors "github.com/bentley-historical-library/collectionsync/core/errors"
	"github.com/bentley-historical-library/collectionsync/internal/restclient"
	"github.com/bentley-historical-library/collectionsync/storageservice"
)

type ProvisionerSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&ProvisionerSuite{})

const testSpace = "7f3c0f2e-0c5a-4d1b-9f61-1b7f2a8f2e10"

var creds = storageservice.Credentials{
	Username: "test",
	APIKey:   "abc123",
}

func (s *ProvisionerSuite) TestProvision(c *gc.C) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.Check(r.Method, gc.Equals, "POST")
		c.Check(r.URL.Path, gc.Equals, "/api/v2/location/")
		c.Check(r.Header.Get("Authorization"), gc.Equals, "ApiKey test:abc123")
		var body map[string]interface{}
		c.Check(json.NewDecoder(r.Body).Decode(&body), jc.ErrorIsNil)
		c.Check(body, jc.DeepEquals, map[string]interface{}{
			"description":   "Smith Papers",
			"space":         "/api/v2/space/7f3c0f2e-0c5a-4d1b-9f61-1b7f2a8f2e10/",
			"relative_path": "https://dspace.example.com/swordv2/collection/2027.42/12345",
			"purpose":       "AS",
			"pipeline":      []interface{}{"/api/v2/pipeline/p1/"},
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"uuid": "loc-1", "resource_uri": "/api/v2/location/loc-1/"}`)
	}))
	defer server.Close()

	provisionerCreds := creds
	provisionerCreds.URL = server.URL
	provisioner, err := storageservice.NewProvisioner(restclient.NewAPIRequester(server.Client()), provisionerCreds, storageservice.Config{
		Space:     testSpace,
		Pipelines: []string{"/api/v2/pipeline/p1/"},
	})
	c.Assert(err, jc.ErrorIsNil)

	err = provisioner.Provision(context.Background(), "https://dspace.example.com/swordv2/collection/2027.42/12345", "Smith Papers")
	c.Assert(err, jc.ErrorIsNil)
}

func (s *ProvisionerSuite) TestProvisionFailure(c *gc.C) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provisionerCreds := creds
	provisionerCreds.URL = server.URL
	provisioner, err := storageservice.NewProvisioner(restclient.NewAPIRequester(server.Client()), provisionerCreds, storageservice.Config{Space: testSpace})
	c.Assert(err, jc.ErrorIsNil)

	err = provisioner.Provision(context.Background(), "path", "desc")
	c.Assert(err, gc.ErrorMatches, `adding storage service location path: POST .*: unexpected status "401 Unauthorized"`)
	c.Check(errors.Is(err, coreerrors.RemoteCallError), jc.IsTrue)
}

func (s *ProvisionerSuite) TestNewProvisionerRequiresSpace(c *gc.C) {
	_, err := storageservice.NewProvisioner(http.DefaultClient, creds, storageservice.Config{})
	c.Check(errors.Is(err, errors.NotValid), jc.IsTrue)
}

func (s *ProvisionerSuite) TestNewProvisionerRequiresSpaceUUID(c *gc.C) {
	_, err := storageservice.NewProvisioner(http.DefaultClient, creds, storageservice.Config{Space: "archive"})
	c.Check(errors.Is(err, errors.NotValid), jc.IsTrue)
	c.Check(err, gc.ErrorMatches, `space "archive": .*`)
}
