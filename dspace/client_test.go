// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package dspace_test

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
	"github.com/bentley-historical-library/collectionsync/dspace"
	"github.com/bentley-historical-library/collectionsync/internal/restclient"
)

type ClientSuite struct {
	testing.IsolationSuite

	mux    *http.ServeMux
	server *httptest.Server
}

var _ = gc.Suite(&ClientSuite{})

func (s *ClientSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/RESTapi/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		c.Check(json.NewDecoder(r.Body).Decode(&creds), jc.ErrorIsNil)
		if creds["email"] != "archivist@example.com" || creds["password"] != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "dspace-token\n")
	})
	s.server = httptest.NewServer(s.mux)
	s.AddCleanup(func(*gc.C) { s.server.Close() })
}

func (s *ClientSuite) login(c *gc.C) *dspace.Client {
	client, err := dspace.Login(context.Background(), restclient.NewAPIRequester(s.server.Client()), dspace.Credentials{
		BaseURL:  s.server.URL + "/",
		Email:    "archivist@example.com",
		Password: "secret",
	})
	c.Assert(err, jc.ErrorIsNil)
	return client
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func checkToken(c *gc.C, r *http.Request) {
	c.Check(r.Header.Get(dspace.TokenHeader), gc.Equals, "dspace-token")
}

func (s *ClientSuite) TestLoginFailure(c *gc.C) {
	_, err := dspace.Login(context.Background(), restclient.NewAPIRequester(s.server.Client()), dspace.Credentials{
		BaseURL:  s.server.URL,
		Email:    "archivist@example.com",
		Password: "wrong",
	})
	c.Assert(err, gc.ErrorMatches, `logging into DSpace: POST .*/RESTapi/login: unexpected status "403 Forbidden"`)
	c.Check(errors.Is(err, coreerrors.RemoteCallError), jc.IsTrue)
}

func (s *ClientSuite) TestCreateCollection(c *gc.C) {
	s.mux.HandleFunc("/RESTapi/communities/42/collections", func(w http.ResponseWriter, r *http.Request) {
		checkToken(c, r)
		c.Check(r.Method, gc.Equals, "POST")
		var body map[string]interface{}
		c.Check(json.NewDecoder(r.Body).Decode(&body), jc.ErrorIsNil)
		c.Check(body, jc.DeepEquals, map[string]interface{}{
			"name":             "Smith Papers",
			"introductoryText": "<p>COLLECTION_HANDLE_PLACEHOLDER</p>",
			"copyrightText":    "copyright",
			"license":          "license",
		})
		writeJSON(w, `{"id": 7, "name": "Smith Papers", "handle": "2027.42/12345", "type": "collection"}`)
	})
	client := s.login(c)

	created, err := client.CreateCollection(context.Background(), "42", dspace.Collection{
		Name:             "Smith Papers",
		IntroductoryText: "<p>COLLECTION_HANDLE_PLACEHOLDER</p>",
		CopyrightText:    "copyright",
		License:          "license",
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Check(created.Handle, gc.Equals, "2027.42/12345")
	c.Check(created.Identifier(), gc.Equals, "7")
}

func (s *ClientSuite) TestGetAndUpdateCollection(c *gc.C) {
	s.mux.HandleFunc("/RESTapi/handle/2027.42/12345", func(w http.ResponseWriter, r *http.Request) {
		checkToken(c, r)
		writeJSON(w, `{
			"uuid": "0a1b2c",
			"name": "Smith Papers",
			"handle": "2027.42/12345",
			"introductoryText": "<p>COLLECTION_HANDLE_PLACEHOLDER</p>",
			"copyrightText": "copyright",
			"license": "license",
			"sidebarText": "keep me",
			"numberItems": 0
		}`)
	})
	var put map[string]interface{}
	s.mux.HandleFunc("/RESTapi/collections/0a1b2c", func(w http.ResponseWriter, r *http.Request) {
		checkToken(c, r)
		c.Check(r.Method, gc.Equals, "PUT")
		c.Check(json.NewDecoder(r.Body).Decode(&put), jc.ErrorIsNil)
		w.WriteHeader(http.StatusOK)
	})
	client := s.login(c)

	collection, err := client.GetCollectionByHandle(context.Background(), "2027.42/12345")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(collection.Identifier(), gc.Equals, "0a1b2c")

	collection.IntroductoryText = "<p>2027.42/12345</p>"
	err = client.UpdateCollection(context.Background(), collection.Identifier(), collection)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(put["introductoryText"], gc.Equals, "<p>2027.42/12345</p>")
	c.Check(put["sidebarText"], gc.Equals, "keep me")
	c.Check(put["uuid"], gc.Equals, "0a1b2c")
}

func (s *ClientSuite) TestUpdateCollectionFailure(c *gc.C) {
	s.mux.HandleFunc("/RESTapi/collections/7", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := s.login(c)

	err := client.UpdateCollection(context.Background(), "7", dspace.Collection{Name: "x"})
	c.Assert(err, gc.ErrorMatches, `updating collection 7: PUT .*: unexpected status "500 Internal Server Error"`)
	c.Check(errors.Is(err, coreerrors.RemoteCallError), jc.IsTrue)
}

func (s *ClientSuite) TestIdentifier(c *gc.C) {
	c.Check(dspace.Collection{}.Identifier(), gc.Equals, "")
	c.Check(dspace.Collection{ID: 3}.Identifier(), gc.Equals, "3")
	c.Check(dspace.Collection{ID: 3, UUID: "u"}.Identifier(), gc.Equals, "u")
}
