// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package http

import (
	"net/http"
	"time"
)

// HTTPClient is the interface that is used to do http requests.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response. The client will
	// follow policy (such as redirects, cookies, auth) as configured on the
	// client.
	Do(*http.Request) (*http.Response, error)
}

// DefaultHTTPClient returns the client used to talk to every remote system.
// A run processes a single resource, so no timeout is imposed.
func DefaultHTTPClient() HTTPClient {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
